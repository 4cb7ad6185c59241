package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/pkg/models"
)

func TestListTopicsDecodesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/homepage/getAllTopics", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [
				{"topicId": 7, "title": "Welcome", "rating": 3, "username": "alice"},
				{"topicId": 8, "title": "Rules", "rating": 0, "username": "bob"}
			],
			"totalElements": 42,
			"totalPages": 5,
			"number": 2
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.ListTopics(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(7), page.Content[0].ID)
	assert.Equal(t, "Welcome", page.Content[0].Title)
	assert.Equal(t, 42, page.TotalElements)
	assert.True(t, page.HasNext())
}

func TestLastPageHasNoNext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [], "totalElements": 10, "totalPages": 5, "number": 4}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.ListTopics(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, page.HasNext())
}

func TestVoteWithoutSessionNeverHitsNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.VoteTopic(context.Background(), 1, models.VoteUp)
	assert.True(t, models.IsAuthRequired(err))

	err = client.VoteComment(context.Background(), 1, models.VoteDown)
	assert.True(t, models.IsAuthRequired(err))

	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "unauthenticated vote must fail before any request")
}

func TestServerErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetTopic(context.Background(), 999, 0)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeServer, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "topic not found")
}

func TestNetworkErrorMapping(t *testing.T) {
	// Connect to a closed server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.ListTopics(context.Background(), 0)
	assert.True(t, models.IsNetworkError(err))
}

func TestAuthHeadersSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Client-ID"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")
	_, err := client.ListNotifications(context.Background())
	require.NoError(t, err)
}

func TestSigninStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "jwt-abc"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	token, err := client.Signin(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, "jwt-abc", client.Token())

	client.ClearToken()
	assert.Empty(t, client.Token())
}

func TestSubmitCommentValidatesBeforeSend(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")

	_, err := client.SubmitComment(context.Background(), models.SubmitCommentRequest{
		TopicID: 1,
		Content: "   ",
	})
	assert.True(t, models.IsValidationError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestSubmitCommentMultipartFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello there", r.FormValue("content"))
		assert.Equal(t, "5", r.FormValue("topicId"))
		assert.Equal(t, "2", r.FormValue("parentId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"commentId": 99, "topicId": 5, "parentId": 2, "content": "hello there", "username": "alice"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")

	comment, err := client.SubmitComment(context.Background(), models.SubmitCommentRequest{
		TopicID:  5,
		ParentID: 2,
		Content:  "hello there",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), comment.ID)
	assert.Equal(t, int64(2), comment.ParentID)
}

func TestGetCommentRatingDecodesBareInt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topicpage/comments/12/rating", r.URL.Path)
		w.Write([]byte(`-4`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rating, err := client.GetCommentRating(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, -4, rating)
}

func TestSearchTopicsQueryEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "go", q.Get("title"))
		assert.Equal(t, "general", q.Get("category"))
		assert.Equal(t, "help,beginner", q.Get("tags"))
		assert.Equal(t, "rating,desc", q.Get("sortOrder"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [], "totalElements": 0, "totalPages": 0, "number": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SearchTopics(context.Background(), models.TopicSearchParams{
		Title:     "go",
		Category:  "general",
		Tags:      []string{"help", "beginner"},
		SortBy:    "rating",
		SortOrder: "desc",
	})
	require.NoError(t, err)
}
