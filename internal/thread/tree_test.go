package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/pkg/models"
)

func comment(id, parentID int64, replyCount int) models.Comment {
	return models.Comment{
		ID:         id,
		ParentID:   parentID,
		Username:   "alice",
		Content:    "body",
		ReplyCount: replyCount,
	}
}

func TestTopLevelPageZeroReplaces(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0), comment(2, 0, 0)})
	tree.ApplyTopLevelPage(0, []models.Comment{comment(3, 0, 0)})

	assert.Equal(t, []int64{3}, tree.TopLevelIDs())
	assert.Nil(t, tree.Node(1))
	assert.Equal(t, 1, tree.Len())
}

func TestTopLevelLaterPagesAppendWithoutDuplicates(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0), comment(2, 0, 0)})
	// Page 1 overlaps with page 0; the shared id must not repeat.
	tree.ApplyTopLevelPage(1, []models.Comment{comment(2, 0, 0), comment(3, 0, 0)})

	assert.Equal(t, []int64{1, 2, 3}, tree.TopLevelIDs())

	next, more := tree.NextTopLevelPage()
	assert.Equal(t, 2, next)
	assert.True(t, more)
}

func TestEmptyTopLevelPageEndsListing(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0)})
	tree.ApplyTopLevelPage(1, nil)

	_, more := tree.NextTopLevelPage()
	assert.False(t, more)
	assert.Equal(t, []int64{1}, tree.TopLevelIDs())
}

func TestExpandTriggersFirstLoadOnly(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 2)})

	needLoad, page := tree.ToggleExpand(1)
	assert.True(t, needLoad)
	assert.Equal(t, 0, page)

	tree.BeginReplyLoad(1)
	assert.Equal(t, StateLoading, tree.Node(1).State)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 0), comment(11, 1, 0)})

	// Collapse and re-expand: replies are cached, no reload.
	needLoad, _ = tree.ToggleExpand(1)
	assert.False(t, needLoad)
	needLoad, _ = tree.ToggleExpand(1)
	assert.False(t, needLoad)
	assert.Equal(t, []int64{10, 11}, tree.Node(1).ReplyIDs)
}

func TestExpandLeafNeedsNoLoad(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0)})

	needLoad, _ := tree.ToggleExpand(1)
	assert.False(t, needLoad)
	assert.True(t, tree.Node(1).Expanded)
}

func TestReplyPagination(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 3)})
	tree.BeginReplyLoad(1)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 0), comment(11, 1, 0)})

	node := tree.Node(1)
	assert.Equal(t, StateLoaded, node.State)
	assert.Equal(t, 1, node.NextPage)
	assert.True(t, node.HasMore)

	tree.ApplyReplyPage(1, 1, []models.Comment{comment(12, 1, 0)})
	assert.Equal(t, []int64{10, 11, 12}, node.ReplyIDs)
	assert.True(t, node.HasMore)

	// An empty page is the only end-of-replies signal.
	tree.ApplyReplyPage(1, 2, nil)
	assert.False(t, node.HasMore)
	assert.Equal(t, 3, node.NextPage)
}

func TestFailReplyLoadRollsBack(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 2)})

	tree.BeginReplyLoad(1)
	tree.FailReplyLoad(1)
	assert.Equal(t, StateIdle, tree.Node(1).State)

	// After a successful first page, a failed later page keeps the node loaded.
	tree.BeginReplyLoad(1)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 0)})
	tree.BeginReplyLoad(1)
	tree.FailReplyLoad(1)
	assert.Equal(t, StateLoaded, tree.Node(1).State)
	assert.Equal(t, []int64{10}, tree.Node(1).ReplyIDs)
}

func TestAddReplyBumpsParentCount(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0)})

	tree.AddReply(comment(10, 1, 0))

	parent := tree.Node(1)
	assert.Equal(t, 1, parent.Comment.ReplyCount)
	assert.Equal(t, []int64{10}, parent.ReplyIDs)
	assert.Equal(t, StateLoaded, parent.State)
}

func TestAddTopLevelReplyAppends(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0)})

	tree.AddReply(comment(2, 0, 0))
	assert.Equal(t, []int64{1, 2}, tree.TopLevelIDs())
}

func TestAddReplyIgnoresDuplicates(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 1)})
	tree.BeginReplyLoad(1)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 0)})

	tree.AddReply(comment(10, 1, 0))
	assert.Equal(t, []int64{10}, tree.Node(1).ReplyIDs)
	assert.Equal(t, 1, tree.Node(1).Comment.ReplyCount)
}

func TestMarkDeletedKeepsStructure(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 2)})
	tree.BeginReplyLoad(1)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 0), comment(11, 1, 0)})

	tree.MarkDeleted(10)

	assert.True(t, tree.Node(10).Deleted)
	// Listing positions stay put until a full refresh.
	assert.Equal(t, []int64{10, 11}, tree.Node(1).ReplyIDs)
}

func TestSetRatingReplacesValue(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 0)})

	tree.SetRating(1, 7)
	assert.Equal(t, 7, tree.Node(1).Comment.Rating)

	tree.SetRating(1, -2)
	assert.Equal(t, -2, tree.Node(1).Comment.Rating)
}

func TestVisibleRowsFollowExpansion(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 2), comment(2, 0, 0)})
	tree.BeginReplyLoad(1)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 1)})
	tree.BeginReplyLoad(10)
	tree.ApplyReplyPage(10, 0, []models.Comment{comment(100, 10, 0)})

	// Nothing expanded: only top-level rows.
	assert.Equal(t, []Row{{1, 0}, {2, 0}}, tree.VisibleRows())

	tree.ToggleExpand(1)
	assert.Equal(t, []Row{{1, 0}, {10, 1}, {2, 0}}, tree.VisibleRows())

	tree.ToggleExpand(10)
	assert.Equal(t, []Row{{1, 0}, {10, 1}, {100, 2}, {2, 0}}, tree.VisibleRows())

	tree.ToggleExpand(1)
	assert.Equal(t, []Row{{1, 0}, {2, 0}}, tree.VisibleRows())

	// Re-expanding the ancestor restores the grandchild's expansion.
	tree.ToggleExpand(1)
	assert.Equal(t, []Row{{1, 0}, {10, 1}, {100, 2}, {2, 0}}, tree.VisibleRows())
}

func TestTopicStateRefreshReplacesTree(t *testing.T) {
	state := NewTopicState()
	state.ApplyTopicPage(&models.Topic{
		ID:       5,
		Title:    "First",
		Rating:   1,
		Comments: []models.Comment{comment(1, 0, 0)},
	}, 0)
	state.Tree.MarkDeleted(1)

	state.Refresh(&models.Topic{
		ID:       5,
		Title:    "First",
		Rating:   2,
		Comments: []models.Comment{comment(2, 0, 0)},
	})

	assert.Equal(t, 2, state.Topic.Rating)
	require.Nil(t, state.Tree.Node(1))
	assert.Equal(t, []int64{2}, state.Tree.TopLevelIDs())
}

func TestTopicStateLaterPagesKeepTree(t *testing.T) {
	state := NewTopicState()
	state.ApplyTopicPage(&models.Topic{ID: 5, Comments: []models.Comment{comment(1, 0, 0)}}, 0)
	state.ApplyTopicPage(&models.Topic{ID: 5, Comments: []models.Comment{comment(2, 0, 0)}}, 1)

	assert.Equal(t, []int64{1, 2}, state.Tree.TopLevelIDs())
	assert.Nil(t, state.Topic.Comments, "comments live in the tree, not on the topic snapshot")
}

func TestRatingIndependentOfReplyLoad(t *testing.T) {
	tree := NewTree()
	tree.ApplyTopLevelPage(0, []models.Comment{comment(1, 0, 2)})
	tree.BeginReplyLoad(1)
	tree.ApplyReplyPage(1, 0, []models.Comment{comment(10, 1, 0)})

	// Rating lands while the next reply page is in flight.
	tree.BeginReplyLoad(1)
	tree.SetRating(1, 7)
	tree.ApplyReplyPage(1, 1, []models.Comment{comment(11, 1, 0)})

	node := tree.Node(1)
	require.NotNil(t, node)
	assert.Equal(t, 7, node.Comment.Rating)
	assert.Equal(t, []int64{10, 11}, node.ReplyIDs)
	assert.Equal(t, StateLoaded, node.State)
}
