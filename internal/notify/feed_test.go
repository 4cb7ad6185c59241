package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/pkg/models"
)

func notification(id int64, ts time.Time, read bool) models.Notification {
	return models.Notification{
		ID:            id,
		Type:          models.NotificationReply,
		ActorUsername: "bob",
		Message:       "replied to your comment",
		Timestamp:     ts,
		Read:          read,
	}
}

func TestReplaceSortsNewestFirst(t *testing.T) {
	now := time.Now()
	feed := NewFeed()
	feed.Replace([]models.Notification{
		notification(1, now.Add(-2*time.Hour), false),
		notification(2, now, false),
		notification(3, now.Add(-time.Hour), false),
	})

	items := feed.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
	assert.Equal(t, int64(1), items[2].ID)
}

func TestUnreadCount(t *testing.T) {
	now := time.Now()
	feed := NewFeed()
	feed.Replace([]models.Notification{
		notification(1, now, false),
		notification(2, now, true),
		notification(3, now, false),
	})
	assert.Equal(t, 2, feed.UnreadCount())

	feed.MarkRead(1)
	assert.Equal(t, 1, feed.UnreadCount())

	feed.MarkAllRead()
	assert.Equal(t, 0, feed.UnreadCount())
}

func TestRemoveAndClear(t *testing.T) {
	now := time.Now()
	feed := NewFeed()
	feed.Replace([]models.Notification{
		notification(1, now, false),
		notification(2, now.Add(-time.Minute), false),
	})

	feed.Remove(1)
	require.Len(t, feed.Items(), 1)
	assert.Equal(t, int64(2), feed.Items()[0].ID)

	feed.Remove(999) // unknown id is a no-op
	assert.Len(t, feed.Items(), 1)

	feed.Clear()
	assert.Empty(t, feed.Items())
}

func TestGroupedByLocalDay(t *testing.T) {
	// Fixed local reference point, late evening so hour offsets stay in-day.
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.Local)

	feed := NewFeed()
	feed.Replace([]models.Notification{
		notification(1, now.Add(-time.Hour), false),                        // today
		notification(2, time.Date(2025, 3, 10, 0, 30, 0, 0, time.Local), false), // today, early morning
		notification(3, time.Date(2025, 3, 9, 23, 0, 0, 0, time.Local), false),  // yesterday
		notification(4, time.Date(2025, 3, 8, 12, 0, 0, 0, time.Local), false),  // older
		notification(5, time.Date(2024, 12, 31, 12, 0, 0, 0, time.Local), false),
	})

	groups := feed.Grouped(now)

	require.Len(t, groups[GroupToday], 2)
	assert.Equal(t, int64(1), groups[GroupToday][0].ID)
	assert.Equal(t, int64(2), groups[GroupToday][1].ID)

	require.Len(t, groups[GroupYesterday], 1)
	assert.Equal(t, int64(3), groups[GroupYesterday][0].ID)

	require.Len(t, groups[GroupOlder], 2)
	assert.Equal(t, int64(4), groups[GroupOlder][0].ID)
}

func TestGroupedOmitsEmptyBuckets(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	feed := NewFeed()
	feed.Replace([]models.Notification{notification(1, now, false)})

	groups := feed.Grouped(now)
	assert.Contains(t, groups, GroupToday)
	assert.NotContains(t, groups, GroupYesterday)
	assert.NotContains(t, groups, GroupOlder)
}

func TestGroupLabels(t *testing.T) {
	assert.Equal(t, "Today", GroupToday.Label())
	assert.Equal(t, "Yesterday", GroupYesterday.Label())
	assert.Equal(t, "Older", GroupOlder.Label())
}

func TestPollerDeliversAndStopsOnCancel(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context) ([]models.Notification, error) {
		n := atomic.AddInt32(&calls, 1)
		return []models.Notification{notification(int64(n), time.Now(), false)}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	poller := NewPoller(fetch, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	select {
	case items := <-poller.Updates():
		require.Len(t, items, 1)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}

	// Channel closes once drained.
	for range poller.Updates() {
	}
}

func TestPollerStopsWhenSessionEnds(t *testing.T) {
	fetch := func(ctx context.Context) ([]models.Notification, error) {
		return nil, models.NewAuthRequiredError()
	}

	poller := NewPoller(fetch, 10*time.Millisecond)
	done := make(chan struct{})
	go func() {
		poller.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller kept running after auth failure")
	}
}

func TestPollerRetriesAfterTransientError(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context) ([]models.Notification, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("connection refused")
		}
		return []models.Notification{notification(1, time.Now(), false)}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := NewPoller(fetch, 10*time.Millisecond)
	go poller.Run(ctx)

	select {
	case items := <-poller.Updates():
		require.Len(t, items, 1)
	case <-time.After(time.Second):
		t.Fatal("poller did not recover from transient error")
	}
}
