package notify

import (
	"sort"
	"time"

	"forumhub/pkg/models"
	"forumhub/pkg/utils"
)

// Feed holds the current notification listing. Mutations follow a
// confirm-then-apply discipline: the caller performs the server call first
// and only touches the feed once it succeeded.
type Feed struct {
	items []models.Notification
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Replace swaps in a fresh listing from the server, newest first.
func (f *Feed) Replace(items []models.Notification) {
	sorted := make([]models.Notification, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	f.items = sorted
}

// Items returns the current listing, newest first.
func (f *Feed) Items() []models.Notification {
	return f.items
}

// UnreadCount returns how many notifications are unread.
func (f *Feed) UnreadCount() int {
	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead flags one notification as read. Call only after the server
// confirmed the mutation.
func (f *Feed) MarkRead(id int64) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return
		}
	}
}

// MarkAllRead flags every notification as read.
func (f *Feed) MarkAllRead() {
	for i := range f.items {
		f.items[i].Read = true
	}
}

// Remove drops one notification from the listing.
func (f *Feed) Remove(id int64) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// Clear drops every notification.
func (f *Feed) Clear() {
	f.items = nil
}

// DayGroup labels the day buckets the feed renders under.
type DayGroup int

const (
	GroupToday DayGroup = iota
	GroupYesterday
	GroupOlder
)

// Label returns the heading text for a group.
func (g DayGroup) Label() string {
	switch g {
	case GroupToday:
		return "Today"
	case GroupYesterday:
		return "Yesterday"
	default:
		return "Older"
	}
}

// Grouped buckets the listing into today / yesterday / older by the local
// clock, preserving newest-first order inside each bucket. Buckets with no
// items are absent from the result.
func (f *Feed) Grouped(now time.Time) map[DayGroup][]models.Notification {
	groups := make(map[DayGroup][]models.Notification)
	yesterday := now.AddDate(0, 0, -1)
	for _, item := range f.items {
		var g DayGroup
		switch {
		case utils.SameDay(item.Timestamp, now):
			g = GroupToday
		case utils.SameDay(item.Timestamp, yesterday):
			g = GroupYesterday
		default:
			g = GroupOlder
		}
		groups[g] = append(groups[g], item)
	}
	return groups
}
