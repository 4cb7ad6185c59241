package utils

import (
	"fmt"
	"time"
)

// FormatTimestamp formats time for TUI display
func FormatTimestamp(t time.Time) string {
	now := time.Now()
	if SameDay(t, now) {
		return t.Format("15:04") // Today: show time only
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04") // This week: show day + time
	}
	return t.Format("2006-01-02") // Older: show date
}

// SameDay reports whether a and b fall on the same local-clock date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TimeAgo returns human-readable time ago string
func TimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	}
	if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(duration.Hours() / 24)
	if days == 1 {
		return "yesterday"
	}
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}

	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}
