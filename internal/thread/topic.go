package thread

import (
	"forumhub/pkg/models"
)

// TopicState aggregates a topic's fields with its comment tree. One instance
// backs one open topic view.
type TopicState struct {
	Topic models.Topic
	Tree  *Tree
}

// NewTopicState returns an empty aggregate ready for the first topic page.
func NewTopicState() *TopicState {
	return &TopicState{Tree: NewTree()}
}

// ApplyTopicPage merges one page of a topic response. The topic's scalar
// fields (title, rating, tags) refresh on every page; the embedded comments
// merge as a top-level page.
func (s *TopicState) ApplyTopicPage(topic *models.Topic, page int) {
	comments := topic.Comments
	snapshot := *topic
	snapshot.Comments = nil
	s.Topic = snapshot
	s.Tree.ApplyTopLevelPage(page, comments)
}

// Refresh replaces the aggregate with a fresh page-0 snapshot. Used after
// mutations where the server is the source of truth, such as votes: rating
// changes are never computed locally.
func (s *TopicState) Refresh(topic *models.Topic) {
	s.Tree = NewTree()
	s.ApplyTopicPage(topic, 0)
}
