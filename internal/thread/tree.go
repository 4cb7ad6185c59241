package thread

import (
	"forumhub/pkg/models"
)

// LoadState tracks where a node's reply listing is in its lifecycle.
type LoadState int

const (
	// StateIdle means no reply page has been requested yet.
	StateIdle LoadState = iota
	// StateLoading means a reply page request is in flight.
	StateLoading
	// StateLoaded means at least one reply page has been applied.
	StateLoaded
)

// Node is one comment in the tree. Replies are held by id so that a reply
// has exactly one owner: the arena. ReplyIDs orders the loaded children.
type Node struct {
	Comment  models.Comment
	ReplyIDs []int64

	State    LoadState
	NextPage int
	HasMore  bool
	Expanded bool
	Deleted  bool
}

// Row is a visible node flattened for rendering, with its nesting depth.
type Row struct {
	ID    int64
	Depth int
}

// Tree is an id-keyed arena of comments plus the ordered top-level listing.
// It is not safe for concurrent use; the owning update loop serializes
// access.
type Tree struct {
	nodes map[int64]*Node

	topLevel         []int64
	topLevelNextPage int
	topLevelHasMore  bool
}

// NewTree returns an empty tree that expects top-level page 0 first.
func NewTree() *Tree {
	return &Tree{
		nodes:           make(map[int64]*Node),
		topLevelHasMore: true,
	}
}

// Node returns the node for id, or nil when the id is unknown.
func (t *Tree) Node(id int64) *Node {
	return t.nodes[id]
}

// Len returns the number of comments in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// TopLevelIDs returns the ordered top-level comment ids.
func (t *Tree) TopLevelIDs() []int64 {
	return t.topLevel
}

// NextTopLevelPage reports the next top-level page to request, and whether
// one is expected to exist.
func (t *Tree) NextTopLevelPage() (int, bool) {
	return t.topLevelNextPage, t.topLevelHasMore
}

// ApplyTopLevelPage merges a page of top-level comments. Page 0 replaces the
// listing (and every descendant: ids no longer present become unreachable);
// later pages append. An empty page marks the end of the listing.
func (t *Tree) ApplyTopLevelPage(page int, comments []models.Comment) {
	if page == 0 {
		t.nodes = make(map[int64]*Node)
		t.topLevel = nil
	}

	for _, c := range comments {
		if t.register(c) {
			t.topLevel = append(t.topLevel, c.ID)
		}
	}

	t.topLevelNextPage = page + 1
	t.topLevelHasMore = len(comments) > 0
}

// ToggleExpand flips a node's visibility. Returns needLoad=true when the
// expand should trigger the first reply page request; the caller then calls
// BeginReplyLoad before dispatching it.
func (t *Tree) ToggleExpand(id int64) (needLoad bool, page int) {
	node := t.nodes[id]
	if node == nil {
		return false, 0
	}

	node.Expanded = !node.Expanded
	if !node.Expanded {
		return false, 0
	}
	if node.State == StateIdle && node.Comment.ReplyCount > 0 {
		return true, 0
	}
	return false, 0
}

// BeginReplyLoad marks a node's reply page request as in flight.
func (t *Tree) BeginReplyLoad(id int64) {
	if node := t.nodes[id]; node != nil {
		node.State = StateLoading
	}
}

// FailReplyLoad rolls a node back so the load can be retried. A node that
// already has pages keeps them.
func (t *Tree) FailReplyLoad(id int64) {
	node := t.nodes[id]
	if node == nil {
		return
	}
	if len(node.ReplyIDs) > 0 {
		node.State = StateLoaded
	} else {
		node.State = StateIdle
	}
}

// ApplyReplyPage merges a page of replies under parentID. Replies already in
// the arena update in place without duplicating the child listing. An empty
// page means the parent has no further pages.
func (t *Tree) ApplyReplyPage(parentID int64, page int, replies []models.Comment) {
	parent := t.nodes[parentID]
	if parent == nil {
		return
	}

	for _, r := range replies {
		if t.register(r) {
			parent.ReplyIDs = append(parent.ReplyIDs, r.ID)
		}
	}

	parent.State = StateLoaded
	parent.NextPage = page + 1
	parent.HasMore = len(replies) > 0
}

// AddReply inserts a freshly confirmed reply at the end of its parent's
// children and bumps the parent's reply count. Top-level replies (ParentID
// zero) append to the top-level listing.
func (t *Tree) AddReply(reply models.Comment) {
	if !t.register(reply) {
		return
	}

	if reply.ParentID == 0 {
		t.topLevel = append(t.topLevel, reply.ID)
		return
	}

	parent := t.nodes[reply.ParentID]
	if parent == nil {
		return
	}
	parent.ReplyIDs = append(parent.ReplyIDs, reply.ID)
	parent.Comment.ReplyCount++
	if parent.State == StateIdle {
		// The new child is the only loaded content; show it.
		parent.State = StateLoaded
	}
}

// SetRating replaces a node's rating with the server-confirmed value.
func (t *Tree) SetRating(id int64, rating int) {
	if node := t.nodes[id]; node != nil {
		node.Comment.Rating = rating
	}
}

// MarkDeleted flags a node as removed. The node stays in the arena and in
// its parent's listing so the surrounding structure does not shift; the
// next full refresh drops it.
func (t *Tree) MarkDeleted(id int64) {
	if node := t.nodes[id]; node != nil {
		node.Deleted = true
	}
}

// VisibleRows flattens the tree into render order: top-level comments in
// listing order, each followed by its loaded replies when expanded.
func (t *Tree) VisibleRows() []Row {
	rows := make([]Row, 0, len(t.topLevel))
	for _, id := range t.topLevel {
		rows = t.appendVisible(rows, id, 0)
	}
	return rows
}

func (t *Tree) appendVisible(rows []Row, id int64, depth int) []Row {
	node := t.nodes[id]
	if node == nil {
		return rows
	}
	rows = append(rows, Row{ID: id, Depth: depth})
	if !node.Expanded {
		return rows
	}
	for _, childID := range node.ReplyIDs {
		rows = t.appendVisible(rows, childID, depth+1)
	}
	return rows
}

// register puts a comment into the arena. Returns true when the id is new;
// an existing node gets its comment fields refreshed but keeps its listing
// position and load state.
func (t *Tree) register(c models.Comment) bool {
	if existing, ok := t.nodes[c.ID]; ok {
		existing.Comment = c
		return false
	}
	t.nodes[c.ID] = &Node{Comment: c}
	return true
}
