package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forumhub/pkg/models"
)

func topicKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFailedReplyKeepsDraft(t *testing.T) {
	m := NewTopicModel(nil, "")
	m.SetSession(true, false)

	m, _ = m.Update(topicKey('t'))
	require.True(t, m.InputActive())

	m.composer.SetValue("an important draft")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	require.False(t, m.InputActive(), "composer closes while the reply is in flight")

	m, _ = m.Update(TopicErrorMsg{Gen: m.gen, Err: models.ErrNotConnected, FailedSubmit: true})
	assert.True(t, m.InputActive(), "composer reopens after a failed submit")
	assert.Equal(t, "an important draft", m.composer.Value())
	assert.Error(t, m.err)
}

func TestPostedReplyClearsDraft(t *testing.T) {
	m := NewTopicModel(nil, "")
	m.SetSession(true, false)

	m, _ = m.Update(topicKey('t'))
	m.composer.SetValue("hello thread")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	m, _ = m.Update(ReplyPostedMsg{Gen: m.gen, Comment: &models.Comment{ID: 99, Content: "hello thread"}})
	assert.False(t, m.InputActive())
	assert.Empty(t, m.composer.Value())
	assert.Equal(t, "Reply posted", m.notice)
}

func TestStaleDownloadNoticeDropped(t *testing.T) {
	m := NewTopicModel(nil, "")
	_ = m.Open(1)
	staleGen := m.gen
	_ = m.Open(2)

	got, _ := m.Update(AttachmentSavedMsg{Gen: staleGen, Path: "/tmp/old.png"})
	assert.Empty(t, got.notice, "a download from the previous topic must not surface here")

	got, _ = m.Update(AttachmentSavedMsg{Gen: m.gen, Path: "/tmp/new.png"})
	assert.Equal(t, "Saved /tmp/new.png", got.notice)
}
