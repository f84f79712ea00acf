package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/service"
)

// blockingAssistant answers only when its context is canceled.
type blockingAssistant struct{}

func (blockingAssistant) AnswerQuestion(ctx context.Context, _ string) (service.Result, error) {
	<-ctx.Done()
	return service.Result{}, ctx.Err()
}

func TestQuitCancelsModelContext(t *testing.T) {
	m := New(blockingAssistant{})
	require.NoError(t, m.ctx.Err())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	mm := updated.(Model)
	assert.ErrorIs(t, mm.ctx.Err(), context.Canceled)
}

func TestQuitAbandonsInFlightQuestion(t *testing.T) {
	m := New(blockingAssistant{})
	cmd := askCmd(m.ctx, m.assistant, "what is a quorum?")

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	select {
	case msg := <-done:
		ans, ok := msg.(answerMsg)
		require.True(t, ok)
		assert.ErrorIs(t, ans.err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("question was not abandoned on quit")
	}
}
