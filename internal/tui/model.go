// Package tui is the interactive chat view: a question box on the bottom,
// the latest answer with its citations above it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yukti-Tech-Solution/MCS-Chatbot/internal/service"
)

// AssistantPort is the TUI-facing subset of the assistant.
type AssistantPort interface {
	AnswerQuestion(ctx context.Context, question string) (service.Result, error)
}

// answerMsg carries the outcome of one question back into the event loop.
type answerMsg struct {
	question string
	result   service.Result
	err      error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	assistant AssistantPort
	input     textinput.Model
	viewport  viewport.Model
	status    string
	ready     bool
	waiting   bool

	// ctx is canceled when the user quits, so an in-flight question is
	// abandoned instead of blocking shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new chat model instance.
func New(assistant AssistantPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the MCS Act and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		assistant: assistant,
		input:     ti,
		viewport:  vp,
		status:    "Ready. Type a question.",
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around answer and question boxes
		_, ah := answerBoxStyle.GetFrameSize()
		_, qh := questionBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, question box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ah)
		return m, nil
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answered by %s", msg.result.ModelUsed)
		m.viewport.SetContent(renderResult(msg.question, msg.result))
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			m.cancel()
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.waiting = true
				m.status = "Thinking..."
				m.input.SetValue("")
				return m, askCmd(m.ctx, m.assistant, q)
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// askCmd runs the question off the event loop so typing stays responsive.
func askCmd(ctx context.Context, assistant AssistantPort, question string) tea.Cmd {
	return func() tea.Msg {
		result, err := assistant.AnswerQuestion(ctx, question)
		return answerMsg{question: question, result: result, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("MCS Act Assistant")
	answer := answerBoxStyle.Render(m.viewport.View())
	input := questionBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + answer + "\n" + input + "\n" + status
}

func renderResult(question string, res service.Result) string {
	var b strings.Builder
	b.WriteString(questionStyle.Render("Q: " + question))
	b.WriteString("\n\n")
	b.WriteString(res.Text)

	if len(res.Citations) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render("Sources"))
		for _, c := range res.Citations {
			b.WriteString(fmt.Sprintf("\n  %s (part %d of %d)",
				c.SourceFilename, c.SequenceIndex+1, c.TotalChunksInSource))
		}
	}
	if len(res.RelatedLinks) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render("Official resources"))
		for _, g := range res.RelatedLinks {
			b.WriteString("\n  " + g.Title)
			for _, l := range g.Links {
				b.WriteString(fmt.Sprintf("\n    %s  %s", l.Name, linkStyle.Render(l.URL)))
			}
		}
	}
	return b.String()
}

var (
	answerBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	sectionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	linkStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
