package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"searchbot/internal/domain"
	"searchbot/internal/service"
)

// BotPort is the TUI-facing subset of the search bot.
type BotPort interface {
	Answer(ctx context.Context, query string, mode domain.Mode, filter domain.Filter) service.Response
	History() []string
	Strategy() domain.Strategy
}

type exchange struct {
	query    string
	response service.Response
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	bot      BotPort
	input    textinput.Model
	viewport viewport.Model
	turns    []exchange
	mode     domain.Mode
	filter   *regexp.Regexp
	status   string
	ready    bool
}

// New creates a chat model answering in mode.
func New(bot BotPort, mode domain.Mode) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask something, /filter REGEX, /history"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	if mode == "" {
		mode = domain.ModeQA
	}
	return Model{bot: bot, input: ti, viewport: vp, mode: mode, status: "Ready. Tab switches mode."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + mode line, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-th)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			if m.mode == domain.ModeQA {
				m.mode = domain.ModeCR
			} else {
				m.mode = domain.ModeQA
			}
			m.status = "Mode: " + string(m.mode)
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.input.SetValue("")
			if strings.HasPrefix(q, "/") {
				m.command(q)
			} else {
				m.ask(q)
			}
			m.refresh()
			return m, nil
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

func (m *Model) ask(q string) {
	var filter domain.Filter
	if m.filter != nil {
		filter = m.filter
	}
	resp := m.bot.Answer(context.Background(), q, m.mode, filter)
	m.turns = append(m.turns, exchange{query: q, response: resp})
	m.status = fmt.Sprintf("%s  score=%.3f  source=%s", m.bot.Strategy(), resp.Score, resp.Source)
}

func (m *Model) command(line string) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/filter":
		if arg == "" {
			m.filter = nil
			m.status = "Filter cleared"
			return
		}
		re, err := regexp.Compile(arg)
		if err != nil {
			m.status = "Error: " + err.Error()
			return
		}
		m.filter = re
		m.status = fmt.Sprintf("Filtering answers matching %q", arg)
	case "/history":
		m.status = fmt.Sprintf("History: %s", strings.Join(m.bot.History(), " | "))
	default:
		m.status = "Unknown command " + name
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// View renders the TUI layout and the conversation.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Search Bot")
	modeLine := fmt.Sprintf("strategy=%s  mode=%s", m.bot.Strategy(), m.mode)
	if m.filter != nil {
		modeLine += "  filter=" + m.filter.String()
	}
	mode := mutedStyle.Render(modeLine)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + mode + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return "No messages yet."
	}
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(userStyle.Render("you: "))
		b.WriteString(t.query)
		b.WriteString("\n")
		b.WriteString(botStyle.Render("bot: "))
		if t.response.Source == service.SourceFallback {
			b.WriteString(mutedStyle.Render(t.response.Text))
		} else {
			b.WriteString(t.response.Text)
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%s %.3f)", t.response.Source, t.response.Score)))
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
