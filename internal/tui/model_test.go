package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbot/internal/domain"
	"searchbot/internal/service"
)

type call struct {
	query     string
	mode      domain.Mode
	hasFilter bool
}

type fakeBot struct {
	calls []call
}

func (f *fakeBot) Answer(ctx context.Context, query string, mode domain.Mode, filter domain.Filter) service.Response {
	f.calls = append(f.calls, call{query: query, mode: mode, hasFilter: filter != nil})
	return service.Response{Text: "answer to " + query, Score: 1.5, Source: service.SourceLocal}
}

func (f *fakeBot) History() []string { return []string{"q", "a"} }

func (f *fakeBot) Strategy() domain.Strategy { return domain.StrategyBM25 }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typed(s string) []tea.Msg {
	return []tea.Msg{
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)},
		tea.KeyMsg{Type: tea.KeyEnter},
	}
}

func TestModel_AsksBot(t *testing.T) {
	bot := &fakeBot{}
	m := New(bot, "")
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, typed("你好")...)

	require.Len(t, bot.calls, 1)
	assert.Equal(t, call{query: "你好", mode: domain.ModeQA}, bot.calls[0])
	assert.Contains(t, m.View(), "answer to 你好")
	assert.Contains(t, m.status, "score=1.500")
	assert.Empty(t, m.input.Value())
}

func TestModel_TabTogglesMode(t *testing.T) {
	bot := &fakeBot{}
	m := New(bot, domain.ModeQA)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.ModeCR, m.mode)

	m = send(t, m, typed("在吗")...)
	require.Len(t, bot.calls, 1)
	assert.Equal(t, domain.ModeCR, bot.calls[0].mode)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.ModeQA, m.mode)
}

func TestModel_FilterCommand(t *testing.T) {
	bot := &fakeBot{}
	m := New(bot, domain.ModeQA)

	m = send(t, m, typed("/filter 呀$")...)
	require.NotNil(t, m.filter)
	assert.Empty(t, bot.calls)

	m = send(t, m, typed("你好")...)
	assert.True(t, bot.calls[0].hasFilter)

	m = send(t, m, typed("/filter (")...)
	assert.Contains(t, m.status, "Error")
	assert.NotNil(t, m.filter)

	m = send(t, m, typed("/filter")...)
	assert.Nil(t, m.filter)
	m = send(t, m, typed("再见")...)
	assert.False(t, bot.calls[1].hasFilter)
}

func TestModel_HistoryCommand(t *testing.T) {
	m := send(t, New(&fakeBot{}, domain.ModeQA), typed("/history")...)
	assert.Equal(t, "History: q | a", m.status)
}

func TestModel_Quit(t *testing.T) {
	_, cmd := New(&fakeBot{}, domain.ModeQA).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
