package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Semior001/newsview/app/news"
	"github.com/Semior001/newsview/app/render"
	"github.com/Semior001/newsview/app/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m tea.Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	res, ok := next.(Model)
	require.True(t, ok)
	return res, cmd
}

func TestModel_Lifecycle(t *testing.T) {
	loader := &view.LoaderMock{ListFunc: func(context.Context) (news.Page, error) {
		return news.Page{Articles: []news.Article{
			{ID: "1", Title: "A", Link: "http://x", Published: "2024-01-02T10:00:00Z"},
		}}, nil
	}}

	m := New(context.Background(), loader)
	assert.Equal(t, view.Idle, m.State())

	msg := m.Init()()
	require.IsType(t, mountMsg{}, msg)

	m, cmd := update(t, m, msg)
	require.NotNil(t, cmd)
	assert.Equal(t, view.Loading, m.State())
	assert.Contains(t, m.View(), render.MsgLoading)

	// repeated mount does not start another load
	m, cmd = update(t, m, mountMsg{})
	assert.Nil(t, cmd)

	// refresh is ignored while loading
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.gen)

	m, _ = update(t, m, m.load(m.gen)())
	assert.Equal(t, view.Success, m.State())
	assert.Len(t, loader.ListCalls(), 1)

	out := m.View()
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "http://x")
	assert.Contains(t, out, "2 януари 2024 г., 12:00")
	assert.Equal(t, out, m.View())
}

func TestModel_Failure(t *testing.T) {
	loader := &view.LoaderMock{ListFunc: func(context.Context) (news.Page, error) {
		return news.Page{}, news.ErrUnexpectedFormat
	}}

	m := New(context.Background(), loader)
	m, _ = update(t, m, mountMsg{})
	m, _ = update(t, m, m.load(m.gen)())

	assert.Equal(t, view.Failed, m.State())
	assert.Contains(t, m.View(), render.MsgFailed)
	assert.NotContains(t, m.View(), news.ErrUnexpectedFormat.Error())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.Equal(t, view.Loading, m.State())
	assert.Equal(t, 2, m.gen)
}

func TestModel_StaleResultIgnored(t *testing.T) {
	m := New(context.Background(), &view.LoaderMock{})
	m, _ = update(t, m, mountMsg{})

	m, _ = update(t, m, loadedMsg{gen: m.gen + 1, err: errors.New("stale")})
	assert.Equal(t, view.Loading, m.State())
}

func TestModel_EmptyList(t *testing.T) {
	m := New(context.Background(), &view.LoaderMock{})
	m, _ = update(t, m, mountMsg{})
	m, _ = update(t, m, loadedMsg{gen: m.gen, page: news.Page{Articles: []news.Article{}}})

	assert.Equal(t, view.Success, m.State())
	assert.Contains(t, m.View(), render.MsgNoArticles)
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), &view.LoaderMock{})
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := update(t, m, key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
