// Package tui is a terminal front-end for the article list.
//
// The model goes through the same states as view.View: it is idle until
// presented, loads once on mount and shows either the list or a generic
// failure message. "r" requests an explicit refresh.
package tui

import (
	"context"
	"strings"

	"github.com/Semior001/newsview/app/news"
	"github.com/Semior001/newsview/app/render"
	"github.com/Semior001/newsview/app/view"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mountMsg is sent once, when the program first presents the model.
type mountMsg struct{}

// loadedMsg carries the result of a load; gen tells stale results apart.
type loadedMsg struct {
	gen  int
	page news.Page
	err  error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Underline(true)
	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Model is the bubbletea model of the article list.
type Model struct {
	ctx     context.Context
	loader  view.Loader
	state   view.State
	page    news.Page
	gen     int
	spinner spinner.Model
	width   int
}

// New makes an idle model. ctx bounds every load issued by the model.
func New(ctx context.Context, loader view.Loader) Model {
	return Model{
		ctx:     ctx,
		loader:  loader,
		state:   view.Idle,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// State returns the current state of the model.
func (m Model) State() view.State { return m.state }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		if m.state != view.Idle {
			return m, nil
		}
		return m.startLoad()

	case loadedMsg:
		if msg.gen != m.gen || m.state != view.Loading {
			return m, nil
		}
		if msg.err != nil {
			m.state, m.page = view.Failed, news.Page{}
			return m, nil
		}
		m.state, m.page = view.Success, msg.page
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.state == view.Success || m.state == view.Failed {
				return m.startLoad()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != view.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) startLoad() (tea.Model, tea.Cmd) {
	m.gen++
	m.state = view.Loading
	return m, tea.Batch(m.spinner.Tick, m.load(m.gen))
}

func (m Model) load(gen int) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		page, err := loader.List(ctx)
		return loadedMsg{gen: gen, page: page, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	lines := []string{titleStyle.Render(render.Title), ""}

	switch m.state {
	case view.Idle, view.Loading:
		lines = append(lines, m.spinner.View()+" "+render.MsgLoading)
	case view.Failed:
		lines = append(lines, errStyle.Render(render.MsgFailed))
	case view.Success:
		lines = append(lines, m.entries(render.Page(m.page))...)
	}

	lines = append(lines, "", hintStyle.Render("r: refresh • q: quit"))

	body := strings.Join(lines, "\n")
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(body)
	}
	return body
}

func (m Model) entries(doc render.Document) []string {
	var lines []string
	for _, e := range doc.Entries {
		if e.Placeholder {
			lines = append(lines, metaStyle.Render(e.Label))
			continue
		}

		lines = append(lines, "• "+e.Label)
		if e.Navigable {
			lines = append(lines, "  "+linkStyle.Render(e.Href))
		}

		meta := e.Timestamp
		if e.Source != "" {
			meta += " · " + e.Source
		}
		lines = append(lines, "  "+metaStyle.Render(meta))
	}

	if doc.Pager != "" {
		lines = append(lines, "", metaStyle.Render(doc.Pager))
	}

	return lines
}
