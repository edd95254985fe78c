// Package tui renders the test narrative in an interactive terminal view
// with a scrollable history and a live status bar.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/specview/pkg/render"
)

// Run drives the interactive view until the feed finishes and the user
// quits. Returns the session's exit code.
func Run(ctx context.Context, feed *Feed, theme render.Theme) (int, error) {
	program := tea.NewProgram(newModel(feed, theme), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return 1, err
	}
	return finalModel.(model).code, nil
}

type lineMsg string
type finishedMsg int
type drainedMsg struct{}

type model struct {
	feed  *Feed
	theme render.Theme

	viewport viewport.Model
	spinner  spinner.Model

	lines  []string
	ready  bool
	done   bool
	follow bool
	code   int
	width  int
	height int
}

func newModel(feed *Feed, theme render.Theme) model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Muted
	return model{feed: feed, theme: theme, spinner: sp, follow: true}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.listenLines(), m.listenDone(), m.spinner.Tick)
}

func (m model) listenLines() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-m.feed.lines
		if !ok {
			return drainedMsg{}
		}
		return lineMsg(line)
	}
}

func (m model) listenDone() tea.Cmd {
	return func() tea.Msg {
		return finishedMsg(<-m.feed.done)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.code = 130
			return m, tea.Quit
		case "q", "enter":
			if m.done {
				return m, tea.Quit
			}
		case "up", "k", "pgup":
			m.follow = false
		case "end", "G":
			m.follow = true
			m.viewport.GotoBottom()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2 // status bar + divider
		m.ready = true
		m.refresh()
		return m, nil

	case lineMsg:
		m.lines = append(m.lines, string(msg))
		m.refresh()
		return m, m.listenLines()

	case drainedMsg:
		return m, nil

	case finishedMsg:
		m.done = true
		m.code = int(msg)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var status string
	if m.done {
		status = m.theme.Muted.Render("done, press q to exit")
	} else {
		pkg, test := m.feed.Active()
		status = fmt.Sprintf("%s %s", m.spinner.View(), m.theme.Muted.Render(pkg+" · "+test))
	}

	divider := m.theme.Muted.Render(strings.Repeat("─", max(m.width, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), divider, status)
}
