// Package tui provides the interactive terminal task list viewer.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/fentz26/taskview/internal/engine"
	"github.com/fentz26/taskview/internal/theme"
)

// Options configures a new App.
type Options struct {
	PageSize   int
	PageWindow int
	Theme      theme.Mode
}

// App is the main TUI application model. It owns the theme controller; the
// renderers below it only read the current palette.
type App struct {
	client  *Client
	view    *engine.View
	theme   *theme.Controller
	search  *SearchBarModel
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// New creates a new TUI application reading tasks through client.
func New(client *Client, opts Options) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())
	loader := engine.NewLoader(client)

	return &App{
		client:  client,
		view:    engine.NewView(loader, engine.NewPaginator(opts.PageSize, opts.PageWindow)),
		theme:   theme.NewController(opts.Theme),
		search:  NewSearchBarModel(),
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		ctx:     ctx,
		cancel:  cancel,
		width:   80,
		height:  24,
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Close tears the view down. A retrieval still in flight is cancelled and
// its result discarded.
func (a *App) Close() {
	a.view.Close()
	a.cancel()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.load())
}

// load starts the first activation of the loader.
func (a *App) load() tea.Cmd {
	ticket, ok := a.view.Loader().Begin()
	if !ok {
		return nil
	}
	return a.fetch(ticket)
}

// retry restarts a failed loader.
func (a *App) retry() tea.Cmd {
	ticket, err := a.view.Loader().BeginRetry()
	if err != nil {
		log.WithError(err).Debug("retry ignored")
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.fetch(ticket))
}

func (a *App) fetch(ticket engine.Ticket) tea.Cmd {
	loader := a.view.Loader()
	ctx := a.ctx
	return func() tea.Msg {
		applied := loader.Run(ctx, ticket)
		return tasksLoadedMsg{ticket: ticket, applied: applied}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.search.SetWidth(msg.Width - 8)
		return a, nil

	case tasksLoadedMsg:
		st := a.view.State()
		log.WithFields(log.Fields{
			"ticket":  msg.ticket,
			"applied": msg.applied,
			"phase":   st.Phase.String(),
		}).Debug("retrieval finished")
		return a, nil

	case spinner.TickMsg:
		if !a.view.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.search.Focused() {
			return a, a.updateSearch(msg)
		}
		return a, a.handleKey(msg)
	}

	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		a.Close()
		return tea.Quit
	case key.Matches(msg, a.keys.Done):
		a.search.Blur()
		return nil
	}

	changed, cmd := a.search.Update(msg)
	if changed {
		a.view.SetSearchTerm(a.search.Value())
	}
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.Close()
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(msg, a.keys.Theme):
		mode := a.theme.Toggle()
		log.WithField("theme", mode.String()).Debug("theme toggled")

	case key.Matches(msg, a.keys.Retry):
		return a.retry()
	}

	if a.view.State().Phase != engine.PhaseReady {
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Search):
		return a.search.Focus()

	case key.Matches(msg, a.keys.ClearSearch):
		if a.search.Value() != "" {
			a.search.SetValue("")
			a.view.SetSearchTerm("")
		}

	case key.Matches(msg, a.keys.PrevPage):
		a.view.PrevPage()

	case key.Matches(msg, a.keys.NextPage):
		a.view.NextPage()

	case key.Matches(msg, a.keys.FirstPage):
		a.view.SetPage(1)

	case key.Matches(msg, a.keys.LastPage):
		a.view.SetPage(a.view.TotalPages())

	case key.Matches(msg, a.keys.JumpPage):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			a.view.SetPage(n)
		}
	}
	return nil
}

// View implements tea.Model
func (a *App) View() string {
	p := a.theme.Palette()
	var b strings.Builder

	b.WriteString(a.renderHeader(p) + "\n\n")

	switch st := a.view.State(); st.Phase {
	case engine.PhasePending:
		b.WriteString(a.renderLoading(p))
	case engine.PhaseFailed:
		b.WriteString(a.renderError(p, st.Err))
	default:
		b.WriteString(a.renderTasks(p))
	}

	b.WriteString("\n\n" + a.help.View(a.keys))
	return b.String()
}

func (a *App) renderHeader(p theme.Palette) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Padding(0, 1).Render("Task Manager")
	mode := "☀ light"
	if p.Mode == theme.Dark {
		mode = "☾ dark"
	}
	right := lipgloss.NewStyle().Foreground(p.Muted).Render(mode + "  " + a.client.Endpoint())

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Background(p.Surface).
		Width(a.width).
		Render(title + strings.Repeat(" ", gap) + right)
}

func (a *App) renderLoading(p theme.Palette) string {
	return panel(p.Border).Render(
		a.spinner.View() + " " + lipgloss.NewStyle().Foreground(p.Muted).Render("Loading tasks..."),
	)
}

func (a *App) renderError(p theme.Palette, reason string) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(p.Error).Bold(true).Render("⚠"),
		lipgloss.NewStyle().Foreground(p.Error).Render("Error: "+reason),
		"",
		lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("[r] Try Again"),
	)
	return panel(p.Error).Render(body)
}

func (a *App) renderTasks(p theme.Palette) string {
	var b strings.Builder
	b.WriteString(a.search.View(p, a.width) + "\n")

	visible := a.view.Visible()
	if len(visible) == 0 {
		msg := "No tasks yet."
		if a.view.SearchTerm() != "" {
			msg = "No tasks match your search."
		}
		b.WriteString(panel(p.Border).Render(lipgloss.NewStyle().Foreground(p.Muted).Render(msg)))
	} else {
		b.WriteString(renderGrid(visible, p, a.width))
	}

	if total := a.view.TotalPages(); total > 1 {
		b.WriteString("\n" + renderPagination(a.view.Page(), total, a.view.PageNumbers(), p))
	}

	summary := lipgloss.NewStyle().Foreground(p.Muted).Render(a.view.Summary())
	b.WriteString("\n" + summary)
	return b.String()
}

func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 4)
}

type tasksLoadedMsg struct {
	ticket  engine.Ticket
	applied bool
}
