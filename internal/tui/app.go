// Package tui is the interactive front-end: a dashboard of every collection,
// a list per kind, and one generic add/edit form, all driven by a root model
// that owns navigation and the notification banner.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/notify"
	"github.com/idilsaglam/crudadmin/internal/route"
)

// Options configures the root model.
type Options struct {
	Services []RecordService // one per kind, in dashboard order
	Start    route.Route
	Logger   *zap.Logger
	Now      func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	services []RecordService
	logger   *zap.Logger
	now      func() time.Time

	route  route.Route
	view   view
	viewID int
	banner notify.Banner

	width, height int
	help          help.Model
}

// New builds the root model positioned on opt.Start.
func New(opt Options) Model {
	m := Model{
		services: opt.Services,
		logger:   opt.Logger,
		now:      opt.Now,
		width:    80,
		height:   24,
		help:     help.New(),
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.open(opt.Start)
	return m
}

func (m Model) Init() tea.Cmd { return m.view.init() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, globalKeys.ForceQuit) {
			return m.quit()
		}
		if !m.view.capturing() {
			switch {
			case key.Matches(msg, globalKeys.Quit):
				return m.quit()
			case key.Matches(msg, globalKeys.Dismiss):
				m.banner = notify.Banner{}
				return m, nil
			}
		}

	case navigateMsg:
		m.open(msg.to)
		return m, m.view.init()

	case bannerMsg:
		// single slot: the newest message wins
		m.banner = msg.banner
		return m, nil

	case viewMsg:
		if msg.target() != m.viewID {
			m.logger.Debug("dropping result for closed view", zap.Int("view", msg.target()))
			return m, nil
		}
	}

	return m, m.view.update(msg)
}

// open tears down the current view and builds the one for to. Route
// parameters are resolved here, once.
func (m *Model) open(to route.Route) {
	if m.view != nil {
		m.view.close()
	}
	m.viewID++
	base := newViewBase(m.viewID, m.logger.With(zap.String("route", to.String())))

	if to.View != route.Dashboard {
		if svc := m.service(to.Kind); svc != nil {
			m.route = to
			if to.View == route.List {
				m.view = newListView(base, svc, m.now)
			} else {
				m.view = newEditorView(base, svc, to.ID)
			}
			return
		}
		m.banner = notify.New(notify.Danger, "unknown route "+to.String())
	}
	m.route = route.Home()
	m.view = newDashboardView(base, m.services, m.now)
}

func (m *Model) service(kind string) RecordService {
	for _, svc := range m.services {
		if svc.Kind().Name == kind {
			return svc
		}
	}
	return nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.view.close()
	return m, tea.Quit
}

func (m Model) View() string {
	header := titleStyle.Render("crudadmin") + " " + accentStyle.Render(m.route.String())
	banner := renderBanner(m.banner)

	keys := m.view.helpKeys()
	if !m.view.capturing() {
		keys = append(keys, globalKeys.Dismiss, globalKeys.Quit)
	}
	footer := helpStyle.Render(m.help.ShortHelpView(keys))

	used := lipgloss.Height(header) + lipgloss.Height(footer) + 1
	if banner != "" {
		used += lipgloss.Height(banner)
	}
	body := m.view.render(m.width, max(5, m.height-used))

	parts := []string{header}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body, footer)
	return strings.Join(parts, "\n")
}
