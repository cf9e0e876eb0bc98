package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/errfmt"
	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/notify"
	"github.com/idilsaglam/crudadmin/internal/route"
	"github.com/idilsaglam/crudadmin/internal/ui"
)

// dashboardView shows every kind's collection side by side.
type dashboardView struct {
	viewBase
	services []RecordService
	now      func() time.Time

	records map[string][]model.Record
	tables  []table.Model
	focus   int
	pending int // outstanding collection loads
}

func newDashboardView(base viewBase, services []RecordService, now func() time.Time) *dashboardView {
	d := &dashboardView{
		viewBase: base,
		services: services,
		now:      now,
		records:  map[string][]model.Record{},
	}
	for i := range services {
		t := table.New(
			table.WithColumns(recordColumns()),
			table.WithFocused(i == 0),
			table.WithHeight(10),
		)
		t.SetStyles(tableStyles())
		d.tables = append(d.tables, t)
	}
	return d
}

func recordColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 18},
		{Title: "Age", Width: 5},
		{Title: "Weight", Width: 7},
		{Title: "Created", Width: 16},
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("12"))
	s.Selected = selectedStyle
	return s
}

func (d *dashboardView) loading() bool { return d.pending > 0 }

func (d *dashboardView) init() tea.Cmd {
	return d.reload()
}

func (d *dashboardView) reload() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(d.services))
	for _, svc := range d.services {
		cmds = append(cmds, loadList(&d.viewBase, svc))
	}
	d.pending = len(cmds)
	return tea.Batch(cmds...)
}

func (d *dashboardView) update(msg tea.Msg) tea.Cmd {
	if d.closed() {
		return nil
	}
	switch msg := msg.(type) {
	case listLoadedMsg:
		if d.pending > 0 {
			d.pending--
		}
		if msg.err != nil {
			d.logger.Warn("collection load failed", zap.String("kind", msg.kind), zap.Error(msg.err))
			return setBanner(notify.Danger, errfmt.Format(msg.err))
		}
		d.records[msg.kind] = msg.records
		if i := d.indexOf(msg.kind); i >= 0 {
			d.tables[i].SetRows(d.rows(msg.records))
		}
		return nil

	case tea.KeyMsg:
		if len(d.tables) == 0 {
			return nil
		}
		kind := d.services[d.focus].Kind()
		switch {
		case key.Matches(msg, browseKeys.Next):
			d.tables[d.focus].Blur()
			d.focus = (d.focus + 1) % len(d.tables)
			d.tables[d.focus].Focus()
			return nil
		case key.Matches(msg, browseKeys.Open):
			recs := d.records[kind.Name]
			if c := d.tables[d.focus].Cursor(); c >= 0 && c < len(recs) {
				return navigate(route.Edit(kind, recs[c].ID))
			}
			return nil
		case key.Matches(msg, browseKeys.Add):
			return navigate(route.Add(kind))
		case key.Matches(msg, browseKeys.List):
			return navigate(route.ListOf(kind))
		case key.Matches(msg, browseKeys.Reload):
			// replies from the running batch would be counted against the new one
			if d.loading() {
				return nil
			}
			return d.reload()
		}
		var cmd tea.Cmd
		d.tables[d.focus], cmd = d.tables[d.focus].Update(msg)
		return cmd
	}
	return nil
}

func (d *dashboardView) indexOf(kind string) int {
	for i, svc := range d.services {
		if svc.Kind().Name == kind {
			return i
		}
	}
	return -1
}

func (d *dashboardView) rows(recs []model.Record) []table.Row {
	now := d.now()
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, table.Row{
			r.Name,
			model.FormatNumber(r.Age),
			model.FormatNumber(r.Weight),
			ui.TimeAgo(r.CreatedAt, now),
		})
	}
	return rows
}

func (d *dashboardView) render(width, height int) string {
	var b strings.Builder
	if d.loading() {
		b.WriteString(mutedStyle.Render("loading…"))
		b.WriteString("\n")
	}
	panels := make([]string, 0, len(d.tables))
	for i, svc := range d.services {
		kind := svc.Kind()
		t := d.tables[i]
		t.SetHeight(max(3, height-5))
		style := panelStyle
		if i == d.focus {
			style = focusedPanelStyle
		}
		title := titleStyle.Render(fmt.Sprintf("%s (%d)", kind.Title, len(d.records[kind.Name])))
		body := t.View()
		if len(d.records[kind.Name]) == 0 && !d.loading() {
			body = mutedStyle.Render("no items")
		}
		panels = append(panels, style.Render(title+"\n"+body))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	return b.String()
}

func (d *dashboardView) capturing() bool { return false }

func (d *dashboardView) helpKeys() []key.Binding {
	return []key.Binding{browseKeys.Next, browseKeys.Open, browseKeys.Add, browseKeys.List, browseKeys.Reload}
}
