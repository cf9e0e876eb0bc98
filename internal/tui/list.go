package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/errfmt"
	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/notify"
	"github.com/idilsaglam/crudadmin/internal/route"
	"github.com/idilsaglam/crudadmin/internal/ui"
)

// listItem adapts a record to bubbles/list.Item
type listItem struct {
	rec     model.Record
	created string
}

func (i listItem) FilterValue() string { return i.rec.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%-20s %s %-6s %s %-7s %s",
		it.rec.Name,
		mutedStyle.Render("age"), model.FormatNumber(it.rec.Age),
		mutedStyle.Render("weight"), model.FormatNumber(it.rec.Weight),
		mutedStyle.Render(it.created),
	)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// listView is the per-kind collection screen.
type listView struct {
	viewBase
	svc     RecordService
	now     func() time.Time
	list    list.Model
	records []model.Record
	loading bool
}

func newListView(base viewBase, svc RecordService, now func() time.Time) *listView {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = svc.Kind().Title
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()
	return &listView{viewBase: base, svc: svc, now: now, list: l}
}

func (v *listView) init() tea.Cmd {
	v.loading = true
	return loadList(&v.viewBase, v.svc)
}

func (v *listView) update(msg tea.Msg) tea.Cmd {
	if v.closed() {
		return nil
	}
	kind := v.svc.Kind()
	switch msg := msg.(type) {
	case listLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.logger.Warn("collection load failed", zap.String("kind", kind.Name), zap.Error(msg.err))
			return setBanner(notify.Danger, errfmt.Format(msg.err))
		}
		v.records = msg.records
		now := v.now()
		items := make([]list.Item, 0, len(msg.records))
		for _, r := range msg.records {
			items = append(items, listItem{rec: r, created: ui.TimeAgo(r.CreatedAt, now)})
		}
		return v.list.SetItems(items)

	case tea.KeyMsg:
		if v.capturing() {
			break
		}
		switch {
		case key.Matches(msg, browseKeys.Open):
			if it, ok := v.list.SelectedItem().(listItem); ok {
				return navigate(route.Edit(kind, it.rec.ID))
			}
			return nil
		case key.Matches(msg, browseKeys.Add):
			return navigate(route.Add(kind))
		case key.Matches(msg, browseKeys.Reload):
			if v.loading {
				return nil
			}
			return v.init()
		case key.Matches(msg, browseKeys.Back) && v.list.FilterState() == list.Unfiltered:
			return navigate(route.Home())
		}
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *listView) render(width, height int) string {
	v.list.SetSize(width-4, max(3, height-2))
	content := v.list.View()
	if v.loading {
		content = mutedStyle.Render("loading…") + "\n" + content
	}
	return panelStyle.Render(content)
}

func (v *listView) capturing() bool { return v.list.FilterState() == list.Filtering }

func (v *listView) helpKeys() []key.Binding {
	return []key.Binding{browseKeys.Open, browseKeys.Add, browseKeys.Reload, browseKeys.Back}
}
