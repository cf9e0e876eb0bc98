package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/notify"
	"github.com/idilsaglam/crudadmin/internal/route"
)

// RecordService is what the views need from the HTTP service layer.
type RecordService interface {
	Kind() model.Kind
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, id model.ID) (model.Record, error)
	Create(ctx context.Context, rec model.Record) (model.Record, error)
	Update(ctx context.Context, rec model.Record) (model.Record, error)
	Delete(ctx context.Context, id model.ID) error
}

// view is one screen. Views are created for a single route and closed when
// the root navigates away; a closed view never sees another message.
type view interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	render(width, height int) string
	close()
	// capturing reports whether keystrokes are text input (filter or form
	// field) so global single-letter keys must not fire.
	capturing() bool
	helpKeys() []key.Binding
}

// viewBase carries the identity and lifetime of a view.
type viewBase struct {
	id     int
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

func newViewBase(id int, logger *zap.Logger) viewBase {
	ctx, cancel := context.WithCancel(context.Background())
	return viewBase{id: id, ctx: ctx, cancel: cancel, logger: logger}
}

func (b *viewBase) close()       { b.cancel() }
func (b *viewBase) closed() bool { return b.ctx.Err() != nil }

// ---------------------------------------------------
// Messages
// ---------------------------------------------------

type navigateMsg struct{ to route.Route }

type bannerMsg struct{ banner notify.Banner }

// viewMsg is a result addressed to the view that issued the request.
type viewMsg interface{ target() int }

type listLoadedMsg struct {
	view    int
	kind    string
	records []model.Record
	err     error
}

type recordLoadedMsg struct {
	view   int
	record model.Record
	err    error
}

type savedMsg struct {
	view   int
	op     string // "create" | "update"
	record model.Record
	err    error
}

type deletedMsg struct {
	view int
	err  error
}

func (m listLoadedMsg) target() int   { return m.view }
func (m recordLoadedMsg) target() int { return m.view }
func (m savedMsg) target() int        { return m.view }
func (m deletedMsg) target() int      { return m.view }

// ---------------------------------------------------
// Commands
// ---------------------------------------------------

func navigate(to route.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func setBanner(level notify.Level, msg string) tea.Cmd {
	return func() tea.Msg { return bannerMsg{banner: notify.New(level, msg)} }
}

func loadList(b *viewBase, svc RecordService) tea.Cmd {
	ctx, id := b.ctx, b.id
	return func() tea.Msg {
		recs, err := svc.List(ctx)
		return listLoadedMsg{view: id, kind: svc.Kind().Name, records: recs, err: err}
	}
}

func loadRecord(b *viewBase, svc RecordService, recID model.ID) tea.Cmd {
	ctx, id := b.ctx, b.id
	return func() tea.Msg {
		rec, err := svc.Get(ctx, recID)
		return recordLoadedMsg{view: id, record: rec, err: err}
	}
}

func createRecord(b *viewBase, svc RecordService, rec model.Record) tea.Cmd {
	ctx, id := b.ctx, b.id
	return func() tea.Msg {
		out, err := svc.Create(ctx, rec)
		return savedMsg{view: id, op: "create", record: out, err: err}
	}
}

func updateRecord(b *viewBase, svc RecordService, rec model.Record) tea.Cmd {
	ctx, id := b.ctx, b.id
	return func() tea.Msg {
		out, err := svc.Update(ctx, rec)
		return savedMsg{view: id, op: "update", record: out, err: err}
	}
}

func deleteRecord(b *viewBase, svc RecordService, recID model.ID) tea.Cmd {
	ctx, id := b.ctx, b.id
	return func() tea.Msg {
		return deletedMsg{view: id, err: svc.Delete(ctx, recID)}
	}
}
