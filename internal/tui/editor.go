package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/errfmt"
	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/notify"
	"github.com/idilsaglam/crudadmin/internal/route"
)

const (
	msgAdded         = "item added successfully."
	msgEdited        = "item edited successfully."
	msgDeleted       = "item deleted successfully."
	msgEditCancelled = "item editing cancelled."
	msgAddCancelled  = "item adding cancelled."
	confirmDelete    = "Are you sure you want to permanently delete this item?"
)

// editorView is the add/edit form shared by every kind. The mode is fixed
// when the view is created: a zero id means add mode.
type editorView struct {
	viewBase
	svc  RecordService
	kind model.Kind
	id   model.ID

	record     model.Record // last record loaded from the backend
	inputs     []textinput.Model
	focus      int
	invalid    map[string]string
	loading    bool
	saving     bool
	confirming bool
}

func newEditorView(base viewBase, svc RecordService, id model.ID) *editorView {
	e := &editorView{viewBase: base, svc: svc, kind: svc.Kind(), id: id}
	for _, f := range e.kind.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = strings.ToLower(f.Label)
		ti.CharLimit = 200
		ti.Width = 40
		ti.Cursor.SetMode(cursor.CursorStatic)
		e.inputs = append(e.inputs, ti)
	}
	e.setFocus(0)
	return e
}

func (e *editorView) editing() bool { return !e.id.IsZero() }

func (e *editorView) init() tea.Cmd {
	if !e.editing() {
		return nil
	}
	e.loading = true
	return loadRecord(&e.viewBase, e.svc, e.id)
}

func (e *editorView) update(msg tea.Msg) tea.Cmd {
	if e.closed() {
		return nil
	}
	switch msg := msg.(type) {
	case recordLoadedMsg:
		e.loading = false
		if msg.err != nil {
			e.logger.Warn("record load failed",
				zap.String("kind", e.kind.Name), zap.String("id", e.id.String()), zap.Error(msg.err))
			return setBanner(notify.Danger, errfmt.Format(msg.err))
		}
		e.record = msg.record
		e.patch(e.kind.Values(msg.record))
		return nil

	case savedMsg:
		e.saving = false
		if msg.err != nil {
			return e.writeFailed(msg.op, msg.err)
		}
		e.record = msg.record
		text := msgEdited
		if msg.op == "create" {
			text = msgAdded
		}
		return tea.Batch(setBanner(notify.Success, text), navigate(route.ListOf(e.kind)))

	case deletedMsg:
		e.saving = false
		if msg.err != nil {
			return e.writeFailed("delete", msg.err)
		}
		return tea.Batch(setBanner(notify.Success, msgDeleted), navigate(route.ListOf(e.kind)))

	case tea.KeyMsg:
		return e.handleKey(msg)
	}
	return nil
}

func (e *editorView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if e.confirming {
		e.confirming = false
		if key.Matches(msg, editorKeys.Confirm) {
			e.saving = true
			return deleteRecord(&e.viewBase, e.svc, e.id)
		}
		return nil
	}

	switch {
	case key.Matches(msg, editorKeys.Cancel):
		return e.cancel()
	case key.Matches(msg, editorKeys.Next):
		e.setFocus(e.focus + 1)
		return nil
	case key.Matches(msg, editorKeys.Prev):
		e.setFocus(e.focus - 1)
		return nil
	case key.Matches(msg, editorKeys.Save):
		return e.submit()
	case key.Matches(msg, editorKeys.Enter):
		if e.focus < len(e.inputs)-1 {
			e.setFocus(e.focus + 1)
			return nil
		}
		return e.submit()
	case key.Matches(msg, editorKeys.Delete):
		if e.editing() && !e.busy() {
			e.confirming = true
		}
		return nil
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return cmd
}

func (e *editorView) busy() bool { return e.loading || e.saving }

func (e *editorView) values() map[string]string {
	out := make(map[string]string, len(e.inputs))
	for i, f := range e.kind.Fields {
		out[f.Key] = e.inputs[i].Value()
	}
	return out
}

func (e *editorView) patch(values map[string]string) {
	for i, f := range e.kind.Fields {
		e.inputs[i].SetValue(values[f.Key])
	}
}

func (e *editorView) setFocus(i int) {
	n := len(e.inputs)
	if n == 0 {
		return
	}
	e.focus = (i%n + n) % n
	for j := range e.inputs {
		if j == e.focus {
			e.inputs[j].Focus()
		} else {
			e.inputs[j].Blur()
		}
	}
}

// submit validates the form and issues exactly one create or update.
func (e *editorView) submit() tea.Cmd {
	if e.busy() {
		return nil
	}
	rec, err := e.kind.Decode(e.record, e.values())
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			e.invalid = verr.Fields
		}
		return nil
	}
	e.invalid = nil
	e.saving = true

	if !e.editing() {
		rec.ID = model.ID{}
		return createRecord(&e.viewBase, e.svc, rec)
	}
	// keep the backend's form of the id (number or string) when it matches the route
	rec.ID = e.id
	if e.record.ID.Same(e.id) {
		rec.ID = e.record.ID
	}
	return updateRecord(&e.viewBase, e.svc, rec)
}

// cancel is ignored while a request is in flight; its reply would land on
// the reset form.
func (e *editorView) cancel() tea.Cmd {
	if e.busy() {
		return nil
	}
	e.record = model.Record{}
	e.invalid = nil
	e.patch(nil)
	e.setFocus(0)
	if !e.editing() {
		return tea.Batch(setBanner(notify.Warning, msgAddCancelled), navigate(route.ListOf(e.kind)))
	}
	e.loading = true
	return tea.Batch(setBanner(notify.Warning, msgEditCancelled), loadRecord(&e.viewBase, e.svc, e.id))
}

func (e *editorView) writeFailed(op string, err error) tea.Cmd {
	e.logger.Error("write failed",
		zap.String("op", op),
		zap.String("kind", e.kind.Name),
		zap.String("id", e.id.String()),
		zap.Error(err),
	)
	return setBanner(notify.Danger, errfmt.Format(err))
}

func (e *editorView) render(width, height int) string {
	var b strings.Builder
	title := "Add " + e.kind.Name
	if e.editing() {
		title = "Edit " + e.kind.Name + " " + mutedStyle.Render(e.id.String())
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for i, f := range e.kind.Fields {
		label := f.Label
		if f.Required {
			label += "*"
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(e.inputs[i].View())
		if msg, ok := e.invalid[f.Key]; ok {
			b.WriteString("  " + errorStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	switch {
	case e.confirming:
		b.WriteString("\n" + warningStyle.Render(confirmDelete+" [y/N]"))
	case e.loading:
		b.WriteString("\n" + mutedStyle.Render("loading…"))
	case e.saving:
		b.WriteString("\n" + mutedStyle.Render("saving…"))
	}
	return panelStyle.Render(b.String())
}

// capturing is always true: every printable key belongs to a form field.
func (e *editorView) capturing() bool { return true }

func (e *editorView) helpKeys() []key.Binding {
	keys := []key.Binding{editorKeys.Next, editorKeys.Save, editorKeys.Cancel}
	if e.editing() {
		keys = append(keys, editorKeys.Delete)
	}
	return keys
}
