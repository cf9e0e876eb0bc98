// Package route parses and renders navigation routes:
//
//	/            dashboard
//	/post        post list       /tag        tag list
//	/post/new    add a post      /tag/new    add a tag
//	/post/:id    edit a post     /tag/:id    edit a tag
package route

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/idilsaglam/crudadmin/internal/model"
)

// View is the screen a route selects.
type View int

const (
	Dashboard View = iota
	List
	Editor
)

const newSegment = "new"

// Route is a resolved navigation target. Kind is empty for the dashboard;
// ID is zero in add mode.
type Route struct {
	View View
	Kind string
	ID   model.ID
}

// Home is the dashboard route.
func Home() Route { return Route{View: Dashboard} }

// ListOf is the list route of kind.
func ListOf(kind model.Kind) Route { return Route{View: List, Kind: kind.Name} }

// Add is the add-mode editor route of kind.
func Add(kind model.Kind) Route { return Route{View: Editor, Kind: kind.Name} }

// Edit is the edit-mode editor route of the record id.
func Edit(kind model.Kind, id model.ID) Route { return Route{View: Editor, Kind: kind.Name, ID: id} }

// IsAdd reports whether r opens the editor without an identifier.
func (r Route) IsAdd() bool { return r.View == Editor && r.ID.IsZero() }

// Parse resolves a path against the known kinds.
func Parse(path string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return Home(), nil
	}
	segs := strings.Split(trimmed, "/")
	if len(segs) > 2 {
		return Route{}, fmt.Errorf("unknown route %q", path)
	}

	var kind model.Kind
	found := false
	for _, k := range model.Kinds() {
		if "/"+segs[0] == k.RoutePrefix {
			kind, found = k, true
			break
		}
	}
	if !found {
		return Route{}, fmt.Errorf("unknown route %q", path)
	}

	if len(segs) == 1 {
		return ListOf(kind), nil
	}
	if segs[1] == newSegment {
		return Add(kind), nil
	}
	id, err := url.PathUnescape(segs[1])
	if err != nil || id == "" {
		return Route{}, fmt.Errorf("bad identifier in route %q", path)
	}
	return Edit(kind, model.NewID(id)), nil
}

func (r Route) String() string {
	if r.View == Dashboard {
		return "/"
	}
	k, ok := model.LookupKind(r.Kind)
	if !ok {
		return "/"
	}
	switch {
	case r.View == List:
		return k.RoutePrefix
	case r.IsAdd():
		return k.RoutePrefix + "/" + newSegment
	}
	return k.RoutePrefix + "/" + url.PathEscape(r.ID.String())
}
