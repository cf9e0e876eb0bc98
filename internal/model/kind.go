package model

import (
	"sort"
	"strings"
)

// Field describes one editable attribute of a record.
type Field struct {
	Key      string
	Label    string
	Required bool
	Numeric  bool
}

// Kind is the configuration of one entity kind: where it lives on the
// backend, where it lives in the navigation tree, and which fields it edits.
type Kind struct {
	Name        string // singular, lower case: "post"
	Title       string // "Posts"
	Endpoint    string // REST collection path: "/posts"
	RoutePrefix string // navigation prefix: "/post"
	Fields      []Field
}

var recordFields = []Field{
	{Key: "name", Label: "Name", Required: true},
	{Key: "age", Label: "Age", Required: true, Numeric: true},
	{Key: "weight", Label: "Weight", Required: true, Numeric: true},
}

var (
	Post = Kind{Name: "post", Title: "Posts", Endpoint: "/posts", RoutePrefix: "/post", Fields: recordFields}
	Tag  = Kind{Name: "tag", Title: "Tags", Endpoint: "/tags", RoutePrefix: "/tag", Fields: recordFields}
)

// Kinds returns every supported entity kind in display order.
func Kinds() []Kind { return []Kind{Post, Tag} }

// LookupKind resolves a kind by its singular or plural name.
func LookupKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if name == k.Name || name == k.Name+"s" {
			return k, true
		}
	}
	return Kind{}, false
}

// ValidationError lists the fields that failed validation, keyed by field key.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "invalid record: " + strings.Join(parts, ", ")
}

// Decode validates form values against the kind's schema and builds a record
// on top of base, so fields the form does not edit survive a full replace.
func (k Kind) Decode(base Record, values map[string]string) (Record, error) {
	rec := base
	bad := map[string]string{}
	for _, f := range k.Fields {
		v := strings.TrimSpace(values[f.Key])
		if v == "" {
			if f.Required {
				bad[f.Key] = "required"
			}
			continue
		}
		if err := rec.SetField(f.Key, v); err != nil {
			bad[f.Key] = "must be a number"
		}
	}
	if len(bad) > 0 {
		return Record{}, &ValidationError{Fields: bad}
	}
	return rec, nil
}

// Values returns the form values of rec, keyed by field key.
func (k Kind) Values(rec Record) map[string]string {
	out := make(map[string]string, len(k.Fields))
	for _, f := range k.Fields {
		out[f.Key] = rec.Field(f.Key)
	}
	return out
}

func (k Kind) String() string { return k.Name }
