package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the backend-assigned record identifier.
// The client treats it as opaque text but remembers whether the backend sent
// it as a JSON number so it can be echoed back in the same form.
type ID struct {
	text    string
	numeric bool
}

// NewID wraps s as a string identifier.
func NewID(s string) ID { return ID{text: s} }

// NumericID wraps n as a numeric identifier.
func NumericID(n int64) ID { return ID{text: strconv.FormatInt(n, 10), numeric: true} }

func (id ID) String() string { return id.text }

// IsZero reports whether no identifier has been assigned.
func (id ID) IsZero() bool { return id.text == "" }

// Same compares the textual form only, so a route parameter "42" matches a
// record whose backend id is the number 42.
func (id ID) Same(other ID) bool { return id.text == other.text }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	text, numeric, err := lenientText(data)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID{text: text, numeric: numeric}
	return nil
}

// lenientText accepts a JSON string, number or null.
func lenientText(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return "", false, nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return s, false, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", false, fmt.Errorf("want string or number, got %s", data)
	}
	return n.String(), true, nil
}
