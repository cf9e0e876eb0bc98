package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a single persisted item of an entity kind. Posts and tags share
// the same shape.
type Record struct {
	ID        ID        `json:"_id,omitzero"`
	Name      string    `json:"name"`
	Age       float64   `json:"age"`
	Weight    float64   `json:"weight"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
}

// Field returns the display value for a schema key.
func (r Record) Field(key string) string {
	switch key {
	case "name":
		return r.Name
	case "age":
		return FormatNumber(r.Age)
	case "weight":
		return FormatNumber(r.Weight)
	}
	return ""
}

// SetField parses value into the field named key.
func (r *Record) SetField(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "name":
		r.Name = value
	case "age", "weight":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%s: not a number: %q", key, value)
		}
		if key == "age" {
			r.Age = n
		} else {
			r.Weight = n
		}
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

// FormatNumber renders n without trailing zeros: 30 -> "30", 60.5 -> "60.5".
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Timestamp is an epoch-milliseconds value the backend encodes as a string
// (older backends send a bare number).
type Timestamp string

func (t Timestamp) IsZero() bool { return t == "" }

// Time parses the timestamp; ok is false when it is missing or malformed.
func (t Timestamp) Time() (time.Time, bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// TimestampOf encodes tm as epoch milliseconds.
func TimestampOf(tm time.Time) Timestamp {
	return Timestamp(strconv.FormatInt(tm.UnixMilli(), 10))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	text, _, err := lenientText(data)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	*t = Timestamp(text)
	return nil
}
