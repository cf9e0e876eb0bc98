package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_NumericIDEchoedAsNumber(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"_id":42,"name":"Ann","age":30,"weight":60}`), &rec))

	assert.Equal(t, "42", rec.ID.String())
	assert.Equal(t, "Ann", rec.Name)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":42,"name":"Ann","age":30,"weight":60}`, string(out))
}

func TestRecord_StringIDAndTimestamp(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"5a1f","name":"go","age":1,"weight":2.5,"created_at":"1700000000000"}`), &rec))

	assert.Equal(t, NewID("5a1f"), rec.ID)
	tm, ok := rec.CreatedAt.Time()
	require.True(t, ok)
	assert.Equal(t, time.UnixMilli(1700000000000), tm)
}

func TestRecord_ZeroIDOmitted(t *testing.T) {
	out, err := json.Marshal(Record{Name: "new", Age: 1, Weight: 2})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "_id")
	assert.NotContains(t, string(out), "created_at")
}

func TestID_Same(t *testing.T) {
	assert.True(t, NumericID(42).Same(NewID("42")))
	assert.NotEqual(t, NumericID(42), NewID("42"))
	assert.False(t, NewID("42").Same(NewID("43")))
}

func TestTimestamp_AcceptsBareNumber(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`1700000000000`), &ts))
	assert.Equal(t, Timestamp("1700000000000"), ts)

	_, ok := Timestamp("yesterday").Time()
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "30", FormatNumber(30))
	assert.Equal(t, "60.5", FormatNumber(60.5))
}
