package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/crudadmin/internal/model"
)

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "records.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Insert("post", model.Record{ID: model.NewID("1"), Name: "first"}))
	require.NoError(t, s.Insert("post", model.Record{ID: model.NewID("2"), Name: "second"}))
	require.NoError(t, s.Insert("tag", model.Record{ID: model.NewID("t"), Name: "go"}))

	reopened, err := Open(path)
	require.NoError(t, err)
	posts := reopened.List("post")
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Name)
	assert.Equal(t, "second", posts[1].Name)
	assert.Len(t, reopened.List("tag"), 1)
}

func TestStore_ReplaceAndDelete(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Insert("post", model.Record{ID: model.NewID("1"), Name: "a"}))
	require.NoError(t, s.Insert("post", model.Record{ID: model.NewID("2"), Name: "b"}))

	require.NoError(t, s.Replace("post", model.Record{ID: model.NewID("1"), Name: "A"}))
	got, err := s.Get("post", model.NumericID(1))
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	require.NoError(t, s.Delete("post", model.NewID("1")))
	assert.Equal(t, []model.Record{{ID: model.NewID("2"), Name: "b"}}, s.List("post"))

	assert.ErrorIs(t, s.Delete("post", model.NewID("1")), ErrNotFound)
	assert.ErrorIs(t, s.Replace("post", model.Record{ID: model.NewID("9")}), ErrNotFound)
	_, err = s.Get("tag", model.NewID("2"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_InsertRejectsDuplicatesAndMissingIDs(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Insert("tag", model.Record{ID: model.NewID("x")}))

	assert.Error(t, s.Insert("tag", model.Record{ID: model.NewID("x")}))
	assert.Error(t, s.Insert("tag", model.Record{Name: "no id"}))
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Insert("post", model.Record{ID: model.NewID("1"), Name: "a"}))

	list := s.List("post")
	list[0].Name = "mutated"
	assert.Equal(t, "a", s.List("post")[0].Name)
}
