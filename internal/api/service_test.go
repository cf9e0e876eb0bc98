package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/crudadmin/internal/model"
)

func newTestService(t *testing.T, kind model.Kind, h http.HandlerFunc, opts ...Option) *Service {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	opts = append([]Option{WithHTTPClient(server.Client())}, opts...)
	return NewClient(server.URL+"/api", opts...).Service(kind)
}

func TestService_List(t *testing.T) {
	svc := newTestService(t, model.Post, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[{"_id":"b","name":"second","age":2,"weight":2},{"_id":"a","name":"first","age":1,"weight":1}]`))
	})

	got, err := svc.List(context.Background())
	require.NoError(t, err)

	want := []model.Record{
		{ID: model.NewID("b"), Name: "second", Age: 2, Weight: 2},
		{ID: model.NewID("a"), Name: "first", Age: 1, Weight: 1},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(model.ID{})); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestService_ListEmptyBody(t *testing.T) {
	svc := newTestService(t, model.Tag, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_GetSendsToken(t *testing.T) {
	svc := newTestService(t, model.Post, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/42", r.URL.Path)
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"_id":42,"name":"Ann","age":30,"weight":60}`))
	}, WithToken("s3cret"))

	got, err := svc.Get(context.Background(), model.NewID("42"))
	require.NoError(t, err)
	assert.Equal(t, model.Record{ID: model.NumericID(42), Name: "Ann", Age: 30, Weight: 60}, got)
}

func TestService_CreateOmitsID(t *testing.T) {
	var body map[string]any
	svc := newTestService(t, model.Tag, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tags", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"new-1","name":"go","age":1,"weight":2,"created_at":"1700000000000"}`))
	})

	got, err := svc.Create(context.Background(), model.Record{ID: model.NewID("stale"), Name: "go", Age: 1, Weight: 2})
	require.NoError(t, err)

	assert.NotContains(t, body, "_id")
	assert.Equal(t, "go", body["name"])
	assert.Equal(t, model.NewID("new-1"), got.ID)
	assert.Equal(t, model.Timestamp("1700000000000"), got.CreatedAt)
}

func TestService_UpdateSendsIDInBody(t *testing.T) {
	var raw []byte
	svc := newTestService(t, model.Post, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		raw, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"ok":true}`))
	})

	in := model.Record{ID: model.NumericID(42), Name: "Ann", Age: 30, Weight: 60}
	got, err := svc.Update(context.Background(), in)
	require.NoError(t, err)

	assert.JSONEq(t, `{"_id":42,"name":"Ann","age":30,"weight":60}`, string(raw))
	assert.Equal(t, in, got)
}

func TestService_UpdateWithoutID(t *testing.T) {
	svc := NewClient("http://127.0.0.1:1").Service(model.Post)

	_, err := svc.Update(context.Background(), model.Record{Name: "x"})
	assert.ErrorIs(t, err, ErrMissingID)
	assert.ErrorIs(t, svc.Delete(context.Background(), model.ID{}), ErrMissingID)
}

func TestService_Delete(t *testing.T) {
	called := 0
	svc := newTestService(t, model.Tag, func(w http.ResponseWriter, r *http.Request) {
		called++
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/tags/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, svc.Delete(context.Background(), model.NewID("a/b")))
	assert.Equal(t, 1, called)
}

func TestService_ErrorStatus(t *testing.T) {
	svc := newTestService(t, model.Post, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"ok":false,"error":"post not found"}`))
	})

	_, err := svc.Get(context.Background(), model.NewID("404"))
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "post not found", apiErr.Message)
	assert.Equal(t, "GET /posts/404: 404 Not Found: post not found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestService_Timeout(t *testing.T) {
	release := make(chan struct{})
	svc := newTestService(t, model.Post, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"message":"boom"}`)))
	assert.Equal(t, "plain failure", errorMessage([]byte("plain failure\n")))
	assert.Equal(t, "", errorMessage([]byte("<html>bad gateway</html>")))
	assert.Equal(t, "", errorMessage(nil))
}
