package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/crudadmin/internal/auth"
	"github.com/idilsaglam/crudadmin/internal/devserver"
	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/store/jsonstore"
)

type harness struct {
	t     *testing.T
	store *jsonstore.Store
	dir   string
}

// newHarness points the CLI at an in-memory dev backend and isolates
// config, credentials and logs in a temp dir.
func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv(auth.EnvVar, "")
	t.Setenv("CRUDADMIN_CREDENTIALS_DIR", filepath.Join(dir, "creds"))
	t.Setenv("CRUDADMIN_LOG_FILE", filepath.Join(dir, "crudadmin.log"))
	t.Setenv("CRUDADMIN_LOG_LEVEL", "")
	t.Setenv("CRUDADMIN_API_TIMEOUT", "")
	t.Setenv("CRUDADMIN_THEME", "mono")

	store, err := jsonstore.Open("")
	require.NoError(t, err)
	srv := httptest.NewServer(devserver.New(store, nil).Handler())
	t.Cleanup(srv.Close)
	t.Setenv("CRUDADMIN_API_URL", srv.URL)

	return &harness{t: t, store: store, dir: dir}
}

func (h *harness) run(stdin string, args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errb bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func (h *harness) seed(kind model.Kind, rec model.Record) {
	h.t.Helper()
	require.NoError(h.t, h.store.Insert(kind.Name, rec))
}

func TestLs_BothKinds(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Post, model.Record{ID: model.NumericID(1), Name: "hello", Age: 3, Weight: 1.5})
	h.seed(model.Tag, model.Record{ID: model.NewID("t1"), Name: "golang", Age: 1, Weight: 2})

	code, out, stderr := h.run("", "ls")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Posts")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "Tags")
	assert.Contains(t, out, "golang")
	assert.Less(t, strings.Index(out, "Posts"), strings.Index(out, "Tags"))
}

func TestLs_OneKindAndEmpty(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "ls", "tags")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Tags")
	assert.Contains(t, out, "no items")
	assert.NotContains(t, out, "Posts")
}

func TestUsageErrorsExitTwo(t *testing.T) {
	h := newHarness(t)
	cases := [][]string{
		{"ls", "comments"},
		{"get", "post"},
		{"add", "post", "--name", "x", "--age", "old", "--weight", "1"},
		{"add", "post", "--name", "x", "--age", "NaN", "--weight", "1"},
		{"edit", "post", "1"},
		{"--no-such-flag"},
		{"unexpected"},
		{"--route", "/nowhere"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			code, _, stderr := h.run("", args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr, "✖")
		})
	}
}

func TestAddGetEditRm(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("", "add", "post", "--name", "Ann", "--age", "30", "--weight", "60")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "added post")

	posts := h.store.List("post")
	require.Len(t, posts, 1)
	id := posts[0].ID.String()
	assert.Equal(t, "Ann", posts[0].Name)

	code, out, _ = h.run("", "get", "post", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "- Name", "mono theme bullets each field")

	code, _, stderr = h.run("", "edit", "post", id, "--weight", "61.5")
	require.Equal(t, 0, code, stderr)
	got, err := h.store.Get("post", model.NewID(id))
	require.NoError(t, err)
	assert.Equal(t, 61.5, got.Weight)
	assert.Equal(t, "Ann", got.Name, "unchanged fields are kept")

	code, out, _ = h.run("n\n", "rm", "post", id)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "aborted")
	assert.Len(t, h.store.List("post"), 1)

	code, out, _ = h.run("y\n", "rm", "post", id)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "deleted post "+id)
	assert.Empty(t, h.store.List("post"))
}

func TestRm_YesSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Tag, model.Record{ID: model.NewID("t1"), Name: "go", Age: 1, Weight: 1})

	code, out, _ := h.run("", "rm", "tag", "t1", "--yes")

	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "[y/N]")
	assert.Empty(t, h.store.List("tag"))
}

func TestBackendErrorsExitOne(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("", "get", "tag", "missing")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "404 Not Found")
}

func TestUnreachableBackend(t *testing.T) {
	h := newHarness(t)
	t.Setenv("CRUDADMIN_API_URL", "http://127.0.0.1:1")

	code, _, stderr := h.run("", "ls", "post")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "backend unreachable")
}

func TestAuthLifecycle(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("", "auth", "status")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "not logged in")

	// header {"alg":"none"}, payload {"sub":"ann","exp":4102444800}
	jwt := "eyJhbGciOiJub25lIn0.eyJzdWIiOiJhbm4iLCJleHAiOjQxMDI0NDQ4MDB9.sig"
	code, out, stderr := h.run(jwt+"\n", "auth", "login")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "token saved")
	assert.FileExists(t, filepath.Join(h.dir, "creds", "credentials.json"))
	assert.NoDirExists(t, filepath.Join(h.dir, ".crudadmin"), "credentials_dir replaces the home default")

	code, out, _ = h.run("", "auth", "whoami")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "sub")
	assert.Contains(t, out, "ann")

	code, out, _ = h.run("", "auth", "status")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "file")
	assert.Contains(t, out, "from now")

	code, _, _ = h.run("", "auth", "logout")
	assert.Equal(t, 0, code)
	_, err := os.Stat(filepath.Join(h.dir, "creds", "credentials.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServe_StopsOnCancel(t *testing.T) {
	newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	var out, errb bytes.Buffer

	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"serve", "--addr", "127.0.0.1:0", "--data", "data.json"}, strings.NewReader(""), &out, &errb)
	}()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, 0, code, errb.String())
		assert.Contains(t, out.String(), "serving posts and tags on 127.0.0.1:0")
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "conf", "crudadmin.yaml")

	code, out, _ := h.run("", "--config", path, "config", "path")
	assert.Equal(t, 0, code)
	assert.Equal(t, path+"\n", out)

	code, out, stderr := h.run("", "--config", path, "config", "init")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "wrote "+path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "base_url:")
	assert.Contains(t, string(b), "127.0.0.1")

	code, _, stderr = h.run("", "--config", path, "config", "init")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = h.run("", "--config", path, "config", "init", "--force")
	assert.Equal(t, 0, code)
}
