package web_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/helixml/delve"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/infrastructure/api/web"
	"github.com/helixml/delve/internal/testgit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewPath(t *testing.T) {
	tests := []struct {
		in      string
		want    web.ViewLocation
		wantErr bool
	}{
		{in: "helixml/delve/blob/HEAD/cmd/delve/main.go", want: web.ViewLocation{Repo: "helixml/delve", Kind: "blob", Revision: "HEAD", Path: "cmd/delve/main.go"}},
		{in: "delve/blob/v1/go.mod", want: web.ViewLocation{Repo: "delve", Kind: "blob", Revision: "v1", Path: "go.mod"}},
		{in: "delve/blob/HEAD/", want: web.ViewLocation{Repo: "delve", Kind: "blob", Revision: "HEAD"}},
		{in: "delve/tree/HEAD/src/lib", want: web.ViewLocation{Repo: "delve", Kind: "tree", Revision: "HEAD", Path: "src/lib"}},
		{in: "delve/tree/feature%2Fnav/", want: web.ViewLocation{Repo: "delve", Kind: "tree", Revision: "feature/nav"}},
		{in: "delve/blob/abc/docs/C%23.md", want: web.ViewLocation{Repo: "delve", Kind: "blob", Revision: "abc", Path: "docs/C#.md"}},
		{in: "helixml%2Fdelve/blob/HEAD/a.go", want: web.ViewLocation{Repo: "helixml/delve", Kind: "blob", Revision: "HEAD", Path: "a.go"}},
		{in: "delve/tree/HEAD/blob/x.go", want: web.ViewLocation{Repo: "delve", Kind: "tree", Revision: "HEAD", Path: "blob/x.go"}},
		{in: "delve/blob/", wantErr: true},
		{in: "delve/raw/HEAD/go.mod", wantErr: true},
		{in: "/blob/HEAD/go.mod", wantErr: true},
		{in: "delve/blob/HEAD/%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := web.ParseViewPath(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, service.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newRouter(t *testing.T) (http.Handler, testgit.Repo) {
	t.Helper()
	git := testgit.New(t, map[string]string{
		"README.md":       "# delve\n",
		"src/app.go":      testgit.Lines(5),
		"src/C#/notes.md": "notes\n",
	})
	dir := t.TempDir()
	client, err := delve.New(
		delve.WithSQLite(filepath.Join(dir, "test.db")),
		delve.WithRepositories(service.RepositoryParams{
			Name:       "helixml/delve",
			Path:       git.Path,
			URLPattern: "https://github.com/{name}/blob/{version}/{path}#L{lno}",
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return web.NewRouter(client).Routes(), git
}

func TestRouter_File(t *testing.T) {
	routes, git := newRouter(t)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/blob/HEAD/src/app.go", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `id="L3"`)
	assert.Contains(t, body, `id="LC5"`)
	assert.Contains(t, body, `data-action="line.click"`)
	assert.Contains(t, body, `href="/view/helixml/delve/blob/`+git.Commit+`/src/app.go"`)
	assert.Contains(t, body, `href="https://github.com/helixml/delve/blob/`+git.Commit+`/src/app.go#L1"`)
	assert.Contains(t, body, `id="directory" href="/view/helixml/delve/tree/HEAD/src"`)
}

func TestRouter_FileWithHashInName(t *testing.T) {
	routes, git := newRouter(t)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/blob/HEAD/src/C%23/notes.md", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="permalink" href="/view/helixml/delve/blob/`+git.Commit+`/src/C%23/notes.md"`)
	assert.Contains(t, body, `id="back-to-head" href="/view/helixml/delve/blob/HEAD/src/C%23/notes.md"`)
	assert.Contains(t, body, `href="https://github.com/helixml/delve/blob/`+git.Commit+`/src/C#/notes.md#L1"`)
}

func TestRouter_FileNotFound(t *testing.T) {
	routes, _ := newRouter(t)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/blob/HEAD/missing.go", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/blob/nope/src/app.go", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Index(t *testing.T) {
	routes, _ := newRouter(t)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/view/helixml/delve/tree/HEAD/"`)
}

func TestRouter_TreeRoot(t *testing.T) {
	routes, git := newRouter(t)
	git.Tag(t, "v1.0.0")

	for _, target := range []string{"/helixml/delve/tree/HEAD/", "/helixml/delve/blob/HEAD/"} {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code, target)

		body := rec.Body.String()
		assert.Contains(t, body, `<li class="dir"><a href="/view/helixml/delve/tree/HEAD/src">src/</a></li>`)
		assert.Contains(t, body, `href="/view/helixml/delve/blob/HEAD/README.md"`)
		assert.Contains(t, body, `<p id="readme"><a href="/view/helixml/delve/blob/HEAD/README.md">README.md</a></p>`)
		assert.Contains(t, body, `href="/view/helixml/delve/tree/master/">master</a>`)
		assert.Contains(t, body, `href="/view/helixml/delve/tree/v1.0.0/">v1.0.0</a>`)
	}
}

func TestRouter_TreeNested(t *testing.T) {
	routes, _ := newRouter(t)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/tree/HEAD/src", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `/ <a href="/view/helixml/delve/tree/HEAD/src">src</a>`)
	assert.Contains(t, body, `href="/view/helixml/delve/tree/HEAD/src/C%23">C#/</a>`)
	assert.Contains(t, body, `href="/view/helixml/delve/blob/HEAD/src/app.go">app.go</a>`)
	assert.NotContains(t, body, `id="readme"`)

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/tree/HEAD/src/C%23", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/view/helixml/delve/blob/HEAD/src/C%23/notes.md">notes.md</a>`)

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/tree/HEAD/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_TreeBranchWithSlash(t *testing.T) {
	routes, git := newRouter(t)
	git.Branch(t, "feature/nav")

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/helixml/delve/tree/feature%2Fnav/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<li class="current"><a href="/view/helixml/delve/tree/feature%2Fnav/">feature/nav</a></li>`)
	assert.Contains(t, body, `href="/view/helixml/delve/blob/feature%2Fnav/README.md"`)
}
