package service

import (
	"context"
	"errors"
	"testing"

	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/infrastructure/git"
	"github.com/helixml/delve/internal/testgit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectoryView(t *testing.T) (*FileView, testgit.Repo) {
	t.Helper()
	repos := newTestRepositories(t)
	g := testgit.New(t, map[string]string{
		"Readme.MD":       "upper-case extension is not a readme\n",
		"readme.rst":      "docs\n",
		"go.mod":          "module x\n",
		"src/main.go":     testgit.Lines(3),
		"src/lib/util.go": "package lib\n",
	})
	g.Branch(t, "feature/nav")
	g.Tag(t, "v1.0.0")
	_, _, err := repos.Add(context.Background(), RepositoryParams{Name: "helixml/delve", Path: g.Path})
	require.NoError(t, err)
	return NewFileView(repos, repos.git, fileview.DefaultLayout(), nil), g
}

func TestBreadcrumbs(t *testing.T) {
	assert.Nil(t, Breadcrumbs(""))
	assert.Nil(t, Breadcrumbs("/"))
	assert.Equal(t, []Breadcrumb{
		{Name: "src", Path: "src"},
		{Name: "lib", Path: "src/lib"},
	}, Breadcrumbs("/src/lib/"))
}

func TestFileView_ListDirectory_Root(t *testing.T) {
	files, g := newTestDirectoryView(t)

	d, err := files.ListDirectory(context.Background(), "helixml/delve", "", "")
	require.NoError(t, err)

	assert.Equal(t, g.Commit, d.Commit)
	assert.Equal(t, "HEAD", d.Revision)
	assert.Empty(t, d.Path)
	assert.Empty(t, d.Breadcrumbs)
	assert.Equal(t, "readme.rst", d.Readme)

	var names []string
	for _, e := range d.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"src", "Readme.MD", "go.mod", "readme.rst"}, names)
}

func TestFileView_ListDirectory_Nested(t *testing.T) {
	files, _ := newTestDirectoryView(t)

	d, err := files.ListDirectory(context.Background(), "helixml/delve", "v1.0.0", "src")
	require.NoError(t, err)

	assert.Equal(t, "src", d.Path)
	assert.Equal(t, []Breadcrumb{{Name: "src", Path: "src"}}, d.Breadcrumbs)
	assert.Empty(t, d.Readme)
	assert.Equal(t, []git.Entry{
		{Name: "lib", Path: "src/lib", Dir: true},
		{Name: "main.go", Path: "src/main.go"},
	}, d.Entries)
}

func TestFileView_ListDirectory_NotFound(t *testing.T) {
	files, _ := newTestDirectoryView(t)
	ctx := context.Background()

	_, err := files.ListDirectory(ctx, "helixml/delve", "", "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = files.ListDirectory(ctx, "helixml/delve", "", "go.mod")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = files.ListDirectory(ctx, "helixml/delve", "no-such-tag", "")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = files.ListDirectory(ctx, "nobody/nothing", "", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileView_Refs(t *testing.T) {
	files, g := newTestDirectoryView(t)

	refs, err := files.Refs(context.Background(), "helixml/delve")
	require.NoError(t, err)

	assert.Equal(t, []git.Ref{
		{Name: "master", Commit: g.Commit, Head: true},
		{Name: "feature/nav", Commit: g.Commit},
	}, refs.Branches)
	assert.Equal(t, []git.Ref{{Name: "v1.0.0", Commit: g.Commit}}, refs.Tags)

	_, err = files.Refs(context.Background(), "nobody/nothing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
