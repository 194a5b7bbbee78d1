package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signature = &object.Signature{
	Name:  "Test",
	Email: "test@example.com",
	When:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

type fixture struct {
	path   string
	first  string
	second string
}

// newFixture creates a repository with two commits on master, a lightweight
// tag v1 and an annotated tag v1-annotated on the first commit, and a branch
// named feature on the first commit.
func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(content, msg string) plumbing.Hash {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte(content), 0o644))
		_, err := wt.Add("src/main.go")
		require.NoError(t, err)
		h, err := wt.Commit(msg, &gogit.CommitOptions{Author: signature})
		require.NoError(t, err)
		return h
	}

	first := commit("package main\n", "first")
	second := commit("package main\n\nfunc main() {}\n", "second")

	_, err = repo.CreateTag("v1", first, nil)
	require.NoError(t, err)
	_, err = repo.CreateTag("v1-annotated", first, &gogit.CreateTagOptions{Tagger: signature, Message: "v1"})
	require.NoError(t, err)
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), first)))

	return fixture{path: dir, first: first.String(), second: second.String()}
}

func TestGoGitAdapter_ResolveRevision(t *testing.T) {
	f := newFixture(t)
	g := NewGoGitAdapter(nil)
	ctx := context.Background()

	tests := []struct {
		revision string
		want     string
	}{
		{"", f.second},
		{"HEAD", f.second},
		{f.first, f.first},
		{"feature", f.first},
		{"v1", f.first},
		{"v1-annotated", f.first},
		{"HEAD~1", f.first},
	}
	for _, tt := range tests {
		t.Run(tt.revision, func(t *testing.T) {
			sha, err := g.ResolveRevision(ctx, f.path, tt.revision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sha)
		})
	}
}

func TestGoGitAdapter_ResolveRevision_Unknown(t *testing.T) {
	f := newFixture(t)
	g := NewGoGitAdapter(nil)

	_, err := g.ResolveRevision(context.Background(), f.path, "no-such-branch")
	assert.True(t, errors.Is(err, ErrRevisionNotFound))
}

func TestGoGitAdapter_FileContent(t *testing.T) {
	f := newFixture(t)
	g := NewGoGitAdapter(nil)
	ctx := context.Background()

	content, err := g.FileContent(ctx, f.path, f.second, "src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(content))

	content, err = g.FileContent(ctx, f.path, f.first, "/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(content))

	_, err = g.FileContent(ctx, f.path, f.second, "missing.go")
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestGoGitAdapter_ListFiles(t *testing.T) {
	f := newFixture(t)
	g := NewGoGitAdapter(nil)

	paths, err := g.ListFiles(context.Background(), f.path, f.second)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.go"}, paths)

	_, err = g.ListFiles(context.Background(), f.path, "0000000000000000000000000000000000000000")
	assert.True(t, errors.Is(err, ErrRevisionNotFound))
}

func TestGoGitAdapter_RepositoryExists(t *testing.T) {
	f := newFixture(t)
	g := NewGoGitAdapter(nil)
	ctx := context.Background()

	ok, err := g.RepositoryExists(ctx, f.path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.RepositoryExists(ctx, t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.ResolveRevision(ctx, t.TempDir(), "HEAD")
	assert.True(t, errors.Is(err, ErrRepositoryNotFound))
}
