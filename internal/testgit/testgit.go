// Package testgit creates throwaway git repositories for tests.
package testgit

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a git repository created in a test temp dir.
type Repo struct {
	Path   string
	Commit string
}

// New initialises a repository holding files and commits them once.
func New(t *testing.T, files map[string]string) Repo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("testgit.New: init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("testgit.New: worktree: %v", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("testgit.New: mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(files[name]), 0o644); err != nil {
			t.Fatalf("testgit.New: write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("testgit.New: add %s: %v", name, err)
		}
	}

	hash, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	})
	if err != nil {
		t.Fatalf("testgit.New: commit: %v", err)
	}

	return Repo{Path: dir, Commit: hash.String()}
}

// Tag creates a lightweight tag at the repository's commit.
func (r Repo) Tag(t *testing.T, name string) {
	t.Helper()
	repo, err := gogit.PlainOpen(r.Path)
	if err != nil {
		t.Fatalf("testgit.Tag: open: %v", err)
	}
	if _, err := repo.CreateTag(name, plumbing.NewHash(r.Commit), nil); err != nil {
		t.Fatalf("testgit.Tag: %s: %v", name, err)
	}
}

// Branch creates a branch at the repository's commit.
func (r Repo) Branch(t *testing.T, name string) {
	t.Helper()
	repo, err := gogit.PlainOpen(r.Path)
	if err != nil {
		t.Fatalf("testgit.Branch: open: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(r.Commit))
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("testgit.Branch: %s: %v", name, err)
	}
}

// Lines returns n lines "line 1" through "line n", each newline terminated.
func Lines(n int) string {
	b := make([]byte, 0, n*8)
	for i := 1; i <= n; i++ {
		b = append(b, "line "...)
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, '\n')
	}
	return string(b)
}
