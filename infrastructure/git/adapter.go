// Package git reads files out of local git repositories.
package git

import (
	"context"
	"errors"
)

var (
	// ErrRevisionNotFound indicates a revision could not be resolved to a commit.
	ErrRevisionNotFound = errors.New("revision not found")
	// ErrFileNotFound indicates the path does not exist at the commit.
	ErrFileNotFound = errors.New("file not found")
	// ErrRepositoryNotFound indicates the path is not a git repository.
	ErrRepositoryNotFound = errors.New("git repository not found")
	// ErrNotDirectory indicates the path names a file where a directory was expected.
	ErrNotDirectory = errors.New("not a directory")
)

// Entry is one item of a directory listing.
type Entry struct {
	Name string
	// Path is relative to the repository root.
	Path string
	Dir  bool
	// SymlinkTarget is set for symbolic links.
	SymlinkTarget string
}

// Ref is a branch or tag.
type Ref struct {
	Name   string
	Commit string
	// Head marks the branch HEAD points at.
	Head bool
}

// Adapter reads repository content at a revision.
type Adapter interface {
	// ResolveRevision turns a branch, tag, SHA or HEAD into a full commit SHA.
	ResolveRevision(ctx context.Context, localPath string, revision string) (string, error)
	// FileContent returns the bytes of filePath at commitSHA.
	FileContent(ctx context.Context, localPath string, commitSHA string, filePath string) ([]byte, error)
	// ListFiles returns the paths of every file at commitSHA, sorted.
	ListFiles(ctx context.Context, localPath string, commitSHA string) ([]string, error)
	// ListDirectory returns the immediate children of dir at commitSHA,
	// directories first, then by name. An empty dir is the root.
	ListDirectory(ctx context.Context, localPath string, commitSHA string, dir string) ([]Entry, error)
	// Branches returns the local branches, HEAD first, then by name.
	Branches(ctx context.Context, localPath string) ([]Ref, error)
	// Tags returns the tags by name, each resolved to its commit.
	Tags(ctx context.Context, localPath string) ([]Ref, error)
	// RepositoryExists reports whether localPath holds a git repository.
	RepositoryExists(ctx context.Context, localPath string) (bool, error)
}
