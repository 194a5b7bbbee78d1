package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitAdapter implements Adapter using go-git library.
type GoGitAdapter struct {
	logger *slog.Logger
}

// NewGoGitAdapter creates a new GoGitAdapter.
func NewGoGitAdapter(logger *slog.Logger) *GoGitAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoGitAdapter{logger: logger}
}

// ResolveRevision resolves HEAD or an empty revision to the checked out
// commit, then tries a full SHA, a local or origin branch, a tag, and
// finally go-git's revision syntax (e.g. "main~2").
func (g *GoGitAdapter) ResolveRevision(ctx context.Context, localPath string, revision string) (string, error) {
	repo, err := open(localPath)
	if err != nil {
		return "", err
	}

	revision = strings.TrimSpace(revision)
	if revision == "" || revision == "HEAD" {
		head, err := repo.Head()
		if err != nil {
			return "", fmt.Errorf("%w: HEAD: %v", ErrRevisionNotFound, err)
		}
		return head.Hash().String(), nil
	}

	if plumbing.IsHash(revision) {
		if _, err := repo.CommitObject(plumbing.NewHash(revision)); err == nil {
			return revision, nil
		}
	}

	if ref, err := findBranchRef(repo, revision); err == nil {
		return ref.Hash().String(), nil
	}

	if ref, err := repo.Tag(revision); err == nil {
		// Annotated tags point at a tag object rather than the commit.
		if tag, err := repo.TagObject(ref.Hash()); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return "", fmt.Errorf("%w: tag %s: %v", ErrRevisionNotFound, revision, err)
			}
			return commit.Hash.String(), nil
		}
		return ref.Hash().String(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		g.logger.DebugContext(ctx, "revision lookup failed",
			slog.String("path", localPath),
			slog.String("revision", revision),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: %s", ErrRevisionNotFound, revision)
	}
	return hash.String(), nil
}

// FileContent returns file content at specific commit.
func (g *GoGitAdapter) FileContent(_ context.Context, localPath string, commitSHA string, filePath string) ([]byte, error) {
	repo, err := open(localPath)
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(plumbing.NewHash(commitSHA))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, commitSHA)
	}

	file, err := commit.File(strings.TrimPrefix(filePath, "/"))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return []byte(content), nil
}

// ListFiles returns all file paths at a commit.
func (g *GoGitAdapter) ListFiles(_ context.Context, localPath string, commitSHA string) ([]string, error) {
	repo, err := open(localPath)
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(plumbing.NewHash(commitSHA))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, commitSHA)
	}

	iter, err := commit.Files()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer iter.Close()

	var paths []string
	err = iter.ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// RepositoryExists checks if repository exists at local path.
func (g *GoGitAdapter) RepositoryExists(_ context.Context, localPath string) (bool, error) {
	_, err := gogit.PlainOpen(localPath)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return false, nil
		}
		return false, fmt.Errorf("open repository: %w", err)
	}
	return true, nil
}

func open(localPath string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(localPath)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, localPath)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, nil
}

func findBranchRef(repo *gogit.Repository, branchName string) (*plumbing.Reference, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branchName), true)
	if err == nil {
		return ref, nil
	}

	ref, err = repo.Reference(plumbing.NewRemoteReferenceName("origin", branchName), true)
	if err == nil {
		return ref, nil
	}

	return nil, fmt.Errorf("%w: branch %s", ErrRevisionNotFound, branchName)
}

// Ensure GoGitAdapter implements Adapter.
var _ Adapter = (*GoGitAdapter)(nil)
