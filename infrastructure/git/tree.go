package git

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ListDirectory returns the entries of one directory level at a commit.
func (g *GoGitAdapter) ListDirectory(ctx context.Context, localPath string, commitSHA string, dir string) ([]Entry, error) {
	repo, err := open(localPath)
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(plumbing.NewHash(commitSHA))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, commitSHA)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get tree: %w", err)
	}

	dir = strings.Trim(dir, "/")
	if dir != "" {
		entry, err := tree.FindEntry(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		if entry.Mode != filemode.Dir {
			return nil, fmt.Errorf("%w: %w: %s", ErrFileNotFound, ErrNotDirectory, dir)
		}
		tree, err = tree.Tree(dir)
		if err != nil {
			return nil, fmt.Errorf("get tree %s: %w", dir, err)
		}
	}

	entries := make([]Entry, 0, len(tree.Entries))
	for _, te := range tree.Entries {
		e := Entry{
			Name: te.Name,
			Path: path.Join(dir, te.Name),
			Dir:  te.Mode == filemode.Dir,
		}
		if te.Mode == filemode.Symlink {
			target, err := symlinkTarget(tree, te)
			if err != nil {
				g.logger.DebugContext(ctx, "symlink target unreadable",
					slog.String("path", e.Path),
					slog.String("error", err.Error()),
				)
			}
			e.SymlinkTarget = target
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func symlinkTarget(tree *object.Tree, te object.TreeEntry) (string, error) {
	file, err := tree.TreeEntryFile(&te)
	if err != nil {
		return "", err
	}
	r, err := file.Reader()
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Branches returns the local branches of a repository.
func (g *GoGitAdapter) Branches(_ context.Context, localPath string) ([]Ref, error) {
	repo, err := open(localPath)
	if err != nil {
		return nil, err
	}

	var head plumbing.ReferenceName
	if ref, err := repo.Head(); err == nil {
		head = ref.Name()
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()

	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		refs = append(refs, Ref{
			Name:   ref.Name().Short(),
			Commit: ref.Hash().String(),
			Head:   ref.Name() == head,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk branches: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Head != refs[j].Head {
			return refs[i].Head
		}
		return refs[i].Name < refs[j].Name
	})
	return refs, nil
}

// Tags returns the tags of a repository. Annotated tags are peeled to the
// commit they point at.
func (g *GoGitAdapter) Tags(_ context.Context, localPath string) ([]Ref, error) {
	repo, err := open(localPath)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit := ref.Hash().String()
		// Lightweight tags point straight at the commit.
		if tag, err := repo.TagObject(ref.Hash()); err == nil {
			c, err := tag.Commit()
			if err != nil {
				return fmt.Errorf("peel tag %s: %w", ref.Name().Short(), err)
			}
			commit = c.Hash.String()
		}
		refs = append(refs, Ref{Name: ref.Name().Short(), Commit: commit})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tags: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}
