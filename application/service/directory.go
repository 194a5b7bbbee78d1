package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/infrastructure/git"
)

// readmePattern matches README files in the markup formats GitHub renders.
var readmePattern = regexp.MustCompile(`^(?i:readme)\.(?:markdown|mdown|mkdn|md|textile|rdoc|org|creole|mediawiki|wiki|rst|asciidoc|adoc|asc|pod)$`)

// Breadcrumb is one ancestor directory of a listing.
type Breadcrumb struct {
	Name string
	// Path is relative to the repository root.
	Path string
}

// Breadcrumbs returns one entry per segment of dir, outermost first.
func Breadcrumbs(dir string) []Breadcrumb {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	segments := strings.Split(dir, "/")
	crumbs := make([]Breadcrumb, 0, len(segments))
	for i, name := range segments {
		if name == "" {
			continue
		}
		crumbs = append(crumbs, Breadcrumb{Name: name, Path: strings.Join(segments[:i+1], "/")})
	}
	return crumbs
}

// Directory is one level of a repository tree at a revision.
type Directory struct {
	Repo        repository.Repository
	Revision    string
	Commit      string
	Path        string
	Entries     []git.Entry
	Breadcrumbs []Breadcrumb
	// Readme is the path of the first README entry, empty when there is none.
	Readme string
}

// ListDirectory returns the entries directly under dir. An empty dir is the
// repository root and an empty revision the default revision.
func (s *FileView) ListDirectory(ctx context.Context, repoName, revision, dir string) (Directory, error) {
	repo, revision, commit, err := s.resolve(ctx, repoName, revision)
	if err != nil {
		return Directory{}, err
	}

	dir = strings.Trim(dir, "/")
	entries, err := s.git.ListDirectory(ctx, repo.Path(), commit, dir)
	if err != nil {
		return Directory{}, notFound(err)
	}

	d := Directory{
		Repo:        repo,
		Revision:    revision,
		Commit:      commit,
		Path:        dir,
		Entries:     entries,
		Breadcrumbs: Breadcrumbs(dir),
	}
	for _, e := range entries {
		if !e.Dir && e.SymlinkTarget == "" && readmePattern.MatchString(e.Name) {
			d.Readme = e.Path
			break
		}
	}

	s.logger.DebugContext(ctx, "directory listed",
		slog.String("repo", repo.Name()),
		slog.String("commit", commit),
		slog.String("path", dir),
		slog.Int("entries", len(entries)),
	)
	return d, nil
}

// Refs holds the branches and tags of a repository.
type Refs struct {
	Branches []git.Ref
	Tags     []git.Ref
}

// Refs lists the branches and tags of the named repository.
func (s *FileView) Refs(ctx context.Context, repoName string) (Refs, error) {
	repo, err := s.repositories.Get(ctx, repoName)
	if err != nil {
		return Refs{}, err
	}

	branches, err := s.git.Branches(ctx, repo.Path())
	if err != nil {
		return Refs{}, notFound(err)
	}
	tags, err := s.git.Tags(ctx, repo.Path())
	if err != nil {
		return Refs{}, notFound(err)
	}
	return Refs{Branches: branches, Tags: tags}, nil
}
