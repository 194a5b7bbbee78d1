package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/domain/linerange"
	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/infrastructure/git"
)

// View path kinds.
const (
	KindBlob = "blob"
	KindTree = "tree"
)

// ViewPath returns the escaped HTML view path of a file at a revision.
func ViewPath(repoName, revision, filePath string) string {
	return viewPath(KindBlob, repoName, revision, filePath)
}

// TreePath returns the escaped HTML view path of a directory at a revision.
// An empty dir is the repository root.
func TreePath(repoName, revision, dir string) string {
	return viewPath(KindTree, repoName, revision, dir)
}

// viewPath builds /view/{repo}/{kind}/{rev}/{path}. The revision is escaped
// as a single segment so branch names may contain "/". Slashes in the repo
// name and path are kept.
func viewPath(kind, repoName, revision, p string) string {
	return "/view/" + escapeSegments(repoName) + "/" + kind + "/" + url.PathEscape(revision) + "/" + escapeSegments(strings.TrimLeft(p, "/"))
}

func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// File is a file read from a repository at a resolved commit.
type File struct {
	repo     repository.Repository
	revision string
	commit   string
	path     string
	content  []byte
}

// Repository returns the repository the file was read from.
func (f File) Repository() repository.Repository { return f.repo }

// Revision returns the revision as requested.
func (f File) Revision() string { return f.revision }

// Commit returns the resolved commit SHA.
func (f File) Commit() string { return f.commit }

// Path returns the path within the repository.
func (f File) Path() string { return f.path }

// Content returns the raw file bytes.
func (f File) Content() []byte { return f.content }

// Document lays the file out as line elements.
func (f File) Document(layout fileview.Layout) *fileview.Document {
	return fileview.NewDocument(f.content, layout)
}

// ViewState returns the initial view state for the file. The permalink pins
// the resolved commit; the head link follows the default revision.
func (f File) ViewState() ViewState {
	return ViewState{
		Repo:       f.repo.Name(),
		Revision:   f.revision,
		Commit:     f.commit,
		Path:       f.path,
		URLPattern: f.repo.URLPattern(),
		Permalink:  ViewPath(f.repo.Name(), f.commit, f.path),
		HeadLink:   ViewPath(f.repo.Name(), f.repo.DefaultRevision(), f.path),
	}
}

// FileView opens repository files for line-addressed viewing.
type FileView struct {
	repositories *Repositories
	git          git.Adapter
	layout       fileview.Layout
	logger       *slog.Logger
}

// NewFileView creates a new FileView service.
func NewFileView(repositories *Repositories, adapter git.Adapter, layout fileview.Layout, logger *slog.Logger) *FileView {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileView{
		repositories: repositories,
		git:          adapter,
		layout:       layout,
		logger:       logger,
	}
}

// Layout returns the default line layout.
func (s *FileView) Layout() fileview.Layout { return s.layout }

// Open reads path from the named repository. An empty revision means the
// repository's default revision.
func (s *FileView) Open(ctx context.Context, repoName, revision, path string) (File, error) {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return File{}, fmt.Errorf("%w: path is required", ErrValidation)
	}

	repo, revision, commit, err := s.resolve(ctx, repoName, revision)
	if err != nil {
		return File{}, err
	}

	content, err := s.git.FileContent(ctx, repo.Path(), commit, path)
	if err != nil {
		return File{}, notFound(err)
	}

	s.logger.DebugContext(ctx, "file opened",
		slog.String("repo", repo.Name()),
		slog.String("revision", revision),
		slog.String("commit", commit),
		slog.String("path", path),
	)

	return File{
		repo:     repo,
		revision: revision,
		commit:   commit,
		path:     path,
		content:  content,
	}, nil
}

// Tree lists every file of a repository at a revision.
type Tree struct {
	Repo     repository.Repository
	Revision string
	Commit   string
	Files    []string
}

// ListFiles returns every file path of the named repository at revision. An
// empty revision means the repository's default revision.
func (s *FileView) ListFiles(ctx context.Context, repoName, revision string) (Tree, error) {
	repo, revision, commit, err := s.resolve(ctx, repoName, revision)
	if err != nil {
		return Tree{}, err
	}

	files, err := s.git.ListFiles(ctx, repo.Path(), commit)
	if err != nil {
		return Tree{}, notFound(err)
	}
	return Tree{Repo: repo, Revision: revision, Commit: commit, Files: files}, nil
}

// ReadRange returns the numbered lines addressed by fragment, or the whole
// file when fragment carries no line range.
func (s *FileView) ReadRange(ctx context.Context, repoName, revision, path, fragment string) (File, Excerpt, error) {
	file, err := s.Open(ctx, repoName, revision, path)
	if err != nil {
		return File{}, Excerpt{}, err
	}

	var selection *linerange.Range
	if r, ok := linerange.Parse(fragment); ok {
		selection = &r
	}
	return file, NewExcerpt(file.Document(s.layout), selection), nil
}

// resolve looks up the repository and resolves revision, defaulting to the
// repository's default revision, to a commit.
func (s *FileView) resolve(ctx context.Context, repoName, revision string) (repository.Repository, string, string, error) {
	repo, err := s.repositories.Get(ctx, repoName)
	if err != nil {
		return repository.Repository{}, "", "", err
	}
	if revision == "" {
		revision = repo.DefaultRevision()
	}

	commit, err := s.git.ResolveRevision(ctx, repo.Path(), revision)
	if err != nil {
		return repository.Repository{}, "", "", notFound(err)
	}
	return repo, revision, commit, nil
}

func notFound(err error) error {
	if errors.Is(err, git.ErrRevisionNotFound) || errors.Is(err, git.ErrFileNotFound) || errors.Is(err, git.ErrRepositoryNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
