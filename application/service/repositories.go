package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/infrastructure/git"
	"github.com/helixml/delve/internal/database"
)

// RepositoryParams describes a repository to register.
type RepositoryParams struct {
	Name            string
	Path            string
	URLPattern      string
	DefaultRevision string
}

// Repositories manages the set of browsable repositories.
type Repositories struct {
	store  repository.Store
	git    git.Adapter
	logger *slog.Logger
}

// NewRepositories creates a new Repositories service.
func NewRepositories(store repository.Store, adapter git.Adapter, logger *slog.Logger) *Repositories {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repositories{store: store, git: adapter, logger: logger}
}

// Find returns repositories matching options, favourites first.
func (s *Repositories) Find(ctx context.Context, options ...repository.Option) ([]repository.Repository, error) {
	options = append([]repository.Option{
		repository.WithOrderDesc("favorite"),
		repository.WithOrderAsc("name"),
	}, options...)
	return s.store.Find(ctx, options...)
}

// Count returns the number of repositories matching options.
func (s *Repositories) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	return s.store.Count(ctx, options...)
}

// Get returns the repository registered under name.
func (s *Repositories) Get(ctx context.Context, name string) (repository.Repository, error) {
	repo, err := s.store.FindOne(ctx, repository.WithName(name))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return repository.Repository{}, fmt.Errorf("%w: repository %q", ErrNotFound, name)
		}
		return repository.Repository{}, fmt.Errorf("find repository: %w", err)
	}
	return repo, nil
}

// Add registers a repository. If one with the same name already exists it
// is returned unchanged with created=false.
func (s *Repositories) Add(ctx context.Context, params RepositoryParams) (repository.Repository, bool, error) {
	repo, err := s.validate(ctx, params)
	if err != nil {
		return repository.Repository{}, false, err
	}

	existing, err := s.store.FindOne(ctx, repository.WithName(repo.Name()))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return repository.Repository{}, false, fmt.Errorf("check existing: %w", err)
	}

	saved, err := s.store.Save(ctx, repo)
	if err != nil {
		return repository.Repository{}, false, err
	}

	s.logger.Info("repository registered",
		slog.String("name", saved.Name()),
		slog.String("path", saved.Path()),
	)
	return saved, true, nil
}

// Seed registers every entry, updating the details of repositories that
// already exist. Entries that are not valid git repositories are skipped.
// It returns the number of entries stored.
func (s *Repositories) Seed(ctx context.Context, entries []RepositoryParams) (int, error) {
	stored := 0
	for _, params := range entries {
		repo, err := s.validate(ctx, params)
		if err != nil {
			s.logger.Warn("skipping repository",
				slog.String("name", params.Name),
				slog.String("path", params.Path),
				slog.String("error", err.Error()),
			)
			continue
		}

		existing, err := s.store.FindOne(ctx, repository.WithName(repo.Name()))
		switch {
		case err == nil:
			repo = existing.WithDetails(repo)
		case !errors.Is(err, database.ErrNotFound):
			return stored, fmt.Errorf("find repository %q: %w", repo.Name(), err)
		}

		if _, err := s.store.Save(ctx, repo); err != nil {
			return stored, fmt.Errorf("seed repository %q: %w", repo.Name(), err)
		}
		stored++
	}

	s.logger.Info("repositories seeded", slog.Int("count", stored), slog.Int("entries", len(entries)))
	return stored, nil
}

// SetFavorite pins or unpins a repository in the repository selector.
func (s *Repositories) SetFavorite(ctx context.Context, name string, favorite bool) (repository.Repository, error) {
	repo, err := s.Get(ctx, name)
	if err != nil {
		return repository.Repository{}, err
	}
	if repo.Favorite() == favorite {
		return repo, nil
	}
	return s.store.Save(ctx, repo.WithFavorite(favorite))
}

// Remove unregisters the repository. The git repository on disk is untouched.
func (s *Repositories) Remove(ctx context.Context, name string) error {
	repo, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, repo); err != nil {
		return err
	}
	s.logger.Info("repository removed", slog.String("name", name))
	return nil
}

func (s *Repositories) validate(ctx context.Context, params RepositoryParams) (repository.Repository, error) {
	repo, err := repository.New(params.Name, params.Path, params.URLPattern, params.DefaultRevision)
	if err != nil {
		return repository.Repository{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	ok, err := s.git.RepositoryExists(ctx, repo.Path())
	if err != nil {
		return repository.Repository{}, fmt.Errorf("check git repository: %w", err)
	}
	if !ok {
		return repository.Repository{}, fmt.Errorf("%w: %s is not a git repository", ErrValidation, repo.Path())
	}
	return repo, nil
}
