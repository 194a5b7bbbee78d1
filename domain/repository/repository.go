// Package repository provides the domain model for browsable git repositories.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultRevision is used when a repository does not name one.
const DefaultRevision = "HEAD"

// ErrInvalidRepository indicates a repository is missing required fields.
var ErrInvalidRepository = errors.New("invalid repository")

// Repository is a git repository registered for browsing.
// Immutable value object; use the With* methods to derive changed copies.
type Repository struct {
	id              int64
	name            string
	path            string
	urlPattern      string
	defaultRevision string
	favorite        bool
	createdAt       time.Time
	updatedAt       time.Time
}

// New creates a Repository that has not been persisted yet.
// Name and path are required.
func New(name, path, urlPattern, defaultRevision string) (Repository, error) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	path = strings.TrimSpace(path)
	if name == "" {
		return Repository{}, errors.Join(ErrInvalidRepository, errors.New("name is required"))
	}
	if path == "" {
		return Repository{}, errors.Join(ErrInvalidRepository, errors.New("path is required"))
	}
	if defaultRevision == "" {
		defaultRevision = DefaultRevision
	}
	now := time.Now().UTC()
	return Repository{
		name:            name,
		path:            path,
		urlPattern:      strings.TrimSpace(urlPattern),
		defaultRevision: defaultRevision,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct recreates a Repository from persistence.
func Reconstruct(
	id int64,
	name, path, urlPattern, defaultRevision string,
	favorite bool,
	createdAt, updatedAt time.Time,
) Repository {
	return Repository{
		id:              id,
		name:            name,
		path:            path,
		urlPattern:      urlPattern,
		defaultRevision: defaultRevision,
		favorite:        favorite,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the database identifier.
func (r Repository) ID() int64 { return r.id }

// Name returns the display name, e.g. "helixml/delve".
func (r Repository) Name() string { return r.name }

// Path returns the local filesystem path of the git repository.
func (r Repository) Path() string { return r.path }

// URLPattern returns the external viewer pattern with {name}, {version},
// {path} and {lno} placeholders.
func (r Repository) URLPattern() string { return r.urlPattern }

// DefaultRevision returns the revision shown when none is requested.
func (r Repository) DefaultRevision() string { return r.defaultRevision }

// Favorite reports whether the repository is pinned in the repo selector.
func (r Repository) Favorite() bool { return r.favorite }

// CreatedAt returns the creation time.
func (r Repository) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last update time.
func (r Repository) UpdatedAt() time.Time { return r.updatedAt }

// WithFavorite returns a copy with the favourite flag set.
func (r Repository) WithFavorite(favorite bool) Repository {
	r.favorite = favorite
	r.updatedAt = time.Now().UTC()
	return r
}

// WithDetails returns a copy with path, url pattern and default revision
// replaced, keeping identity and favourite state.
func (r Repository) WithDetails(other Repository) Repository {
	r.path = other.path
	r.urlPattern = other.urlPattern
	r.defaultRevision = other.defaultRevision
	r.updatedAt = time.Now().UTC()
	return r
}

// Store persists repositories.
type Store interface {
	Find(ctx context.Context, options ...Option) ([]Repository, error)
	FindOne(ctx context.Context, options ...Option) (Repository, error)
	Exists(ctx context.Context, options ...Option) (bool, error)
	Count(ctx context.Context, options ...Option) (int64, error)
	Save(ctx context.Context, repo Repository) (Repository, error)
	Delete(ctx context.Context, repo Repository) error
}
