package persistence

import "github.com/helixml/delve/domain/repository"

// RepositoryMapper maps between domain Repository and persistence RepositoryModel.
type RepositoryMapper struct{}

// ToDomain converts a RepositoryModel to a domain Repository.
func (RepositoryMapper) ToDomain(e RepositoryModel) repository.Repository {
	return repository.Reconstruct(
		e.ID,
		e.Name,
		e.Path,
		e.URLPattern,
		e.DefaultRevision,
		e.Favorite,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Repository to a RepositoryModel.
func (RepositoryMapper) ToModel(r repository.Repository) RepositoryModel {
	return RepositoryModel{
		ID:              r.ID(),
		Name:            r.Name(),
		Path:            r.Path(),
		URLPattern:      r.URLPattern(),
		DefaultRevision: r.DefaultRevision(),
		Favorite:        r.Favorite(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}
