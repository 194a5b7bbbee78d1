package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/internal/database"
	"gorm.io/gorm"
)

// RepositoryStore implements repository.Store using GORM.
type RepositoryStore struct {
	database.Repository[repository.Repository, RepositoryModel]
}

var _ repository.Store = RepositoryStore{}

// NewRepositoryStore creates a new RepositoryStore.
func NewRepositoryStore(db database.Database) RepositoryStore {
	return RepositoryStore{
		Repository: database.NewRepository[repository.Repository, RepositoryModel](db, RepositoryMapper{}, "repository"),
	}
}

// Save creates or updates a repository.
func (s RepositoryStore) Save(ctx context.Context, repo repository.Repository) (repository.Repository, error) {
	model := s.Mapper().ToModel(repo)

	var result *gorm.DB
	if repo.ID() == 0 {
		result = s.DB(ctx).Create(&model)
	} else {
		result = s.DB(ctx).Save(&model)
	}

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.Repository{}, fmt.Errorf("%w: name %q already registered", repository.ErrInvalidRepository, repo.Name())
		}
		return repository.Repository{}, fmt.Errorf("save repository: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes a repository.
func (s RepositoryStore) Delete(ctx context.Context, repo repository.Repository) error {
	result := s.DB(ctx).Delete(&RepositoryModel{}, repo.ID())
	if result.Error != nil {
		return fmt.Errorf("delete repository: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: repository %d", database.ErrNotFound, repo.ID())
	}
	return nil
}
