package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/infrastructure/persistence"
	"github.com/helixml/delve/internal/database"
	"github.com/helixml/delve/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, name string) repository.Repository {
	t.Helper()
	r, err := repository.New(name, "/srv/git/"+name, "https://github.com/{name}/blob/{version}/{path}#L{lno}", "main")
	require.NoError(t, err)
	return r
}

func TestRepositoryStore_SaveAndFind(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRepositoryStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, newRepo(t, "helixml/delve"))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	_, err = store.Save(ctx, newRepo(t, "livegrep/livegrep"))
	require.NoError(t, err)

	found, err := store.FindOne(ctx, repository.WithName("helixml/delve"))
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), found.ID())
	assert.Equal(t, "/srv/git/helixml/delve", found.Path())
	assert.Equal(t, "main", found.DefaultRevision())

	all, err := store.Find(ctx, repository.WithOrderAsc("name"))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "helixml/delve", all[0].Name())
	assert.Equal(t, "livegrep/livegrep", all[1].Name())
}

func TestRepositoryStore_Update(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRepositoryStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, newRepo(t, "delve"))
	require.NoError(t, err)

	_, err = store.Save(ctx, saved.WithFavorite(true))
	require.NoError(t, err)

	favs, err := store.Find(ctx, repository.WithFavorite(true))
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "delve", favs[0].Name())
}

func TestRepositoryStore_Delete(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRepositoryStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, newRepo(t, "delve"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved))

	ok, err := store.Exists(ctx, repository.WithName("delve"))
	require.NoError(t, err)
	assert.False(t, ok)

	err = store.Delete(ctx, saved)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestValidateSchema(t *testing.T) {
	db := testdb.New(t)
	assert.NoError(t, persistence.ValidateSchema(db))
}
