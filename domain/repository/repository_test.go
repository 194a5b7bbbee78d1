package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNew(t *testing.T) {
	r, err := New(" /helixml/delve/ ", "/srv/git/delve", "https://github.com/{name}/blob/{version}/{path}#L{lno}", "")
	require.NoError(t, err)

	assert.Equal(t, "helixml/delve", r.Name())
	assert.Equal(t, "/srv/git/delve", r.Path())
	assert.Equal(t, DefaultRevision, r.DefaultRevision())
	assert.False(t, r.Favorite())
	assert.Zero(t, r.ID())
	assert.False(t, r.CreatedAt().IsZero())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("", "/srv/git/delve", "", "")
	assert.True(t, errors.Is(err, ErrInvalidRepository))

	_, err = New("delve", " ", "", "")
	assert.True(t, errors.Is(err, ErrInvalidRepository))
}

func TestRepository_WithFavorite(t *testing.T) {
	r, err := New("delve", "/srv/git/delve", "", "main")
	require.NoError(t, err)

	fav := r.WithFavorite(true)
	assert.True(t, fav.Favorite())
	assert.False(t, r.Favorite(), "receiver must be unchanged")
}

func TestRepository_WithDetails(t *testing.T) {
	r := Reconstruct(4, "delve", "/old", "", "main", true, testTime, testTime)
	other, err := New("delve", "/new", "https://x/{path}", "dev")
	require.NoError(t, err)

	updated := r.WithDetails(other)
	assert.Equal(t, int64(4), updated.ID())
	assert.Equal(t, "/new", updated.Path())
	assert.Equal(t, "https://x/{path}", updated.URLPattern())
	assert.Equal(t, "dev", updated.DefaultRevision())
	assert.True(t, updated.Favorite())
}

func TestBuild(t *testing.T) {
	q := Build(WithName("delve"), WithFavorite(true), WithOrderAsc("name"), WithLimit(5), WithOffset(10))

	conds := q.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, "name = delve", conds[0].String())
	assert.Equal(t, "favorite", conds[1].Field())
	assert.Equal(t, true, conds[1].Value())

	orders := q.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "name", orders[0].Field())
	assert.True(t, orders[0].Ascending())

	assert.Equal(t, 5, q.LimitValue())
	assert.Equal(t, 10, q.OffsetValue())
}
