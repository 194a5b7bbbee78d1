package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/infrastructure/git"
	"github.com/helixml/delve/infrastructure/persistence"
	"github.com/helixml/delve/internal/testdb"
	"github.com/helixml/delve/internal/testgit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(t *testing.T) (*Navigator, testgit.Repo) {
	t.Helper()
	g := testgit.New(t, map[string]string{"main.go": testgit.Lines(100)})
	adapter := git.NewGoGitAdapter(nil)
	repos := service.NewRepositories(persistence.NewRepositoryStore(testdb.New(t)), adapter, nil)
	_, _, err := repos.Add(context.Background(), service.RepositoryParams{
		Name:       "helixml/delve",
		Path:       g.Path,
		URLPattern: "https://github.com/{name}/blob/{version}/{path}#L{lno}",
	})
	require.NoError(t, err)
	files := service.NewFileView(repos, adapter, fileview.DefaultLayout(), nil)
	return NewNavigator(files, nil), g
}

func TestNavigator_Load(t *testing.T) {
	nav, g := newTestNavigator(t)

	file, out, err := nav.Navigate(context.Background(), NavigateRequest{
		Repo:           "helixml/delve",
		Path:           "main.go",
		Action:         ActionLoad,
		Fragment:       "#L50",
		ViewportHeight: 900,
	})
	require.NoError(t, err)

	assert.Equal(t, g.Commit, file.Commit())
	assert.True(t, out.Scrolled)
	assert.Equal(t, float64(680), out.ScrollTop)
	assert.Equal(t, []string{"LC50"}, out.Highlighted)
	assert.Equal(t, "https://github.com/helixml/delve/blob/"+g.Commit+"/main.go#L50", out.Links.External)
	assert.Equal(t, "/view/helixml/delve/blob/"+g.Commit+"/main.go#L50", out.Links.Permalink)
}

func TestNavigator_ShiftClick(t *testing.T) {
	nav, _ := newTestNavigator(t)

	_, out, err := nav.Navigate(context.Background(), NavigateRequest{
		Repo:      "helixml/delve",
		Path:      "main.go",
		Action:    ActionLineShiftClick,
		Line:      14,
		Fragment:  "#L10",
		ScrollTop: 120,
	})
	require.NoError(t, err)

	assert.Equal(t, "#L10-L14", out.Fragment)
	assert.False(t, out.Scrolled)
	assert.Equal(t, float64(120), out.ScrollTop, "clicks keep the viewport where it was")
	assert.Len(t, out.Highlighted, 5)
}

func TestNavigator_LayoutOverride(t *testing.T) {
	nav, _ := newTestNavigator(t)

	_, out, err := nav.Navigate(context.Background(), NavigateRequest{
		Repo:           "helixml/delve",
		Path:           "main.go",
		Action:         ActionHashChange,
		Fragment:       "#L1-L100",
		ViewportHeight: 900,
		HeaderHeight:   100,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(90), out.ScrollTop)
}

func TestNavigator_Errors(t *testing.T) {
	nav, _ := newTestNavigator(t)
	ctx := context.Background()

	_, _, err := nav.Navigate(ctx, NavigateRequest{Repo: "helixml/delve", Path: "main.go", Action: "line.hover"})
	assert.True(t, errors.Is(err, service.ErrValidation))
	assert.True(t, errors.Is(err, ErrNoHandler))
	assert.Contains(t, err.Error(), "line.click")

	_, _, err = nav.Navigate(ctx, NavigateRequest{Repo: "helixml/delve", Path: "missing.go", Action: ActionLoad})
	assert.True(t, errors.Is(err, service.ErrNotFound))

	_, _, err = nav.Navigate(ctx, NavigateRequest{Repo: "helixml/delve", Path: "main.go", Action: ActionLineClick})
	assert.True(t, errors.Is(err, service.ErrValidation))
}

func TestNavigator_HugeRange(t *testing.T) {
	nav, _ := newTestNavigator(t)

	_, out, err := nav.Navigate(context.Background(), NavigateRequest{
		Repo:     "helixml/delve",
		Path:     "main.go",
		Action:   ActionHashChange,
		Fragment: "#L95-L9223372036854775807",
	})
	require.NoError(t, err)

	assert.Len(t, out.Highlighted, 6)
	assert.True(t, out.Scrolled)
}
