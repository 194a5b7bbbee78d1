package v1_test

import (
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	v1 "github.com/helixml/delve/infrastructure/api/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

// Every mounted route must carry a matching @Router annotation so swag can
// document it, and every annotation must name a real route.
func TestRouterAnnotations(t *testing.T) {
	client, _ := newTestClient(t)
	mounts := map[string]chi.Router{
		"/lines":        v1.NewLinesRouter(client).Routes(),
		"/fileview":     v1.NewFileViewRouter(client).Routes(),
		"/repositories": v1.NewRepositoriesRouter(client).Routes(),
	}

	var routes []string
	for prefix, router := range mounts {
		err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			routes = append(routes, prefix+strings.TrimSuffix(route, "/")+" "+strings.ToLower(method))
			return nil
		})
		require.NoError(t, err)
	}

	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	var annotated []string
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		src, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			annotated = append(annotated, m[1]+" "+m[2])
		}
	}

	sort.Strings(routes)
	sort.Strings(annotated)
	assert.Equal(t, routes, annotated)
}
