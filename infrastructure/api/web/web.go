// Package web renders the HTML file view.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/delve"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/infrastructure/api/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"gutterID": fileview.GutterIDs.ID,
	"codeID":   fileview.CodeIDs.ID,
}).ParseFS(templateFS, "templates/*.html"))

// Router serves the repository index and file views.
type Router struct {
	client *delve.Client
	logger *slog.Logger
}

// NewRouter creates a new Router.
func NewRouter(client *delve.Client) *Router {
	return &Router{client: client, logger: client.Logger()}
}

// Routes returns the chi router for HTML pages.
func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.Index)
	router.Get("/*", r.File)

	return router
}

type indexPage struct {
	Repositories []indexEntry
}

type indexEntry struct {
	Name     string
	Favorite bool
	Href     string
}

// Index handles GET /view/ and lists repositories, favourites first.
func (r *Router) Index(w http.ResponseWriter, req *http.Request) {
	repos, err := r.client.Repositories.Find(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	page := indexPage{Repositories: make([]indexEntry, 0, len(repos))}
	for _, repo := range repos {
		page.Repositories = append(page.Repositories, indexEntry{
			Name:     repo.Name(),
			Favorite: repo.Favorite(),
			Href:     service.TreePath(repo.Name(), repo.DefaultRevision(), ""),
		})
	}
	r.render(w, req, "index.html", page)
}

type filePage struct {
	Repo         string
	Revision     string
	Commit       string
	Path         string
	DirHref      string
	Lines        []service.NumberedLine
	LineHeight   float64
	HeaderHeight float64
	External     string
	Permalink    string
	HeadLink     string
}

type treePage struct {
	Repo        string
	Revision    string
	Commit      string
	Path        string
	RootHref    string
	Breadcrumbs []link
	Entries     []treeEntry
	Readme      *link
	Branches    []refLink
	Tags        []refLink
}

type link struct {
	Name string
	Href string
}

type treeEntry struct {
	Name string
	// Href is empty for symlinks, which are shown with their target.
	Href          string
	Dir           bool
	SymlinkTarget string
}

type refLink struct {
	Name    string
	Href    string
	Current bool
}

// ViewLocation is a parsed view path.
type ViewLocation struct {
	Repo string
	// Kind is service.KindBlob or service.KindTree.
	Kind     string
	Revision string
	Path     string
}

// File handles GET /view/{repo}/blob/{rev}/{path} and
// /view/{repo}/tree/{rev}/{dir}. The selection is applied in the browser
// from the fragment, which never reaches the server. A tree path, or a blob
// path without a file, lists the directory.
func (r *Router) File(w http.ResponseWriter, req *http.Request) {
	loc, err := ParseViewPath(escapedWildcard(req))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	if loc.Kind == service.KindTree || loc.Path == "" {
		r.directory(w, req, loc)
		return
	}

	file, err := r.client.Files.Open(req.Context(), loc.Repo, loc.Revision, loc.Path)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	layout := r.client.Files.Layout()
	excerpt := service.NewExcerpt(file.Document(layout), nil)
	state := file.ViewState()
	external, _ := service.ExternalLink(state.URLPattern, state.Repo, state.Commit, state.Path, nil)

	r.render(w, req, "file.html", filePage{
		Repo:         state.Repo,
		Revision:     state.Revision,
		Commit:       state.Commit,
		Path:         state.Path,
		DirHref:      service.TreePath(state.Repo, state.Revision, parentDir(state.Path)),
		Lines:        excerpt.Lines,
		LineHeight:   layout.LineHeight,
		HeaderHeight: layout.HeaderHeight,
		External:     external,
		Permalink:    state.Permalink,
		HeadLink:     state.HeadLink,
	})
}

func (r *Router) directory(w http.ResponseWriter, req *http.Request, loc ViewLocation) {
	ctx := req.Context()
	dir, err := r.client.Files.ListDirectory(ctx, loc.Repo, loc.Revision, loc.Path)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	name := dir.Repo.Name()
	page := treePage{
		Repo:        name,
		Revision:    dir.Revision,
		Commit:      dir.Commit,
		Path:        dir.Path,
		RootHref:    service.TreePath(name, dir.Revision, ""),
		Breadcrumbs: make([]link, 0, len(dir.Breadcrumbs)),
		Entries:     make([]treeEntry, 0, len(dir.Entries)),
	}
	for _, b := range dir.Breadcrumbs {
		page.Breadcrumbs = append(page.Breadcrumbs, link{Name: b.Name, Href: service.TreePath(name, dir.Revision, b.Path)})
	}
	for _, e := range dir.Entries {
		entry := treeEntry{Name: e.Name, Dir: e.Dir, SymlinkTarget: e.SymlinkTarget}
		switch {
		case e.Dir:
			entry.Href = service.TreePath(name, dir.Revision, e.Path)
		case e.SymlinkTarget == "":
			entry.Href = service.ViewPath(name, dir.Revision, e.Path)
		}
		page.Entries = append(page.Entries, entry)
	}
	if dir.Readme != "" {
		page.Readme = &link{Name: path.Base(dir.Readme), Href: service.ViewPath(name, dir.Revision, dir.Readme)}
	}

	// The listing is still useful when refs cannot be read.
	refs, err := r.client.Files.Refs(ctx, name)
	if err != nil {
		r.logger.WarnContext(ctx, "list refs failed",
			slog.String("repo", name),
			slog.String("error", err.Error()),
		)
	}
	for _, b := range refs.Branches {
		page.Branches = append(page.Branches, refLink{Name: b.Name, Href: service.TreePath(name, b.Name, ""), Current: b.Name == dir.Revision})
	}
	for _, t := range refs.Tags {
		page.Tags = append(page.Tags, refLink{Name: t.Name, Href: service.TreePath(name, t.Name, ""), Current: t.Name == dir.Revision})
	}

	r.render(w, req, "tree.html", page)
}

func parentDir(p string) string {
	d := path.Dir(p)
	if d == "." || d == "/" {
		return ""
	}
	return d
}

// escapedWildcard returns the wildcard route value in escaped form. chi
// matches on the raw path only when it differs from the default encoding,
// so a decoded value is escaped again.
func escapedWildcard(req *http.Request) string {
	p := chi.URLParam(req, "*")
	if req.URL.RawPath != "" {
		return p
	}
	return (&url.URL{Path: p}).EscapedPath()
}

// ParseViewPath splits an escaped "{repo}/{blob|tree}/{rev}/{path}" at the
// first "/blob/" or "/tree/" and unescapes each part. The revision is the
// next path segment and the path may be empty.
func ParseViewPath(p string) (ViewLocation, error) {
	i, kind := -1, ""
	for _, k := range []string{service.KindBlob, service.KindTree} {
		if j := strings.Index(p, "/"+k+"/"); j >= 0 && (i < 0 || j < i) {
			i, kind = j, k
		}
	}
	if i <= 0 {
		return ViewLocation{}, fmt.Errorf("%w: view path %q has no /blob/ or /tree/", service.ErrValidation, p)
	}

	rawRev, rawPath, _ := strings.Cut(p[i+len(kind)+2:], "/")
	if rawRev == "" {
		return ViewLocation{}, fmt.Errorf("%w: view path %q has no revision", service.ErrValidation, p)
	}

	loc := ViewLocation{Kind: kind}
	for _, part := range []struct {
		raw string
		dst *string
	}{
		{p[:i], &loc.Repo},
		{rawRev, &loc.Revision},
		{rawPath, &loc.Path},
	} {
		v, err := url.PathUnescape(part.raw)
		if err != nil {
			return ViewLocation{}, fmt.Errorf("%w: view path %q: %w", service.ErrValidation, p, err)
		}
		*part.dst = v
	}
	return loc, nil
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, name string, data any) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("render %s: %w", name, err), r.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}
