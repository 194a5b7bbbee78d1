package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/delve"
	"github.com/helixml/delve/application/handler"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/infrastructure/git"
	"github.com/helixml/delve/infrastructure/api/middleware"
	"github.com/helixml/delve/infrastructure/api/v1/dto"
)

// FileViewRouter handles file view navigation endpoints.
type FileViewRouter struct {
	client *delve.Client
	logger *slog.Logger
}

// NewFileViewRouter creates a new FileViewRouter.
func NewFileViewRouter(client *delve.Client) *FileViewRouter {
	return &FileViewRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for file view endpoints.
func (r *FileViewRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/navigate", r.Navigate)
	router.Get("/{repo}/{rev}/lines", r.Lines)
	router.Get("/{repo}/{rev}/tree", r.Tree)

	return router
}

// Navigate handles POST /api/v1/fileview/navigate.
//
//	@Summary		Navigate a file view
//	@Description	Replay one view action (location.load, location.hashchange, line.click, line.shift-click) and return the resulting selection, highlight, scroll and links
//	@Tags			fileview
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.NavigateRequest	true	"Navigation event"
//	@Success		200		{object}	dto.NavigateResponse
//	@Failure		400		{object}	jsonapi.Document
//	@Failure		404		{object}	jsonapi.Document
//	@Router			/fileview/navigate [post]
func (r *FileViewRouter) Navigate(w http.ResponseWriter, req *http.Request) {
	var body dto.NavigateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body: %w", service.ErrValidation, err), r.logger)
		return
	}

	file, out, err := r.client.Navigator.Navigate(req.Context(), handler.NavigateRequest{
		Repo:           body.Repo,
		Revision:       body.Revision,
		Path:           body.Path,
		Action:         handler.Action(body.Action),
		Line:           body.Line,
		Shift:          body.Shift,
		Fragment:       body.Fragment,
		ScrollTop:      body.ScrollTop,
		ViewportHeight: body.ViewportHeight,
		LineHeight:     body.LineHeight,
		HeaderHeight:   body.HeaderHeight,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	highlighted := out.Highlighted
	if highlighted == nil {
		highlighted = []string{}
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NavigateResponse{
		Repo:        file.Repository().Name(),
		Revision:    file.Revision(),
		Commit:      file.Commit(),
		Path:        file.Path(),
		Fragment:    out.Fragment,
		Selection:   rangeToDTO(out.Selection),
		Highlighted: highlighted,
		Scrolled:    out.Scrolled,
		ScrollTop:   out.ScrollTop,
		Replaced:    out.Replaced,
		Links:       out.Links,
	})
}

// Lines handles GET /api/v1/fileview/{repo}/{rev}/lines?path=&fragment=.
// A fragment without a line range returns the whole file.
//
//	@Summary		Read file lines
//	@Description	Numbered lines of a file, narrowed to the fragment's line range and clamped to the file
//	@Tags			fileview
//	@Produce		json
//	@Param			repo		path		string	true	"Repository name, path-escaped"
//	@Param			rev			path		string	true	"Revision, path-escaped"
//	@Param			path		query		string	true	"File path"
//	@Param			fragment	query		string	false	"Fragment such as %23L10-L20"
//	@Success		200			{object}	dto.LinesResponse
//	@Failure		404			{object}	jsonapi.Document
//	@Router			/fileview/{repo}/{rev}/lines [get]
func (r *FileViewRouter) Lines(w http.ResponseWriter, req *http.Request) {
	repo, err := NameParam(req, "repo")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	rev, err := NameParam(req, "rev")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	q := req.URL.Query()
	file, excerpt, err := r.client.Files.ReadRange(req.Context(), repo, rev, q.Get("path"), q.Get("fragment"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	lines := excerpt.Lines
	if lines == nil {
		lines = []service.NumberedLine{}
	}

	middleware.WriteJSON(w, http.StatusOK, dto.LinesResponse{
		Repo:      file.Repository().Name(),
		Revision:  file.Revision(),
		Commit:    file.Commit(),
		Path:      file.Path(),
		Selection: rangeToDTO(excerpt.Selection),
		Total:     excerpt.Total,
		Lines:     lines,
	})
}

// Tree handles GET /api/v1/fileview/{repo}/{rev}/tree?path=.
//
//	@Summary		List a directory
//	@Description	One level of the repository tree, directories first, with breadcrumbs and the README path
//	@Tags			fileview
//	@Produce		json
//	@Param			repo	path		string	true	"Repository name, path-escaped"
//	@Param			rev		path		string	true	"Revision, path-escaped"
//	@Param			path	query		string	false	"Directory path, root when empty"
//	@Success		200		{object}	dto.TreeResponse
//	@Failure		404		{object}	jsonapi.Document
//	@Router			/fileview/{repo}/{rev}/tree [get]
func (r *FileViewRouter) Tree(w http.ResponseWriter, req *http.Request) {
	repo, err := NameParam(req, "repo")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	rev, err := NameParam(req, "rev")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	dir, err := r.client.Files.ListDirectory(req.Context(), repo, rev, req.URL.Query().Get("path"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resp := dto.TreeResponse{
		Repo:        dir.Repo.Name(),
		Revision:    dir.Revision,
		Commit:      dir.Commit,
		Path:        dir.Path,
		Breadcrumbs: make([]dto.Breadcrumb, 0, len(dir.Breadcrumbs)),
		Entries:     make([]dto.TreeEntry, 0, len(dir.Entries)),
		Readme:      dir.Readme,
	}
	for _, b := range dir.Breadcrumbs {
		resp.Breadcrumbs = append(resp.Breadcrumbs, dto.Breadcrumb{Name: b.Name, Path: b.Path})
	}
	for _, e := range dir.Entries {
		resp.Entries = append(resp.Entries, entryToDTO(e))
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

func entryToDTO(e git.Entry) dto.TreeEntry {
	t := dto.TreeEntry{Name: e.Name, Path: e.Path, Type: "blob", SymlinkTarget: e.SymlinkTarget}
	switch {
	case e.Dir:
		t.Type = "tree"
	case e.SymlinkTarget != "":
		t.Type = "symlink"
	}
	return t
}
