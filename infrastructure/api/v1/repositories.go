// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/delve"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/repository"
	"github.com/helixml/delve/infrastructure/git"
	"github.com/helixml/delve/infrastructure/api/jsonapi"
	"github.com/helixml/delve/infrastructure/api/middleware"
	"github.com/helixml/delve/infrastructure/api/v1/dto"
)

const repositoryType = "repository"

// RepositoriesRouter handles repository API endpoints.
type RepositoriesRouter struct {
	client *delve.Client
	logger *slog.Logger
}

// NewRepositoriesRouter creates a new RepositoriesRouter.
func NewRepositoriesRouter(client *delve.Client) *RepositoriesRouter {
	return &RepositoriesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for repository endpoints. Names containing
// a slash are sent path-escaped, e.g. helixml%2Fdelve.
func (r *RepositoriesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Add)
	router.Get("/{name}", r.Get)
	router.Delete("/{name}", r.Delete)
	router.Put("/{name}/favorite", r.SetFavorite)
	router.Get("/{name}/refs", r.Refs)

	return router
}

// List handles GET /api/v1/repositories.
//
//	@Summary		List repositories
//	@Description	Get all registered repositories, paginated
//	@Tags			repositories
//	@Accept			json
//	@Produce		json
//	@Param			page		query	int	false	"Page number (default: 1)"
//	@Param			page_size	query	int	false	"Results per page (default: 20, max: 100)"
//	@Success		200	{object}	dto.RepositoryListResponse
//	@Failure		500	{object}	jsonapi.Document
//	@Router			/repositories [get]
func (r *RepositoriesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	repos, err := r.client.Repositories.Find(ctx, pagination.Options()...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Repositories.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.RepositoryData, 0, len(repos))
	for _, repo := range repos {
		data = append(data, repoToDTO(repo))
	}

	middleware.WriteJSON(w, http.StatusOK, dto.RepositoryListResponse{
		Data:  data,
		Meta:  pagination.Meta(total),
		Links: pagination.Links(req, total),
	})
}

// Get handles GET /api/v1/repositories/{name}.
//
//	@Summary		Get repository
//	@Description	Get a repository by its path-escaped name
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Repository name, e.g. helixml%2Fdelve"
//	@Success		200		{object}	dto.RepositoryResponse
//	@Failure		404		{object}	jsonapi.Document
//	@Router			/repositories/{name} [get]
func (r *RepositoriesRouter) Get(w http.ResponseWriter, req *http.Request) {
	name, err := NameParam(req, "name")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	repo, err := r.client.Repositories.Get(req.Context(), name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.RepositoryResponse{Data: repoToDTO(repo)})
}

// Add handles POST /api/v1/repositories. It returns 201 for a new
// repository and 200 when one with the same name already exists.
//
//	@Summary		Add repository
//	@Description	Register a local git repository for browsing
//	@Tags			repositories
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RepositoryCreateRequest	true	"Repository request"
//	@Success		200		{object}	dto.RepositoryResponse
//	@Success		201		{object}	dto.RepositoryResponse
//	@Failure		400		{object}	jsonapi.Document
//	@Failure		401		{object}	jsonapi.Document
//	@Security		APIKeyAuth
//	@Router			/repositories [post]
func (r *RepositoriesRouter) Add(w http.ResponseWriter, req *http.Request) {
	var body dto.RepositoryCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body: %w", service.ErrValidation, err), r.logger)
		return
	}

	attrs := body.Data.Attributes
	repo, created, err := r.client.Repositories.Add(req.Context(), service.RepositoryParams{
		Name:            attrs.Name,
		Path:            attrs.Path,
		URLPattern:      attrs.URLPattern,
		DefaultRevision: attrs.DefaultRevision,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.WriteJSON(w, status, dto.RepositoryResponse{Data: repoToDTO(repo)})
}

// Delete handles DELETE /api/v1/repositories/{name}.
//
//	@Summary		Delete repository
//	@Description	Unregister a repository. The git repository on disk is untouched.
//	@Tags			repositories
//	@Param			name	path	string	true	"Repository name, path-escaped"
//	@Success		204
//	@Failure		401	{object}	jsonapi.Document
//	@Failure		404	{object}	jsonapi.Document
//	@Security		APIKeyAuth
//	@Router			/repositories/{name} [delete]
func (r *RepositoriesRouter) Delete(w http.ResponseWriter, req *http.Request) {
	name, err := NameParam(req, "name")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Repositories.Remove(req.Context(), name); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetFavorite handles PUT /api/v1/repositories/{name}/favorite.
//
//	@Summary		Set favourite
//	@Description	Pin or unpin a repository in the repository index
//	@Tags			repositories
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string				true	"Repository name, path-escaped"
//	@Param			body	body		dto.FavoriteRequest	true	"Favourite flag"
//	@Success		200		{object}	dto.RepositoryResponse
//	@Failure		401		{object}	jsonapi.Document
//	@Failure		404		{object}	jsonapi.Document
//	@Security		APIKeyAuth
//	@Router			/repositories/{name}/favorite [put]
func (r *RepositoriesRouter) SetFavorite(w http.ResponseWriter, req *http.Request) {
	name, err := NameParam(req, "name")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.FavoriteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body: %w", service.ErrValidation, err), r.logger)
		return
	}

	repo, err := r.client.Repositories.SetFavorite(req.Context(), name, body.Favorite)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.RepositoryResponse{Data: repoToDTO(repo)})
}

// Refs handles GET /api/v1/repositories/{name}/refs.
//
//	@Summary		List branches and tags
//	@Description	List the branches (HEAD first) and tags of a repository
//	@Tags			repositories
//	@Produce		json
//	@Param			name	path		string	true	"Repository name, path-escaped"
//	@Success		200		{object}	dto.RefsResponse
//	@Failure		404		{object}	jsonapi.Document
//	@Router			/repositories/{name}/refs [get]
func (r *RepositoriesRouter) Refs(w http.ResponseWriter, req *http.Request) {
	name, err := NameParam(req, "name")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	refs, err := r.client.Files.Refs(req.Context(), name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.RefsResponse{
		Branches: refsToDTO(refs.Branches),
		Tags:     refsToDTO(refs.Tags),
	})
}

func refsToDTO(refs []git.Ref) []dto.Ref {
	out := make([]dto.Ref, 0, len(refs))
	for _, ref := range refs {
		out = append(out, dto.Ref{Name: ref.Name, Commit: ref.Commit, Head: ref.Head})
	}
	return out
}

// NameParam returns the path-unescaped URL parameter key.
func NameParam(req *http.Request, key string) (string, error) {
	raw := chi.URLParam(req, key)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s %q", service.ErrValidation, key, raw)
	}
	return value, nil
}

func repoToDTO(repo repository.Repository) dto.RepositoryData {
	return dto.RepositoryData{
		Type: repositoryType,
		ID:   strconv.FormatInt(repo.ID(), 10),
		Attributes: dto.RepositoryAttributes{
			Name:            repo.Name(),
			Path:            repo.Path(),
			URLPattern:      repo.URLPattern(),
			DefaultRevision: repo.DefaultRevision(),
			Favorite:        repo.Favorite(),
			CreatedAt:       jsonapi.DateTime(repo.CreatedAt()),
			UpdatedAt:       jsonapi.DateTime(repo.UpdatedAt()),
		},
		Links: &jsonapi.Links{
			Self: "/api/v1/repositories/" + url.PathEscape(repo.Name()),
		},
	}
}
