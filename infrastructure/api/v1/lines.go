package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/delve"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/linerange"
	"github.com/helixml/delve/infrastructure/api/middleware"
	"github.com/helixml/delve/infrastructure/api/v1/dto"
)

// LinesRouter exposes fragment parsing and expansion.
type LinesRouter struct {
	logger *slog.Logger
}

// NewLinesRouter creates a new LinesRouter.
func NewLinesRouter(client *delve.Client) *LinesRouter {
	return &LinesRouter{logger: client.Logger()}
}

// Routes returns the chi router for line endpoints.
func (r *LinesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/parse", r.Parse)
	router.Post("/expand", r.Expand)

	return router
}

// Parse handles GET /api/v1/lines/parse?fragment=#L10-L20.
// The fragment usually has to be sent escaped, as %23L10.
//
//	@Summary		Parse a fragment
//	@Description	Parse a #L fragment into a line range; data is null when the fragment holds no range
//	@Tags			lines
//	@Produce		json
//	@Param			fragment	query		string	true	"Fragment such as %23L10-L20"
//	@Success		200			{object}	dto.LineRangeResponse
//	@Router			/lines/parse [get]
func (r *LinesRouter) Parse(w http.ResponseWriter, req *http.Request) {
	fragment := req.URL.Query().Get("fragment")

	var response dto.LineRangeResponse
	if rng, ok := linerange.Parse(fragment); ok {
		response.Data = rangeToDTO(&rng)
	}
	middleware.WriteJSON(w, http.StatusOK, response)
}

// Expand handles POST /api/v1/lines/expand.
//
//	@Summary		Expand a selection
//	@Description	Grow the fragment's range to include the shift-clicked line
//	@Tags			lines
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ExpandRequest	true	"Clicked line and current fragment"
//	@Success		200		{object}	dto.ExpandResponse
//	@Failure		400		{object}	jsonapi.Document
//	@Router			/lines/expand [post]
func (r *LinesRouter) Expand(w http.ResponseWriter, req *http.Request) {
	var body dto.ExpandRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body: %w", service.ErrValidation, err), r.logger)
		return
	}
	if body.Line < 1 {
		middleware.WriteError(w, req, fmt.Errorf("%w: line must be positive", service.ErrValidation), r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ExpandResponse{
		Fragment: service.ExpandRangeToElement(body.Line, body.Fragment),
	})
}

func rangeToDTO(r *linerange.Range) *dto.LineRange {
	if r == nil {
		return nil
	}
	return &dto.LineRange{Start: r.Start(), End: r.End(), Fragment: r.Fragment()}
}
