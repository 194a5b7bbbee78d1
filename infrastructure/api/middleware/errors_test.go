package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/helixml/delve/application/handler"
	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/infrastructure/api/jsonapi"
	"github.com/helixml/delve/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAPIError(http.StatusNotFound, "resource not found", nil)

	assert.Equal(t, http.StatusNotFound, err.Code())
	assert.Equal(t, "resource not found", err.Message())
	assert.Equal(t, "api error 404: resource not found", err.Error())

	wrapped := NewAPIError(http.StatusBadGateway, "upstream", cause)
	assert.ErrorIs(t, wrapped, cause)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"service not found", fmt.Errorf("%w: repo", service.ErrNotFound), http.StatusNotFound},
		{"database not found", database.ErrNotFound, http.StatusNotFound},
		{"validation", fmt.Errorf("%w: path is required", service.ErrValidation), http.StatusBadRequest},
		{"unknown action", handler.ErrNoHandler, http.StatusBadRequest},
		{"authentication", NewAuthenticationError("missing"), http.StatusUnauthorized},
		{"explicit", NewAPIError(http.StatusConflict, "taken", nil), http.StatusConflict},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := StatusFor(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/repositories/x", nil)

	WriteError(rec, req, fmt.Errorf("%w: repository x", service.ErrNotFound), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, jsonapi.MediaType, rec.Header().Get("Content-Type"))

	var doc jsonapi.Document
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "404", doc.Errors[0].Status)
	assert.Contains(t, doc.Errors[0].Detail, "repository x")
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, errors.New("password=hunter2"), nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}
