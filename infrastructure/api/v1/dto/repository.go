// Package dto holds the request and response bodies of the v1 API.
package dto

import "github.com/helixml/delve/infrastructure/api/jsonapi"

// RepositoryAttributes are the attributes of a repository resource.
type RepositoryAttributes struct {
	Name            string           `json:"name"`
	Path            string           `json:"path"`
	URLPattern      string           `json:"url_pattern,omitempty"`
	DefaultRevision string           `json:"default_revision"`
	Favorite        bool             `json:"favorite"`
	CreatedAt       jsonapi.DateTime `json:"created_at"`
	UpdatedAt       jsonapi.DateTime `json:"updated_at"`
}

// RepositoryData is a repository resource.
type RepositoryData struct {
	Type       string               `json:"type"`
	ID         string               `json:"id"`
	Attributes RepositoryAttributes `json:"attributes"`
	Links      *jsonapi.Links       `json:"links,omitempty"`
}

// RepositoryResponse wraps a single repository.
type RepositoryResponse struct {
	Data RepositoryData `json:"data"`
}

// RepositoryListResponse wraps a page of repositories.
type RepositoryListResponse struct {
	Data  []RepositoryData `json:"data"`
	Meta  *jsonapi.Meta    `json:"meta,omitempty"`
	Links *jsonapi.Links   `json:"links,omitempty"`
}

// RepositoryCreateAttributes are the attributes accepted when adding a repository.
type RepositoryCreateAttributes struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	URLPattern      string `json:"url_pattern,omitempty"`
	DefaultRevision string `json:"default_revision,omitempty"`
}

// RepositoryCreateData is the resource object of a create request.
type RepositoryCreateData struct {
	Type       string                     `json:"type"`
	Attributes RepositoryCreateAttributes `json:"attributes"`
}

// RepositoryCreateRequest is the body of POST /repositories.
type RepositoryCreateRequest struct {
	Data RepositoryCreateData `json:"data"`
}

// FavoriteRequest is the body of PUT /repositories/{name}/favorite.
type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// Ref is a branch or tag of a repository.
type Ref struct {
	Name   string `json:"name"`
	Commit string `json:"commit"`
	Head   bool   `json:"head,omitempty"`
}

// RefsResponse lists the branches and tags of a repository.
type RefsResponse struct {
	Branches []Ref `json:"branches"`
	Tags     []Ref `json:"tags"`
}
