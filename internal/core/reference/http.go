// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shipdoc/internal/platform/middleware"
	requestutil "github.com/taibuivan/shipdoc/internal/platform/request"
	"github.com/taibuivan/shipdoc/internal/platform/respond"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/pkg/pagination"
)

// Handler implements the HTTP layer of the reference catalog.
//
// # Access Control
//
//   - Reader: listing, detail, type list and history.
//   - Editor: create, update and delete.
//
// The ledger is read-only over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Reads
	router.Get("/", handler.list)
	router.Get("/types", handler.listTypes)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/history", handler.history)

	// Writes
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.create)
		editorRoute.Patch("/{id}", handler.update)
		editorRoute.Put("/{id}", handler.update)
		editorRoute.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/references.

Description: Lists references, filtered by exact type and/or a free-text
search over the type and string field values.

Request:
  - type: string
  - search: string
  - page, limit: int

Response:
  - 200: []Summary: Paginated list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	query := request.URL.Query()
	filter := Filter{
		Type:   query.Get("type"),
		Search: query.Get("search"),
	}

	summaries, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, summaries, paginationParams.Meta(total))
}

/*
GET /api/v1/references/types.

Response:
  - 200: []string: Distinct types, sorted
*/
func (handler *Handler) listTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, types)
}

/*
GET /api/v1/references/{id}.

Response:
  - 200: Reference
  - 400: Invalid ID
  - 404: Reference not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reference, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reference)
}

/*
GET /api/v1/references/{id}/history.

Response:
  - 200: []HistoryEntry: Newest first
  - 404: Reference not found
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.History(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
POST /api/v1/references.

Request (Body):
  - CreateInput: {type, icon, fields_data}

Response:
  - 201: Reference: Version 1
  - 400: Validation failed
  - 401/403: Not an editor
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reference, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, reference)
}

/*
PATCH /api/v1/references/{id}.

Description: Partial update. Present fields_data replaces every field.
PUT is accepted as an alias.

Response:
  - 200: Reference: With the bumped version
  - 400: Validation failed
  - 404: Reference not found
  - 409: Concurrent modification
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reference, err := handler.service.Update(request.Context(), actor, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reference)
}

/*
DELETE /api/v1/references/{id}.

Response:
  - 204: No Content
  - 404: Reference not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
