// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package element

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shipdoc/internal/platform/middleware"
	requestutil "github.com/taibuivan/shipdoc/internal/platform/request"
	"github.com/taibuivan/shipdoc/internal/platform/respond"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
	"github.com/taibuivan/shipdoc/pkg/pagination"
)

// Handler implements the HTTP layer for canvas elements.
type Handler struct {
	service *Service
}

// NewHandler constructs a new element [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the element endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/by-business-id", handler.listByBusinessID)
	router.Get("/{id}", handler.get)

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
GET /api/v1/elements.

Request:
  - page_id: int
  - business_id, type: string
  - page, limit: int

Response:
  - 200: []Element: Paginated, ordered by z_order
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	pageID, err := requestutil.QueryID(request, "page_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	filter := Filter{
		PageID:     pageID,
		BusinessID: strings.TrimSpace(query.Get("business_id")),
		Type:       strings.TrimSpace(query.Get("type")),
	}

	elements, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, elements, paginationParams.Meta(total))
}

/*
GET /api/v1/elements/by-business-id?business_id=.

Description: Returns every translation sharing one business identifier.

Response:
  - 200: []Element
  - 400: business_id missing
*/
func (handler *Handler) listByBusinessID(writer http.ResponseWriter, request *http.Request) {
	businessID := strings.TrimSpace(request.URL.Query().Get("business_id"))
	if businessID == "" {
		respond.Error(writer, request, validate.RequiredError("business_id", "business_id parameter is required"))
		return
	}

	elements, err := handler.service.ListByBusinessID(request.Context(), businessID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, elements)
}

/*
GET /api/v1/elements/{id}.

Response:
  - 200: Element
  - 404: Element not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	element, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, element)
}

/*
POST /api/v1/elements.

Request (Body):
  - CreateInput: {page, business_id, type, z_order, descriptions, konva_jsons,
    reference_value, image, field_values_data}

Response:
  - 201: Element
  - 400: Validation failed or unknown reference
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

	element, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, element)
}

/*
PATCH /api/v1/elements/{id}.

Description: Partial update. PUT is accepted as an alias. The reference link
cannot be changed.

Response:
  - 200: Element
  - 400: Validation failed
  - 404: Element not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
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

	element, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, element)
}

/*
DELETE /api/v1/elements/{id}.

Response:
  - 204: No Content
  - 404: Element not found
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
