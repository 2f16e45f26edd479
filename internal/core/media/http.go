// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shipdoc/internal/platform/request"
	"github.com/taibuivan/shipdoc/internal/platform/respond"
	"github.com/taibuivan/shipdoc/pkg/pagination"
)

// Handler implements the read-only HTTP layer for the media library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new media [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the media endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	return router
}

/*
GET /api/v1/media.

Description: Lists the media library, optionally filtered.

Request:
  - media_type: string (image|video)
  - language: string
  - q: string (Name substring)
  - page, limit: int

Response:
  - 200: []Media: Paginated list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	query := request.URL.Query()
	filter := Filter{
		MediaType: query.Get("media_type"),
		Language:  query.Get("language"),
		Query:     query.Get("q"),
	}

	items, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, paginationParams.Meta(total))
}

/*
GET /api/v1/media/{id}.

Response:
  - 200: Media
  - 400: Invalid ID
  - 404: Media not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}
