// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shipdoc/internal/platform/middleware"
	requestutil "github.com/taibuivan/shipdoc/internal/platform/request"
	"github.com/taibuivan/shipdoc/internal/platform/respond"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
	"github.com/taibuivan/shipdoc/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for sheets and pages.
//
// # Access Control
//
//   - Reader: listings and details.
//   - Editor: create, update and delete.
type Handler struct {
	service *Service
}

// NewHandler constructs a new document tree [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SheetRoutes returns the router mounted at /sheets.
func (handler *Handler) SheetRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSheets)
	router.Get("/by-business-id", handler.listSheetsByBusinessID)
	router.Get("/{id}", handler.getSheet)

	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createSheet)
		editorRoute.Patch("/{id}", handler.updateSheet)
		editorRoute.Put("/{id}", handler.updateSheet)
		editorRoute.Delete("/{id}", handler.deleteSheet)
	})

	return router
}

// PageRoutes returns the router mounted at /pages.
func (handler *Handler) PageRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPages)
	router.Get("/{id}", handler.getPage)

	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createPage)
		editorRoute.Patch("/{id}", handler.updatePage)
		editorRoute.Put("/{id}", handler.updatePage)
		editorRoute.Delete("/{id}", handler.deletePage)
	})

	return router
}

// ## Sheets

/*
GET /api/v1/sheets.

Request:
  - boat, gamme_cabine, variante_gamme, cabine, ligne, poste: int
  - ligne_sens: D | G | -
  - business_id, q: string
  - page, limit: int

Response:
  - 200: []Sheet: Paginated, newest first
  - 400: Malformed filter
*/
func (handler *Handler) listSheets(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter, err := parseFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sheets, total, err := handler.service.ListSheets(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, sheets, paginationParams.Meta(total))
}

/*
GET /api/v1/sheets/by-business-id?business_id=.

Response:
  - 200: []Sheet: Every language version
  - 400: business_id missing
*/
func (handler *Handler) listSheetsByBusinessID(writer http.ResponseWriter, request *http.Request) {
	businessID := strings.TrimSpace(request.URL.Query().Get("business_id"))
	if businessID == "" {
		respond.Error(writer, request, validate.RequiredError("business_id", "business_id parameter is required"))
		return
	}

	sheets, err := handler.service.ListSheetsByBusinessID(request.Context(), businessID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sheets)
}

/*
GET /api/v1/sheets/{id}.

Response:
  - 200: Sheet: With pages
  - 404: Sheet not found
*/
func (handler *Handler) getSheet(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sheet, err := handler.service.GetSheet(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sheet)
}

/*
POST /api/v1/sheets.

Request (Body):
  - CreateInput: {name, business_id, language}

Response:
  - 201: Sheet
  - 400: Validation failed
  - 409: Translation already exists
*/
func (handler *Handler) createSheet(writer http.ResponseWriter, request *http.Request) {
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

	sheet, err := handler.service.CreateSheet(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sheet)
}

/*
PATCH /api/v1/sheets/{id}.

Response:
  - 200: Sheet
  - 404: Sheet not found
  - 409: Translation already exists
*/
func (handler *Handler) updateSheet(writer http.ResponseWriter, request *http.Request) {
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

	sheet, err := handler.service.UpdateSheet(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sheet)
}

/*
DELETE /api/v1/sheets/{id}.

Response:
  - 204: No Content
  - 404: Sheet not found
*/
func (handler *Handler) deleteSheet(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSheet(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// ## Pages

/*
GET /api/v1/pages.

Request:
  - sheet_id, number: int
  - page, limit: int

Response:
  - 200: []Page: Paginated, ordered by sheet then number
*/
func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	sheetID, err := requestutil.QueryID(request, "sheet_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := PageFilter{SheetID: sheetID}
	if raw := request.URL.Query().Get("number"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("number", "Must be an integer"))
			return
		}
		filter.Number = &number
	}

	pages, total, err := handler.service.ListPages(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pages, paginationParams.Meta(total))
}

/*
GET /api/v1/pages/{id}.

Response:
  - 200: Page: With elements
  - 404: Page not found
*/
func (handler *Handler) getPage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.GetPage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
POST /api/v1/pages.

Request (Body):
  - PageCreateInput: {sheet, number?, description}

Response:
  - 201: Page
  - 400: Validation failed or unknown sheet
  - 409: Number already used
*/
func (handler *Handler) createPage(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PageCreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.CreatePage(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, page)
}

/*
PATCH /api/v1/pages/{id}.

Response:
  - 200: Page
  - 404: Page not found
  - 409: Number already used
*/
func (handler *Handler) updatePage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PageUpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.UpdatePage(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
DELETE /api/v1/pages/{id}?renumber=true|false.

Description: renumber defaults to true.

Response:
  - 204: No Content
  - 400: renumber is not a boolean
  - 404: Page not found
*/
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renumber, err := requestutil.QueryBool(request, "renumber", true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePage(request.Context(), id, renumber); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Helpers

// parseFilter reads the sheet list filters from the query string.
func parseFilter(request *http.Request) (Filter, error) {
	query := request.URL.Query()
	filter := Filter{
		LigneSens:  strings.TrimSpace(query.Get("ligne_sens")),
		BusinessID: strings.TrimSpace(query.Get("business_id")),
		Query:      strings.TrimSpace(query.Get("q")),
	}

	keys := []struct {
		name   string
		target **int64
	}{
		{"boat", &filter.Boat},
		{"gamme_cabine", &filter.GammeCabine},
		{"variante_gamme", &filter.VarianteGamme},
		{"cabine", &filter.Cabine},
		{"ligne", &filter.Ligne},
		{"poste", &filter.Poste},
	}
	for _, key := range keys {
		id, err := requestutil.QueryID(request, key.name)
		if err != nil {
			return Filter{}, err
		}
		*key.target = id
	}

	return filter, nil
}
