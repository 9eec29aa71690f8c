// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package album

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/platform/middleware"
	requestutil "github.com/taibuivan/cadenza/internal/platform/request"
	"github.com/taibuivan/cadenza/internal/platform/respond"
	"github.com/taibuivan/cadenza/internal/platform/sec"
	"github.com/taibuivan/cadenza/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listAlbums)
	router.Get("/{idOrSlug}", handler.getAlbum)

	// Ingestion clients and admins
	router.With(middleware.RequireRole(sec.RoleIngestion)).Post("/", handler.createAlbum)

	// Admin only
	router.With(middleware.RequireRole(sec.RoleAdmin)).Patch("/{idOrSlug}", handler.renameAlbum)
}

func (handler *Handler) listAlbums(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	q, err := resource.ParseList(values, resource.Album)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	albums, err := handler.service.ListAlbums(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, albums, pagination.NewMeta(request.URL.Path, values, q.Window, len(albums)))
}

// getAlbum accepts an id, a slug or an "artist+album" composite identifier.
func (handler *Handler) getAlbum(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, request.URL.Query(), resource.Album)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	album, err := handler.service.GetAlbum(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, album)
}

func (handler *Handler) createAlbum(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	album, err := handler.service.CreateAlbum(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, album)
}

func (handler *Handler) renameAlbum(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, nil, resource.Album)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RenameInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	album, err := handler.service.RenameAlbum(request.Context(), q, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, album)
}
