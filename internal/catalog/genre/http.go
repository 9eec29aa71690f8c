// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

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
	router.Get("/", handler.listGenres)
	router.Get("/{idOrSlug}", handler.getGenre)

	// Ingestion clients and admins
	router.With(middleware.RequireRole(sec.RoleIngestion)).Post("/", handler.createGenre)

	// Admin only
	router.With(middleware.RequireRole(sec.RoleAdmin)).Patch("/{idOrSlug}", handler.renameGenre)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	q, err := resource.ParseList(values, resource.Genre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genres, err := handler.service.ListGenres(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(request.URL.Path, values, q.Window, len(genres)))
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, request.URL.Query(), resource.Genre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.GetGenre(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.CreateGenre(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}

func (handler *Handler) renameGenre(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, nil, resource.Genre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.RenameGenre(request.Context(), q, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}
