// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

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
	router.Get("/", handler.listArtists)
	router.Get("/{idOrSlug}", handler.getArtist)

	// Ingestion clients and admins
	router.With(middleware.RequireRole(sec.RoleIngestion)).Post("/", handler.createArtist)

	// Admin only
	router.With(middleware.RequireRole(sec.RoleAdmin)).Patch("/{idOrSlug}", handler.renameArtist)
}

func (handler *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	q, err := resource.ParseList(values, resource.Artist)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artists, err := handler.service.ListArtists(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, artists, pagination.NewMeta(request.URL.Path, values, q.Window, len(artists)))
}

func (handler *Handler) getArtist(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, request.URL.Query(), resource.Artist)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.GetArtist(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

func (handler *Handler) createArtist(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.CreateArtist(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, artist)
}

func (handler *Handler) renameArtist(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, nil, resource.Artist)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RenameInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.RenameArtist(request.Context(), q, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}
