// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

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
	router.Get("/", handler.listSongs)
	router.Get("/{idOrSlug}", handler.getSong)

	// Any signed-in caller
	router.With(middleware.RequireRole(sec.RoleMember)).Post("/{idOrSlug}/played", handler.recordPlay)

	// Ingestion clients and admins
	router.With(middleware.RequireRole(sec.RoleIngestion)).Post("/", handler.createSong)

	// Admin only
	router.With(middleware.RequireRole(sec.RoleAdmin)).Patch("/{idOrSlug}", handler.renameSong)
}

func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	q, err := resource.ParseList(values, resource.Song)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	songs, err := handler.service.ListSongs(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, songs, pagination.NewMeta(request.URL.Path, values, q.Window, len(songs)))
}

// getSong accepts an id, a slug or an "artist+song" composite identifier.
func (handler *Handler) getSong(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, request.URL.Query(), resource.Song)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.GetSong(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, song)
}

func (handler *Handler) createSong(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.CreateSong(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, song)
}

func (handler *Handler) renameSong(writer http.ResponseWriter, request *http.Request) {
	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, nil, resource.Song)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RenameInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.RenameSong(request.Context(), q, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, song)
}

func (handler *Handler) recordPlay(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredCaller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	idOrSlug, err := requestutil.Param(request, "idOrSlug")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := resource.ParseOne(idOrSlug, nil, resource.Song)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.RecordPlay(request.Context(), q, caller.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, song)
}
