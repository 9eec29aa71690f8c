// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package album

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/enrichment"
	"github.com/taibuivan/cadenza/internal/platform/apperr"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/internal/platform/validate"
	"github.com/taibuivan/cadenza/pkg/pointer"
)

// EventPublisher announces new entities; [*enrichment.Publisher] implements it.
type EventPublisher interface {
	Publish(event enrichment.Event)
}

type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (service *Service) ListAlbums(ctx context.Context, q resource.Query) ([]*Album, error) {
	return service.repo.ListAlbums(ctx, q)
}

func (service *Service) GetAlbum(ctx context.Context, q resource.Query) (*Album, error) {
	return service.repo.GetAlbum(ctx, q)
}

// CreateAlbum stores a new album under its artist and queues it for enrichment.
//
// Studio albums are enriched ahead of every other album type.
func (service *Service) CreateAlbum(ctx context.Context, input CreateInput) (*Album, error) {
	if input.Type == "" {
		input.Type = string(TypeStudioRecording)
	}

	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name).
		OneOf(catalog.FieldType, input.Type, Types...).
		Day(catalog.FieldReleaseDate, input.ReleaseDate).
		Custom(catalog.FieldArtistID, input.ArtistID == nil && Type(input.Type) != TypeCompilation, "Required unless the album is a compilation").
		Custom(catalog.FieldGenreIDs, !catalog.ValidIDs(input.GenreIDs), "Must contain positive ids only")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	album := &Album{
		ArtistID:        input.ArtistID,
		Name:            input.Name,
		Type:            Type(input.Type),
		IllustrationURL: input.IllustrationURL,
	}

	if input.ReleaseDate != "" {
		day, _ := time.Parse(time.DateOnly, input.ReleaseDate)
		album.ReleaseDate = pointer.To(day)
	}

	var parents []string
	if input.ArtistID != nil {
		artist, err := service.repo.GetArtist(ctx, *input.ArtistID)
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unprocessable("Unknown artist")
		}
		if err != nil {
			return nil, err
		}
		album.ArtistRef = artist
		parents = append(parents, artist.Name)
	}

	naming := catalog.NameOf(input.Name, parents...)
	album.Slug, album.SortName, album.SortSlug = naming.Slug, naming.SortName, naming.SortSlug

	if err := service.repo.CreateAlbum(ctx, album, input.GenreIDs); err != nil {
		return nil, err
	}

	service.publisher.Publish(enrichment.AlbumCreated(album.ID, album.Name, album.Type == TypeStudioRecording))
	service.logger.InfoContext(ctx, "album_created",
		slog.Int64("album_id", album.ID),
		slog.String("slug", album.Slug.String()),
		slog.String("type", string(album.Type)),
	)
	return album, nil
}

// RenameAlbum changes the name of the album addressed by q, keeping its slug scoped by its artist.
func (service *Service) RenameAlbum(ctx context.Context, q resource.Query, input RenameInput) (*Album, error) {
	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	album, err := service.repo.GetAlbum(ctx, q)
	if err != nil {
		return nil, err
	}

	var parents []string
	if album.ArtistRef != nil {
		parents = append(parents, album.ArtistRef.Name)
	}

	naming := catalog.NameOf(input.Name, parents...)
	album.Name, album.Slug, album.SortName, album.SortSlug = input.Name, naming.Slug, naming.SortName, naming.SortSlug

	if err := service.repo.RenameAlbum(ctx, album); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "album_renamed", slog.Int64("album_id", album.ID), slog.String("slug", album.Slug.String()))
	return album, nil
}
