// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"log/slog"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/enrichment"
	"github.com/taibuivan/cadenza/internal/platform/validate"
	"github.com/taibuivan/cadenza/pkg/slug"
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

func (service *Service) ListArtists(ctx context.Context, q resource.Query) ([]*Artist, error) {
	return service.repo.ListArtists(ctx, q)
}

func (service *Service) GetArtist(ctx context.Context, q resource.Query) (*Artist, error) {
	return service.repo.GetArtist(ctx, q)
}

// CreateArtist stores a new artist and queues it for metadata enrichment.
func (service *Service) CreateArtist(ctx context.Context, input CreateInput) (*Artist, error) {
	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	naming := catalog.NameOf(input.Name)
	artist := &Artist{
		Name:            input.Name,
		Slug:            naming.Slug,
		SortName:        naming.SortName,
		SortSlug:        naming.SortSlug,
		IllustrationURL: input.IllustrationURL,
	}

	if err := service.repo.CreateArtist(ctx, artist); err != nil {
		return nil, err
	}

	service.publisher.Publish(enrichment.ArtistCreated(artist.ID, artist.Name))
	service.logger.InfoContext(ctx, "artist_created", slog.Int64("artist_id", artist.ID), slog.String("slug", artist.Slug.String()))
	return artist, nil
}

// RenameArtist changes the name of the artist addressed by q and recomputes its slugs.
//
// Album and song slugs are scoped by the artist name, so they are recomputed too.
func (service *Service) RenameArtist(ctx context.Context, q resource.Query, input RenameInput) (*Artist, error) {
	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	artist, err := service.repo.GetArtist(ctx, q)
	if err != nil {
		return nil, err
	}

	naming := catalog.NameOf(input.Name)
	artist.Name, artist.Slug, artist.SortName, artist.SortSlug = input.Name, naming.Slug, naming.SortName, naming.SortSlug

	rescope := func(name string) slug.Slug {
		return catalog.NameOf(name, artist.Name).Slug
	}

	if err := service.repo.RenameArtist(ctx, artist, rescope); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "artist_renamed", slog.Int64("artist_id", artist.ID), slog.String("slug", artist.Slug.String()))
	return artist, nil
}
