// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/platform/validate"
)

// Service manages genres. Genres are not enriched.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListGenres(ctx context.Context, q resource.Query) ([]*Genre, error) {
	return service.repo.ListGenres(ctx, q)
}

func (service *Service) GetGenre(ctx context.Context, q resource.Query) (*Genre, error) {
	return service.repo.GetGenre(ctx, q)
}

func (service *Service) CreateGenre(ctx context.Context, input Input) (*Genre, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	genre := &Genre{Name: input.Name, Slug: catalog.NameOf(input.Name).Slug}
	if err := service.repo.CreateGenre(ctx, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "genre_created", slog.Int64("genre_id", genre.ID), slog.String("slug", genre.Slug.String()))
	return genre, nil
}

func (service *Service) RenameGenre(ctx context.Context, q resource.Query, input Input) (*Genre, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	genre, err := service.repo.GetGenre(ctx, q)
	if err != nil {
		return nil, err
	}

	genre.Name, genre.Slug = input.Name, catalog.NameOf(input.Name).Slug
	if err := service.repo.RenameGenre(ctx, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "genre_renamed", slog.Int64("genre_id", genre.ID), slog.String("slug", genre.Slug.String()))
	return genre, nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name)
	return validator.Err()
}
