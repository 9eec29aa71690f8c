// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/enrichment"
	"github.com/taibuivan/cadenza/internal/platform/apperr"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/internal/platform/validate"
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

func (service *Service) ListSongs(ctx context.Context, q resource.Query) ([]*Song, error) {
	return service.repo.ListSongs(ctx, q)
}

func (service *Service) GetSong(ctx context.Context, q resource.Query) (*Song, error) {
	return service.repo.GetSong(ctx, q)
}

// CreateSong stores a new song and queues it for enrichment. Original songs are
// enriched before any other version.
func (service *Service) CreateSong(ctx context.Context, input CreateInput) (*Song, error) {
	if input.Type == "" {
		input.Type = string(TypeOriginal)
	}

	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name).
		OneOf(catalog.FieldType, input.Type, Types...).
		Custom(catalog.FieldArtistID, input.ArtistID <= 0, "Must be a positive id").
		Custom(catalog.FieldGenreIDs, !catalog.ValidIDs(input.GenreIDs), "Must contain positive ids only")

	if input.Lyrics != nil {
		validator.MaxLen(catalog.FieldLyrics, *input.Lyrics, MaxLyricsLength)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	artist, err := service.repo.GetArtist(ctx, input.ArtistID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.Unprocessable("Unknown artist")
	}
	if err != nil {
		return nil, err
	}

	naming := catalog.NameOf(input.Name, artist.Name)
	song := &Song{
		ArtistID:   artist.ID,
		ArtistRef:  *artist,
		Name:       input.Name,
		Slug:       naming.Slug,
		SortName:   naming.SortName,
		SortSlug:   naming.SortSlug,
		Type:       Type(input.Type),
		LyricsText: input.Lyrics,
	}

	if err := service.repo.CreateSong(ctx, song, input.GenreIDs); err != nil {
		return nil, err
	}

	service.publisher.Publish(enrichment.SongCreated(song.ID, song.Name, song.Type == TypeOriginal))
	service.logger.InfoContext(ctx, "song_created",
		slog.Int64("song_id", song.ID),
		slog.String("slug", song.Slug.String()),
		slog.String("type", string(song.Type)),
	)
	return song, nil
}

// RenameSong changes the name of the song addressed by q, keeping its slug scoped by its artist.
func (service *Service) RenameSong(ctx context.Context, q resource.Query, input RenameInput) (*Song, error) {
	validator := &validate.Validator{}
	validator.Required(catalog.FieldName, input.Name).
		MaxLen(catalog.FieldName, input.Name, catalog.MaxNameLength).
		Sluggable(catalog.FieldName, input.Name)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	song, err := service.repo.GetSong(ctx, q)
	if err != nil {
		return nil, err
	}

	naming := catalog.NameOf(input.Name, song.ArtistRef.Name)
	song.Name, song.Slug, song.SortName, song.SortSlug = input.Name, naming.Slug, naming.SortName, naming.SortSlug

	if err := service.repo.RenameSong(ctx, song); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "song_renamed", slog.Int64("song_id", song.ID), slog.String("slug", song.Slug.String()))
	return song, nil
}

// RecordPlay counts one play of the song addressed by q on behalf of callerID.
func (service *Service) RecordPlay(ctx context.Context, q resource.Query, callerID string) (*Song, error) {
	song, err := service.repo.GetSong(ctx, q)
	if err != nil {
		return nil, err
	}

	if song.PlayCount, err = service.repo.IncrementPlayCount(ctx, song.ID); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "song_played",
		slog.Int64("song_id", song.ID),
		slog.String("caller_id", callerID),
		slog.Int64("play_count", song.PlayCount),
	)
	return song, nil
}
