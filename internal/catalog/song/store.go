// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"context"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
)

// Repository persists songs.
type Repository interface {
	ListSongs(ctx context.Context, q resource.Query) ([]*Song, error)
	GetSong(ctx context.Context, q resource.Query) (*Song, error)
	CreateSong(ctx context.Context, s *Song, genreIDs []int64) error
	RenameSong(ctx context.Context, s *Song) error

	// IncrementPlayCount adds one play to the song and returns the new count.
	IncrementPlayCount(ctx context.Context, songID int64) (int64, error)

	GetArtist(ctx context.Context, artistID int64) (*catalog.Ref, error)
}
