// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package album

import (
	"context"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
)

// Repository persists albums.
type Repository interface {
	ListAlbums(ctx context.Context, q resource.Query) ([]*Album, error)
	GetAlbum(ctx context.Context, q resource.Query) (*Album, error)
	CreateAlbum(ctx context.Context, a *Album, genreIDs []int64) error
	RenameAlbum(ctx context.Context, a *Album) error

	// GetArtist returns the artist an album is created under.
	GetArtist(ctx context.Context, artistID int64) (*catalog.Ref, error)
}
