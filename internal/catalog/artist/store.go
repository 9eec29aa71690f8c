// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"

	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/pkg/slug"
)

// Repository persists artists.
type Repository interface {
	ListArtists(ctx context.Context, q resource.Query) ([]*Artist, error)
	GetArtist(ctx context.Context, q resource.Query) (*Artist, error)
	CreateArtist(ctx context.Context, a *Artist) error
	// RenameArtist stores the new names of a and replaces the slug of every album and
	// song of a with rescope(name), in a single transaction.
	RenameArtist(ctx context.Context, a *Artist, rescope func(name string) slug.Slug) error
}
