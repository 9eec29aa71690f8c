// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"github.com/taibuivan/cadenza/internal/catalog/resource"
)

// Repository persists genres.
type Repository interface {
	ListGenres(ctx context.Context, q resource.Query) ([]*Genre, error)
	GetGenre(ctx context.Context, q resource.Query) (*Genre, error)
	CreateGenre(ctx context.Context, g *Genre) error
	RenameGenre(ctx context.Context, g *Genre) error
}
