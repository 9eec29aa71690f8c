// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/platform/database/schema"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/pkg/slug"
	"github.com/taibuivan/cadenza/pkg/sorting"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	columns = resource.Columns{
		ID:   "g." + schema.Genre.ID,
		Slug: "g." + schema.Genre.Slug,
		Name: "g." + schema.Genre.Name,
		Sort: map[sorting.Key]string{
			"id":   "g." + schema.Genre.ID,
			"name": "g." + schema.Genre.Slug,
			"songCount": fmt.Sprintf("(SELECT count(*) FROM %s sg WHERE sg.%s = g.%s)",
				schema.SongGenre.Table, schema.SongGenre.GenreID, schema.Genre.ID),
		},
	}

	selectGenres = fmt.Sprintf(`SELECT g.%s, g.%s, g.%s, g.%s FROM %s g`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug, schema.Genre.CreatedAt, schema.Genre.Table,
	)
)

func scanGenre(row pgx.CollectableRow) (*Genre, error) {
	g := &Genre{}
	var rawSlug string
	err := row.Scan(&g.ID, &g.Name, &rawSlug, &g.CreatedAt)
	g.Slug = slug.Slug(rawSlug)
	return g, err
}

func (repository *PostgresRepository) ListGenres(ctx context.Context, q resource.Query) ([]*Genre, error) {
	filter := resource.NewFilter(columns).Query(q)
	query := selectGenres + filter.Clause() + filter.OrderBy(q.Sort) + filter.Page(q.Window)

	rows, err := repository.db.Query(ctx, query, filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}

	genres, err := pgx.CollectRows(rows, scanGenre)
	return genres, dberr.Wrap(err, "scan_genres")
}

func (repository *PostgresRepository) GetGenre(ctx context.Context, q resource.Query) (*Genre, error) {
	filter := resource.NewFilter(columns).Query(q)

	rows, err := repository.db.Query(ctx, selectGenres+filter.Clause(), filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}

	genre, err := pgx.CollectExactlyOneRow(rows, scanGenre)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}
	return genre, nil
}

func (repository *PostgresRepository) CreateGenre(ctx context.Context, g *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		schema.Genre.Table, schema.Genre.Name, schema.Genre.Slug, schema.Genre.ID, schema.Genre.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, g.Name, g.Slug.String()).Scan(&g.ID, &g.CreatedAt)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) RenameGenre(ctx context.Context, g *Genre) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Genre.Table, schema.Genre.Name, schema.Genre.Slug, schema.Genre.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, g.ID, g.Name, g.Slug.String())
	if err != nil {
		return dberr.Wrap(err, "rename_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
