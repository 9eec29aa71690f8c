// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package album

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/platform/database/schema"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/internal/platform/postgres"
	"github.com/taibuivan/cadenza/pkg/slice"
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
		ID:   "al." + schema.Album.ID,
		Slug: "al." + schema.Album.Slug,
		Name: "al." + schema.Album.Name,
		Date: "al." + schema.Album.ReleaseDate,
		Sort: map[sorting.Key]string{
			"id":          "al." + schema.Album.ID,
			"name":        "al." + schema.Album.SortSlug,
			"artistName":  "ar." + schema.Artist.SortSlug,
			"releaseDate": "al." + schema.Album.ReleaseDate,
			"addDate":     "al." + schema.Album.CreatedAt,
		},
	}

	selectAlbums = fmt.Sprintf(`
		SELECT al.%s, al.%s, al.%s, al.%s, al.%s, al.%s, al.%s, al.%s, al.%s, al.%s, ar.%s, ar.%s
		FROM %s al
		LEFT JOIN %s ar ON ar.%s = al.%s`,
		schema.Album.ID, schema.Album.ArtistID, schema.Album.Name, schema.Album.Slug,
		schema.Album.SortName, schema.Album.SortSlug, schema.Album.Type, schema.Album.ReleaseDate,
		schema.Album.IllustrationURL, schema.Album.CreatedAt, schema.Artist.Name, schema.Artist.Slug,
		schema.Album.Table, schema.Artist.Table, schema.Artist.ID, schema.Album.ArtistID,
	)

	selectGenreRefs = fmt.Sprintf(`
		SELECT ag.%s, g.%s, g.%s, g.%s
		FROM %s ag JOIN %s g ON g.%s = ag.%s
		WHERE ag.%s = ANY($1) ORDER BY g.%s`,
		schema.AlbumGenre.AlbumID, schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.AlbumGenre.Table, schema.Genre.Table, schema.Genre.ID, schema.AlbumGenre.GenreID,
		schema.AlbumGenre.AlbumID, schema.Genre.Slug,
	)
)

func scanAlbum(row pgx.CollectableRow) (*Album, error) {
	a := &Album{}
	var (
		rawSlug, rawSortSlug, rawType string
		artistName, artistSlug        *string
	)

	err := row.Scan(&a.ID, &a.ArtistID, &a.Name, &rawSlug, &a.SortName, &rawSortSlug, &rawType,
		&a.ReleaseDate, &a.IllustrationURL, &a.CreatedAt, &artistName, &artistSlug)
	if err != nil {
		return nil, err
	}

	a.Slug, a.SortSlug, a.Type = slug.Slug(rawSlug), slug.Slug(rawSortSlug), Type(rawType)
	if a.ArtistID != nil && artistName != nil && artistSlug != nil {
		a.ArtistRef = &catalog.Ref{ID: *a.ArtistID, Name: *artistName, Slug: slug.Slug(*artistSlug)}
	}
	return a, nil
}

func (repository *PostgresRepository) ListAlbums(ctx context.Context, q resource.Query) ([]*Album, error) {
	filter := resource.NewFilter(columns).Query(q)
	query := selectAlbums + filter.Clause() + filter.OrderBy(q.Sort) + filter.Page(q.Window)

	rows, err := repository.db.Query(ctx, query, filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_albums")
	}

	albums, err := pgx.CollectRows(rows, scanAlbum)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_albums")
	}

	return albums, repository.loadRelations(ctx, albums, q)
}

func (repository *PostgresRepository) GetAlbum(ctx context.Context, q resource.Query) (*Album, error) {
	filter := resource.NewFilter(columns).Query(q)

	rows, err := repository.db.Query(ctx, selectAlbums+filter.Clause(), filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "get_album")
	}

	album, err := pgx.CollectExactlyOneRow(rows, scanAlbum)
	if err != nil {
		return nil, dberr.Wrap(err, "get_album")
	}

	return album, repository.loadRelations(ctx, []*Album{album}, q)
}

// loadRelations fills the requested relations of albums.
//
// 'releases' and 'master' are accepted by the query layer but owned by the release
// service, so they are never rendered here.
func (repository *PostgresRepository) loadRelations(ctx context.Context, albums []*Album, q resource.Query) error {
	for _, a := range albums {
		if q.Include.Has("artist") {
			a.Artist = a.ArtistRef
		}
		if q.Include.Has("illustration") {
			a.Illustration = catalog.IllustrationOf(a.IllustrationURL)
		}
	}

	if q.Include.Has("genres") {
		ids := slice.Map(albums, func(a *Album) int64 { return a.ID })
		genres, err := catalog.LoadRefs(ctx, repository.db, selectGenreRefs, ids)
		if err != nil {
			return dberr.Wrap(err, "load_album_genres")
		}
		for _, a := range albums {
			a.Genres = catalog.RefsOf(genres, a.ID)
		}
	}

	return nil
}

func (repository *PostgresRepository) GetArtist(ctx context.Context, artistID int64) (*catalog.Ref, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Artist.ID, schema.Artist.Name, schema.Artist.Slug, schema.Artist.Table, schema.Artist.ID,
	)

	ref := &catalog.Ref{}
	var rawSlug string
	err := repository.db.QueryRow(ctx, query, artistID).Scan(&ref.ID, &ref.Name, &rawSlug)
	ref.Slug = slug.Slug(rawSlug)
	return ref, dberr.Wrap(err, "get_album_artist")
}

// CreateAlbum inserts the album and its genre links in one transaction.
func (repository *PostgresRepository) CreateAlbum(ctx context.Context, a *Album, genreIDs []int64) error {
	insertAlbum := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.Album.Table, schema.Album.ArtistID, schema.Album.Name, schema.Album.Slug, schema.Album.SortName,
		schema.Album.SortSlug, schema.Album.Type, schema.Album.ReleaseDate, schema.Album.IllustrationURL,
		schema.Album.ID, schema.Album.CreatedAt,
	)
	insertGenres := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		schema.AlbumGenre.Table, schema.AlbumGenre.AlbumID, schema.AlbumGenre.GenreID,
	)

	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertAlbum,
			a.ArtistID, a.Name, a.Slug.String(), a.SortName, a.SortSlug.String(), string(a.Type),
			a.ReleaseDate, a.IllustrationURL,
		).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return err
		}

		if len(genreIDs) == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, insertGenres, a.ID, genreIDs)
		return err
	})
	return dberr.Wrap(err, "create_album")
}

func (repository *PostgresRepository) RenameAlbum(ctx context.Context, a *Album) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW() WHERE %s = $1`,
		schema.Album.Table, schema.Album.Name, schema.Album.Slug, schema.Album.SortName,
		schema.Album.SortSlug, schema.Album.UpdatedAt, schema.Album.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, a.ID, a.Name, a.Slug.String(), a.SortName, a.SortSlug.String())
	if err != nil {
		return dberr.Wrap(err, "rename_album")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
