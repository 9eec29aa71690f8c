// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

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
		ID:   "a." + schema.Artist.ID,
		Slug: "a." + schema.Artist.Slug,
		Name: "a." + schema.Artist.Name,
		Sort: map[sorting.Key]string{
			"id":      "a." + schema.Artist.ID,
			"name":    "a." + schema.Artist.SortSlug,
			"addDate": "a." + schema.Artist.CreatedAt,
			"albumCount": fmt.Sprintf("(SELECT count(*) FROM %s al WHERE al.%s = a.%s)",
				schema.Album.Table, schema.Album.ArtistID, schema.Artist.ID),
			"songCount": fmt.Sprintf("(SELECT count(*) FROM %s so WHERE so.%s = a.%s)",
				schema.Song.Table, schema.Song.ArtistID, schema.Artist.ID),
		},
	}

	selectArtists = fmt.Sprintf(`SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s FROM %s a`,
		schema.Artist.ID, schema.Artist.Name, schema.Artist.Slug, schema.Artist.SortName,
		schema.Artist.SortSlug, schema.Artist.IllustrationURL, schema.Artist.CreatedAt,
		schema.Artist.Table,
	)

	selectAlbumRefs = fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		schema.Album.ArtistID, schema.Album.ID, schema.Album.Name, schema.Album.Slug,
		schema.Album.Table, schema.Album.ArtistID, schema.Album.SortSlug,
	)

	selectSongRefs = fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		schema.Song.ArtistID, schema.Song.ID, schema.Song.Name, schema.Song.Slug,
		schema.Song.Table, schema.Song.ArtistID, schema.Song.SortSlug,
	)
)

func scanArtist(row pgx.CollectableRow) (*Artist, error) {
	a := &Artist{}
	var rawSlug, rawSortSlug string
	err := row.Scan(&a.ID, &a.Name, &rawSlug, &a.SortName, &rawSortSlug, &a.IllustrationURL, &a.CreatedAt)
	a.Slug, a.SortSlug = slug.Slug(rawSlug), slug.Slug(rawSortSlug)
	return a, err
}

func (repository *PostgresRepository) ListArtists(ctx context.Context, q resource.Query) ([]*Artist, error) {
	filter := resource.NewFilter(columns).Query(q)
	query := selectArtists + filter.Clause() + filter.OrderBy(q.Sort) + filter.Page(q.Window)

	rows, err := repository.db.Query(ctx, query, filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_artists")
	}

	artists, err := pgx.CollectRows(rows, scanArtist)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_artists")
	}

	return artists, repository.loadRelations(ctx, artists, q)
}

func (repository *PostgresRepository) GetArtist(ctx context.Context, q resource.Query) (*Artist, error) {
	filter := resource.NewFilter(columns).Query(q)

	rows, err := repository.db.Query(ctx, selectArtists+filter.Clause(), filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}

	artist, err := pgx.CollectExactlyOneRow(rows, scanArtist)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}

	return artist, repository.loadRelations(ctx, []*Artist{artist}, q)
}

// loadRelations fills the requested relations of artists.
func (repository *PostgresRepository) loadRelations(ctx context.Context, artists []*Artist, q resource.Query) error {
	ids := slice.Map(artists, func(a *Artist) int64 { return a.ID })

	if q.Include.Has("illustration") {
		for _, a := range artists {
			a.Illustration = catalog.IllustrationOf(a.IllustrationURL)
		}
	}

	if q.Include.Has("albums") {
		albums, err := catalog.LoadRefs(ctx, repository.db, selectAlbumRefs, ids)
		if err != nil {
			return dberr.Wrap(err, "load_artist_albums")
		}
		for _, a := range artists {
			a.Albums = catalog.RefsOf(albums, a.ID)
		}
	}

	if q.Include.Has("songs") {
		songs, err := catalog.LoadRefs(ctx, repository.db, selectSongRefs, ids)
		if err != nil {
			return dberr.Wrap(err, "load_artist_songs")
		}
		for _, a := range artists {
			a.Songs = catalog.RefsOf(songs, a.ID)
		}
	}

	return nil
}

func (repository *PostgresRepository) CreateArtist(ctx context.Context, a *Artist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.Artist.Table, schema.Artist.Name, schema.Artist.Slug, schema.Artist.SortName,
		schema.Artist.SortSlug, schema.Artist.IllustrationURL,
		schema.Artist.ID, schema.Artist.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		a.Name, a.Slug.String(), a.SortName, a.SortSlug.String(), a.IllustrationURL,
	).Scan(&a.ID, &a.CreatedAt)
	return dberr.Wrap(err, "create_artist")
}

func (repository *PostgresRepository) RenameArtist(ctx context.Context, a *Artist, rescope func(name string) slug.Slug) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW() WHERE %s = $1`,
		schema.Artist.Table, schema.Artist.Name, schema.Artist.Slug, schema.Artist.SortName,
		schema.Artist.SortSlug, schema.Artist.UpdatedAt, schema.Artist.ID,
	)

	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query, a.ID, a.Name, a.Slug.String(), a.SortName, a.SortSlug.String())
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		for _, table := range scopedTables {
			if err := rescopeSlugs(ctx, tx, table, a.ID, rescope); err != nil {
				return err
			}
		}
		return nil
	})
	return dberr.Wrap(err, "rename_artist")
}

// scopedTable names the columns of a table whose slugs embed the artist name.
type scopedTable struct {
	table, id, artistID, name, slug, updatedAt string
}

var scopedTables = []scopedTable{
	{schema.Album.Table, schema.Album.ID, schema.Album.ArtistID, schema.Album.Name, schema.Album.Slug, schema.Album.UpdatedAt},
	{schema.Song.Table, schema.Song.ID, schema.Song.ArtistID, schema.Song.Name, schema.Song.Slug, schema.Song.UpdatedAt},
}

// rescopeSlugs recomputes the slug of every row of t owned by artistID.
func rescopeSlugs(ctx context.Context, tx pgx.Tx, t scopedTable, artistID int64, rescope func(name string) slug.Slug) error {
	rows, err := tx.Query(ctx, fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`, t.id, t.name, t.table, t.artistID), artistID)
	if err != nil {
		return err
	}

	var (
		ids   []int64
		slugs []string
		id    int64
		name  string
	)
	_, err = pgx.ForEachRow(rows, []any{&id, &name}, func() error {
		ids = append(ids, id)
		slugs = append(slugs, rescope(name).String())
		return nil
	})
	if err != nil || len(ids) == 0 {
		return err
	}

	update := fmt.Sprintf(`
		UPDATE %s AS t SET %s = v.slug, %s = NOW()
		FROM unnest($1::bigint[], $2::text[]) AS v(id, slug)
		WHERE t.%s = v.id
	`, t.table, t.slug, t.updatedAt, t.id)

	_, err = tx.Exec(ctx, update, ids, slugs)
	return err
}
