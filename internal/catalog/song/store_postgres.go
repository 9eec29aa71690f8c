// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

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
		ID:   "s." + schema.Song.ID,
		Slug: "s." + schema.Song.Slug,
		Name: "s." + schema.Song.Name,
		Sort: map[sorting.Key]string{
			"id":         "s." + schema.Song.ID,
			"name":       "s." + schema.Song.SortSlug,
			"playCount":  "s." + schema.Song.PlayCount,
			"artistName": "ar." + schema.Artist.SortSlug,
			"addDate":    "s." + schema.Song.CreatedAt,
		},
	}

	selectSongs = fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, ar.%s, ar.%s
		FROM %s s
		JOIN %s ar ON ar.%s = s.%s`,
		schema.Song.ID, schema.Song.ArtistID, schema.Song.Name, schema.Song.Slug,
		schema.Song.SortName, schema.Song.SortSlug, schema.Song.Type, schema.Song.Lyrics,
		schema.Song.PlayCount, schema.Song.CreatedAt, schema.Artist.Name, schema.Artist.Slug,
		schema.Song.Table, schema.Artist.Table, schema.Artist.ID, schema.Song.ArtistID,
	)

	selectGenreRefs = fmt.Sprintf(`
		SELECT sg.%s, g.%s, g.%s, g.%s
		FROM %s sg JOIN %s g ON g.%s = sg.%s
		WHERE sg.%s = ANY($1) ORDER BY g.%s`,
		schema.SongGenre.SongID, schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.SongGenre.Table, schema.Genre.Table, schema.Genre.ID, schema.SongGenre.GenreID,
		schema.SongGenre.SongID, schema.Genre.Slug,
	)
)

func scanSong(row pgx.CollectableRow) (*Song, error) {
	s := &Song{}
	var rawSlug, rawSortSlug, rawType, artistSlug string

	err := row.Scan(&s.ID, &s.ArtistID, &s.Name, &rawSlug, &s.SortName, &rawSortSlug, &rawType,
		&s.LyricsText, &s.PlayCount, &s.CreatedAt, &s.ArtistRef.Name, &artistSlug)

	s.Slug, s.SortSlug, s.Type = slug.Slug(rawSlug), slug.Slug(rawSortSlug), Type(rawType)
	s.ArtistRef.ID, s.ArtistRef.Slug = s.ArtistID, slug.Slug(artistSlug)
	return s, err
}

func (repository *PostgresRepository) ListSongs(ctx context.Context, q resource.Query) ([]*Song, error) {
	filter := resource.NewFilter(columns).Query(q)
	query := selectSongs + filter.Clause() + filter.OrderBy(q.Sort) + filter.Page(q.Window)

	rows, err := repository.db.Query(ctx, query, filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_songs")
	}

	songs, err := pgx.CollectRows(rows, scanSong)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_songs")
	}

	return songs, repository.loadRelations(ctx, songs, q)
}

func (repository *PostgresRepository) GetSong(ctx context.Context, q resource.Query) (*Song, error) {
	filter := resource.NewFilter(columns).Query(q)

	rows, err := repository.db.Query(ctx, selectSongs+filter.Clause(), filter.Args()...)
	if err != nil {
		return nil, dberr.Wrap(err, "get_song")
	}

	song, err := pgx.CollectExactlyOneRow(rows, scanSong)
	if err != nil {
		return nil, dberr.Wrap(err, "get_song")
	}

	return song, repository.loadRelations(ctx, []*Song{song}, q)
}

// loadRelations fills the requested relations of songs.
//
// 'versions' and 'externalIds' belong to the track and provider services and are
// never rendered here.
func (repository *PostgresRepository) loadRelations(ctx context.Context, songs []*Song, q resource.Query) error {
	for _, s := range songs {
		if q.Include.Has("artist") {
			s.Artist = &s.ArtistRef
		}
		if q.Include.Has("lyrics") {
			s.Lyrics = &Lyrics{Content: s.LyricsText}
		}
	}

	if q.Include.Has("genres") {
		ids := slice.Map(songs, func(s *Song) int64 { return s.ID })
		genres, err := catalog.LoadRefs(ctx, repository.db, selectGenreRefs, ids)
		if err != nil {
			return dberr.Wrap(err, "load_song_genres")
		}
		for _, s := range songs {
			s.Genres = catalog.RefsOf(genres, s.ID)
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
	return ref, dberr.Wrap(err, "get_song_artist")
}

// CreateSong inserts the song and its genre links in one transaction.
func (repository *PostgresRepository) CreateSong(ctx context.Context, s *Song, genreIDs []int64) error {
	insertSong := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		schema.Song.Table, schema.Song.ArtistID, schema.Song.Name, schema.Song.Slug, schema.Song.SortName,
		schema.Song.SortSlug, schema.Song.Type, schema.Song.Lyrics,
		schema.Song.ID, schema.Song.CreatedAt,
	)
	insertGenres := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		schema.SongGenre.Table, schema.SongGenre.SongID, schema.SongGenre.GenreID,
	)

	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertSong,
			s.ArtistID, s.Name, s.Slug.String(), s.SortName, s.SortSlug.String(), string(s.Type), s.LyricsText,
		).Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			return err
		}

		if len(genreIDs) == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, insertGenres, s.ID, genreIDs)
		return err
	})
	return dberr.Wrap(err, "create_song")
}

func (repository *PostgresRepository) RenameSong(ctx context.Context, s *Song) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW() WHERE %s = $1`,
		schema.Song.Table, schema.Song.Name, schema.Song.Slug, schema.Song.SortName,
		schema.Song.SortSlug, schema.Song.UpdatedAt, schema.Song.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, s.ID, s.Name, s.Slug.String(), s.SortName, s.SortSlug.String())
	if err != nil {
		return dberr.Wrap(err, "rename_song")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) IncrementPlayCount(ctx context.Context, songID int64) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s`,
		schema.Song.Table, schema.Song.PlayCount, schema.Song.PlayCount, schema.Song.ID, schema.Song.PlayCount,
	)

	var count int64
	err := repository.db.QueryRow(ctx, query, songID).Scan(&count)
	return count, dberr.Wrap(err, "increment_play_count")
}
