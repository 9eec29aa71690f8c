// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/catalog/song"
	"github.com/taibuivan/cadenza/internal/enrichment"
	"github.com/taibuivan/cadenza/internal/platform/ctxutil"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/internal/platform/sec"
	"github.com/taibuivan/cadenza/pkg/identifier"
	"github.com/taibuivan/cadenza/pkg/pointer"
	"github.com/taibuivan/cadenza/pkg/search"
	"github.com/taibuivan/cadenza/pkg/slug"
)

var daftPunk = catalog.Ref{ID: 4, Name: "Daft Punk", Slug: "daft-punk"}

type memoryRepository struct {
	songs     []*song.Song
	lastQuery resource.Query
}

// matchesName evaluates a name predicate in memory, ignoring case like ILIKE does.
func matchesName(predicate *search.StringPredicate, name string) bool {
	if predicate == nil {
		return true
	}
	name, value := strings.ToLower(name), strings.ToLower(predicate.Value())
	switch predicate.Mode() {
	case search.ModeStartsWith:
		return strings.HasPrefix(name, value)
	case search.ModeEndsWith:
		return strings.HasSuffix(name, value)
	case search.ModeContains:
		return strings.Contains(name, value)
	default:
		return name == value
	}
}

func (repo *memoryRepository) ListSongs(ctx context.Context, q resource.Query) ([]*song.Song, error) {
	repo.lastQuery = q
	var result []*song.Song
	for _, s := range repo.songs {
		if matchesName(q.Name, s.Name) {
			result = append(result, repo.render(s, q))
		}
	}
	return result, nil
}

func (repo *memoryRepository) GetSong(ctx context.Context, q resource.Query) (*song.Song, error) {
	repo.lastQuery = q
	for _, s := range repo.songs {
		switch id := q.Identifier.(type) {
		case identifier.Numeric:
			if s.ID == id.ID {
				return repo.render(s, q), nil
			}
		case identifier.SlugID:
			if s.Slug == id.Slug {
				return repo.render(s, q), nil
			}
		case identifier.Composite:
			if s.Slug == id.Slug() {
				return repo.render(s, q), nil
			}
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryRepository) render(s *song.Song, q resource.Query) *song.Song {
	rendered := *s
	if q.Include.Has("artist") {
		rendered.Artist = &rendered.ArtistRef
	}
	if q.Include.Has("lyrics") {
		rendered.Lyrics = &song.Lyrics{Content: s.LyricsText}
	}
	if q.Include.Has("genres") {
		rendered.Genres = catalog.RefsOf(nil, s.ID)
	}
	return &rendered
}

func (repo *memoryRepository) CreateSong(ctx context.Context, s *song.Song, genreIDs []int64) error {
	s.ID = int64(len(repo.songs) + 1)
	s.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.songs = append(repo.songs, s)
	return nil
}

func (repo *memoryRepository) RenameSong(ctx context.Context, s *song.Song) error {
	for i, existing := range repo.songs {
		if existing.ID == s.ID {
			repo.songs[i] = s
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (repo *memoryRepository) IncrementPlayCount(ctx context.Context, songID int64) (int64, error) {
	for _, s := range repo.songs {
		if s.ID == songID {
			s.PlayCount++
			return s.PlayCount, nil
		}
	}
	return 0, dberr.ErrNotFound
}

func (repo *memoryRepository) GetArtist(ctx context.Context, artistID int64) (*catalog.Ref, error) {
	if artistID == daftPunk.ID {
		ref := daftPunk
		return &ref, nil
	}
	return nil, dberr.ErrNotFound
}

type recordingPublisher struct {
	events []enrichment.Event
}

func (publisher *recordingPublisher) Publish(event enrichment.Event) {
	publisher.events = append(publisher.events, event)
}

func newTestServer(t *testing.T, role sec.UserRole) (http.Handler, *memoryRepository, *recordingPublisher) {
	t.Helper()

	repo := &memoryRepository{songs: []*song.Song{
		{
			ID: 1, ArtistID: daftPunk.ID, ArtistRef: daftPunk, Name: "One More Time",
			Slug: "daft-punk-one-more-time", SortName: "One More Time", SortSlug: "one-more-time",
			Type: song.TypeOriginal, LyricsText: pointer.To("One more time"), PlayCount: 41,
		},
		{
			ID: 2, ArtistID: daftPunk.ID, ArtistRef: daftPunk, Name: "Aerodynamic",
			Slug: "daft-punk-aerodynamic", SortName: "Aerodynamic", SortSlug: "aerodynamic",
			Type: song.TypeInstrumental,
		},
	}}
	publisher := &recordingPublisher{}
	service := song.NewService(repo, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role != "" {
				request = request.WithContext(ctxutil.WithCaller(request.Context(), &sec.AuthClaims{UserID: "test", Role: string(role)}))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/api/v1/songs", song.NewHandler(service).RegisterRoutes)

	return router, repo, publisher
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, reader))
	return recorder
}

/*
TestListSongs searches by name and renders lyrics on lists.
*/
func TestListSongs(t *testing.T) {
	handler, repo, _ := newTestServer(t, "")

	recorder := serve(handler, http.MethodGet, "/api/v1/songs?q=more&with=lyrics&sort=playCount&order=desc", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, "playCount", string(repo.lastQuery.Sort.Key))
	assert.Contains(t, recorder.Body.String(), `"lyrics":{"content":"One more time"}`)
	assert.NotContains(t, recorder.Body.String(), "Aerodynamic")
}

/*
TestListSongs_InvalidQuery rejects relations that are only available on single songs.
*/
func TestListSongs_InvalidQuery(t *testing.T) {
	handler, _, _ := newTestServer(t, "")

	for _, target := range []string{"/api/v1/songs?with=genres", "/api/v1/songs?with=versions"} {
		recorder := serve(handler, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "INVALID_RELATION_INCLUDE_KEY")
	}

	recorder := serve(handler, http.MethodGet, "/api/v1/songs?releasedIn=2001", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestGetSong resolves "artist+song" identifiers and renders null lyrics when unknown.
*/
func TestGetSong(t *testing.T) {
	handler, _, _ := newTestServer(t, "")

	recorder := serve(handler, http.MethodGet, "/api/v1/songs/daft-punk+aerodynamic?with=lyrics,artist,genres,externalIds", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, `"lyrics":{"content":null}`)
	assert.Contains(t, body, `"artist":{"id":4,"name":"Daft Punk","slug":"daft-punk"}`)
	assert.Contains(t, body, `"genres":[]`)
	assert.NotContains(t, body, "externalIds")

	recorder = serve(handler, http.MethodGet, "/api/v1/songs/daft-punk+", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestCreateSong sets the enrichment priority from the song type.
*/
func TestCreateSong(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		slug     slug.Slug
		priority uint8
	}{
		{"original", `{"name":"Digital Love","artistId":4}`, "daft-punk-digital-love", 4},
		{"remix", `{"name":"Digital Love (Remix)","artistId":4,"type":"Remix"}`, "daft-punk-digital-love-remix", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo, publisher := newTestServer(t, sec.RoleIngestion)

			recorder := serve(handler, http.MethodPost, "/api/v1/songs", tt.body)
			require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

			created := repo.songs[len(repo.songs)-1]
			assert.Equal(t, tt.slug, created.Slug)

			require.Len(t, publisher.events, 1)
			assert.Equal(t, enrichment.TypeSong, publisher.events[0].Kind.Type())
			assert.Equal(t, tt.priority, publisher.events[0].Priority())
		})
	}
}

/*
TestCreateSong_Rejected covers missing and unknown artists.
*/
func TestCreateSong_Rejected(t *testing.T) {
	handler, _, publisher := newTestServer(t, sec.RoleIngestion)

	assert.Equal(t, http.StatusBadRequest, serve(handler, http.MethodPost, "/api/v1/songs", `{"name":"Veridis Quo"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(handler, http.MethodPost, "/api/v1/songs", `{"name":"Veridis Quo","artistId":9}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(handler, http.MethodPost, "/api/v1/songs", `{"name":"Veridis Quo","artistId":4,"type":"Cover"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(handler, http.MethodPost, "/api/v1/songs", `{"name":"Veridis Quo","artistId":4,"genreIds":[2,0]}`).Code)
	assert.Empty(t, publisher.events)
}

/*
TestRecordPlay increments the play count for signed-in callers only.
*/
func TestRecordPlay(t *testing.T) {
	handler, repo, _ := newTestServer(t, sec.RoleMember)

	recorder := serve(handler, http.MethodPost, "/api/v1/songs/1/played", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"playCount":42`)
	assert.Equal(t, int64(42), repo.songs[0].PlayCount)

	anonymous, _, _ := newTestServer(t, "")
	assert.Equal(t, http.StatusUnauthorized, serve(anonymous, http.MethodPost, "/api/v1/songs/1/played", "").Code)
}

/*
TestRenameSong keeps the artist prefix in the new slug.
*/
func TestRenameSong(t *testing.T) {
	handler, repo, _ := newTestServer(t, sec.RoleAdmin)

	recorder := serve(handler, http.MethodPatch, "/api/v1/songs/daft-punk+one-more-time", `{"name":"One More Time (Radio Edit)"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, slug.Slug("daft-punk-one-more-time-radio-edit"), repo.songs[0].Slug)
}
