// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"encoding/json"
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
	"github.com/taibuivan/cadenza/internal/catalog/artist"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/enrichment"
	"github.com/taibuivan/cadenza/internal/platform/ctxutil"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/internal/platform/sec"
	"github.com/taibuivan/cadenza/pkg/identifier"
	"github.com/taibuivan/cadenza/pkg/pointer"
	"github.com/taibuivan/cadenza/pkg/search"
	"github.com/taibuivan/cadenza/pkg/slug"
)

// memoryRepository is an in-memory [artist.Repository].
type memoryRepository struct {
	artists   []*artist.Artist
	children  []*scopedChild
	lastQuery resource.Query
}

// scopedChild stands in for an album or song row whose slug embeds the artist name.
type scopedChild struct {
	ArtistID int64
	Name     string
	Slug     slug.Slug
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

func (repo *memoryRepository) ListArtists(ctx context.Context, q resource.Query) ([]*artist.Artist, error) {
	repo.lastQuery = q
	var result []*artist.Artist
	for _, a := range repo.artists {
		if matchesName(q.Name, a.Name) {
			result = append(result, repo.render(a, q))
		}
	}
	return result, nil
}

func (repo *memoryRepository) GetArtist(ctx context.Context, q resource.Query) (*artist.Artist, error) {
	repo.lastQuery = q
	for _, a := range repo.artists {
		switch id := q.Identifier.(type) {
		case identifier.Numeric:
			if a.ID == id.ID {
				return repo.render(a, q), nil
			}
		case identifier.SlugID:
			if a.Slug == id.Slug {
				return repo.render(a, q), nil
			}
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryRepository) render(a *artist.Artist, q resource.Query) *artist.Artist {
	rendered := *a
	if q.Include.Has("illustration") {
		rendered.Illustration = catalog.IllustrationOf(a.IllustrationURL)
	}
	if q.Include.Has("albums") {
		rendered.Albums = catalog.RefsOf(nil, a.ID)
	}
	return &rendered
}

func (repo *memoryRepository) CreateArtist(ctx context.Context, a *artist.Artist) error {
	a.ID = int64(len(repo.artists) + 1)
	a.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.artists = append(repo.artists, a)
	return nil
}

func (repo *memoryRepository) RenameArtist(ctx context.Context, a *artist.Artist, rescope func(name string) slug.Slug) error {
	for i, existing := range repo.artists {
		if existing.ID != a.ID {
			continue
		}
		repo.artists[i] = a
		for _, child := range repo.children {
			if child.ArtistID == a.ID {
				child.Slug = rescope(child.Name)
			}
		}
		return nil
	}
	return dberr.ErrNotFound
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	events []enrichment.Event
}

func (publisher *recordingPublisher) Publish(event enrichment.Event) {
	publisher.events = append(publisher.events, event)
}

func newTestServer(t *testing.T, role sec.UserRole) (http.Handler, *memoryRepository, *recordingPublisher) {
	t.Helper()

	repo := &memoryRepository{artists: []*artist.Artist{
		{ID: 1, Name: "The Beatles", Slug: "the-beatles", SortName: "Beatles, The", SortSlug: "beatles-the", IllustrationURL: pointer.To("https://img/beatles.jpg")},
		{ID: 2, Name: "Björk", Slug: "bjork", SortName: "Björk", SortSlug: "bjork"},
	}}
	publisher := &recordingPublisher{}
	service := artist.NewService(repo, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role != "" {
				request = request.WithContext(ctxutil.WithCaller(request.Context(), &sec.AuthClaims{UserID: "test", Role: string(role)}))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/api/v1/artists", artist.NewHandler(service).RegisterRoutes)

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
TestListArtists returns the paginated envelope with navigation metadata.
*/
func TestListArtists(t *testing.T) {
	handler, repo, _ := newTestServer(t, "")

	recorder := serve(handler, http.MethodGet, "/api/v1/artists?take=1&with=illustration&sort=name&order=desc", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Items    []map[string]any `json:"items"`
		Metadata struct {
			Count int     `json:"count"`
			This  string  `json:"this"`
			Next  *string `json:"next"`
			Page  *int    `json:"page"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "name", string(repo.lastQuery.Sort.Key))
	assert.Equal(t, uint64(1), repo.lastQuery.Window.Take)
	assert.True(t, repo.lastQuery.Include.Has("illustration"))

	require.Len(t, body.Items, 2)
	assert.Contains(t, body.Items[0], "illustration")
	assert.NotContains(t, body.Items[1], "illustration")
	assert.Equal(t, 2, body.Metadata.Count)
	assert.NotNil(t, body.Metadata.Next)
}

/*
TestListArtists_InvalidQuery maps parser errors to 400 with their taxonomy code.
*/
func TestListArtists_InvalidQuery(t *testing.T) {
	handler, _, _ := newTestServer(t, "")

	tests := []struct {
		name   string
		target string
		code   string
	}{
		{"collection_include", "/api/v1/artists?with=albums", "INVALID_RELATION_INCLUDE_KEY"},
		{"include_format", "/api/v1/artists?with=illustration,", "INVALID_RELATION_INCLUDE_FORMAT"},
		{"negative_skip", "/api/v1/artists?skip=-1", "INVALID_PAGINATION_PARAMETER"},
		{"two_name_filters", "/api/v1/artists?name=a&nameStartsWith=b", "INVALID_SEARCH_PARAMETER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.code)
		})
	}
}

/*
TestGetArtist resolves ids and slugs and accepts collection includes.
*/
func TestGetArtist(t *testing.T) {
	handler, _, _ := newTestServer(t, "")

	recorder := serve(handler, http.MethodGet, "/api/v1/artists/bjork?with=albums", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"albums":[]`)
	assert.Contains(t, recorder.Body.String(), `"name":"Björk"`)

	recorder = serve(handler, http.MethodGet, "/api/v1/artists/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "albums")

	recorder = serve(handler, http.MethodGet, "/api/v1/artists/999", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestCreateArtist derives names and queues an enrichment event.
*/
func TestCreateArtist(t *testing.T) {
	handler, repo, publisher := newTestServer(t, sec.RoleIngestion)

	recorder := serve(handler, http.MethodPost, "/api/v1/artists", `{"name":"The Chemical Brothers"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	created := repo.artists[len(repo.artists)-1]
	assert.Equal(t, slug.Slug("the-chemical-brothers"), created.Slug)
	assert.Equal(t, "Chemical Brothers, The", created.SortName)
	assert.Equal(t, slug.Slug("chemical-brothers-the"), created.SortSlug)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, enrichment.KindArtist, publisher.events[0].Kind)
	assert.Equal(t, created.ID, publisher.events[0].ID)
	assert.Equal(t, uint8(5), publisher.events[0].Priority())
}

/*
TestCreateArtist_Validation rejects unusable names without publishing.
*/
func TestCreateArtist_Validation(t *testing.T) {
	handler, _, publisher := newTestServer(t, sec.RoleIngestion)

	recorder := serve(handler, http.MethodPost, "/api/v1/artists", `{"name":"???"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
	assert.Empty(t, publisher.events)
}

/*
TestCreateArtist_RequiresIngestionRole rejects anonymous and member callers.
*/
func TestCreateArtist_RequiresIngestionRole(t *testing.T) {
	anonymous, _, _ := newTestServer(t, "")
	assert.Equal(t, http.StatusUnauthorized, serve(anonymous, http.MethodPost, "/api/v1/artists", `{"name":"x"}`).Code)

	member, _, _ := newTestServer(t, sec.RoleMember)
	assert.Equal(t, http.StatusForbidden, serve(member, http.MethodPost, "/api/v1/artists", `{"name":"x"}`).Code)
}

/*
TestRenameArtist recomputes slug and sort names.
*/
func TestRenameArtist(t *testing.T) {
	handler, repo, publisher := newTestServer(t, sec.RoleAdmin)

	recorder := serve(handler, http.MethodPatch, "/api/v1/artists/bjork", `{"name":"Björk Gudmundsdóttir"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	renamed := repo.artists[1]
	assert.Equal(t, "Björk Gudmundsdóttir", renamed.Name)
	assert.Equal(t, slug.Slug("bjork-gudmundsdottir"), renamed.Slug)
	assert.Empty(t, publisher.events)
}
