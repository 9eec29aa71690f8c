// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resource_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/pkg/identifier"
	"github.com/taibuivan/cadenza/pkg/pagination"
	"github.com/taibuivan/cadenza/pkg/queryerr"
	"github.com/taibuivan/cadenza/pkg/relation"
	"github.com/taibuivan/cadenza/pkg/search"
	"github.com/taibuivan/cadenza/pkg/slug"
	"github.com/taibuivan/cadenza/pkg/sorting"
)

/*
TestDefinitions_Atomic checks the list allow-lists derived from the full ones.
*/
func TestDefinitions_Atomic(t *testing.T) {
	tests := []struct {
		definition resource.Definition
		want       relation.Keys
	}{
		{resource.Artist, relation.Keys{"illustration"}},
		{resource.Album, relation.Keys{"artist", "master", "genres", "illustration"}},
		{resource.Release, relation.Keys{"album", "illustration", "discs", "label", "localIdentifiers"}},
		{resource.Song, relation.Keys{"artist", "lyrics", "externalIds"}},
		{resource.Track, relation.Keys{"song", "release", "sourceFile", "video", "illustration"}},
		{resource.Video, relation.Keys{"artist", "song", "master", "illustration"}},
		{resource.Genre, relation.Keys{}},
		{resource.Playlist, relation.Keys{"illustration"}},
	}

	for _, tt := range tests {
		t.Run(tt.definition.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.definition.Atomic)
		})
	}
}

/*
TestDefinitions_SortKeys makes sure every definition has a default sort key.
*/
func TestDefinitions_SortKeys(t *testing.T) {
	definitions := []resource.Definition{
		resource.Artist, resource.Album, resource.Release, resource.Song, resource.Track,
		resource.Video, resource.Genre, resource.Label, resource.Playlist,
	}
	for _, definition := range definitions {
		require.NotEmpty(t, definition.SortKeys, definition.Name)
		assert.Equal(t, sorting.Key("id"), definition.SortKeys[0], definition.Name)
	}
}

/*
TestParseList reads every parameter family of a list request.
*/
func TestParseList(t *testing.T) {
	values := url.Values{
		"with":         {"genres,illustration"},
		"nameEndsWith": {"live"},
		"releasedIn":   {"1999"},
		"sort":         {"releaseDate"},
		"order":        {"desc"},
		"skip":         {"20"},
		"take":         {"10"},
	}

	q, err := resource.ParseList(values, resource.Album)
	require.NoError(t, err)

	assert.Nil(t, q.Identifier)
	assert.True(t, q.Include.Has("genres"))
	assert.True(t, q.Include.Has("illustration"))
	assert.False(t, q.Include.Has("artist"))
	assert.Len(t, q.Include, len(resource.Album.Atomic))

	require.NotNil(t, q.Name)
	assert.Equal(t, search.ModeEndsWith, q.Name.Mode())
	require.NotNil(t, q.Date)
	assert.Equal(t, search.ModeInYear, q.Date.Mode())

	assert.Equal(t, sorting.Parameter{Key: "releaseDate", Order: sorting.Desc}, q.Sort)
	assert.Equal(t, pagination.Window{Skip: 20, Take: 10}, q.Window)
}

/*
TestParseList_Errors maps each invalid parameter to its error kind.
*/
func TestParseList_Errors(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		definition resource.Definition
		kind       queryerr.Kind
	}{
		{"collection_on_list", url.Values{"with": {"albums"}}, resource.Artist, queryerr.InvalidRelationIncludeKey},
		{"bad_include", url.Values{"with": {"artist,"}}, resource.Song, queryerr.InvalidRelationIncludeFormat},
		{"two_name_modes", url.Values{"name": {"a"}, "q": {"b"}}, resource.Artist, queryerr.InvalidSearchParameter},
		{"bad_year", url.Values{"releasedIn": {"nineteen"}}, resource.Album, queryerr.InvalidSearchParameter},
		{"bad_take", url.Values{"take": {"-3"}}, resource.Genre, queryerr.InvalidPaginationParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resource.ParseList(tt.values, tt.definition)
			require.Error(t, err)
			qe := queryerr.As(err)
			require.NotNil(t, qe)
			assert.Equal(t, tt.kind, qe.Kind)
		})
	}
}

/*
TestParseList_NoDateSearch ignores date parameters on resources without a date family.
*/
func TestParseList_NoDateSearch(t *testing.T) {
	q, err := resource.ParseList(url.Values{"releasedIn": {"nineteen"}}, resource.Artist)
	require.NoError(t, err)
	assert.Nil(t, q.Date)
}

/*
TestParseOne resolves identifiers and uses the full allow-list.
*/
func TestParseOne(t *testing.T) {
	q, err := resource.ParseOne("Daft Punk+Discovery", url.Values{"with": {"releases"}}, resource.Album)
	require.NoError(t, err)

	composite, ok := q.Identifier.(identifier.Composite)
	require.True(t, ok)
	assert.Equal(t, slug.Slug("daft-punk-discovery"), composite.Slug())
	assert.True(t, q.Include.Has("releases"))

	q, err = resource.ParseOne("42", nil, resource.Artist)
	require.NoError(t, err)
	assert.Equal(t, identifier.Numeric{ID: 42}, q.Identifier)
	assert.Len(t, q.Include, 3)

	_, err = resource.ParseOne("a+b+c", nil, resource.Song)
	require.Error(t, err)
	var qe *queryerr.Error
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, queryerr.InvalidIdentifierFormat, qe.Kind)
}

var albumColumns = resource.Columns{
	ID:   "a.id",
	Slug: "a.slug",
	Name: "a.name",
	Date: "a.release_date",
	Sort: map[sorting.Key]string{"id": "a.id", "name": "a.sort_slug", "releaseDate": "a.release_date"},
}

/*
TestFilter renders conditions and binds values in placeholder order.
*/
func TestFilter(t *testing.T) {
	name := search.StartsWith("100%")
	date := search.InYear(2001)
	q := resource.Query{Name: &name, Date: &date}

	filter := resource.NewFilter(albumColumns).Query(q)
	sql := filter.Clause() + filter.OrderBy(sorting.Parameter{Key: "name", Order: sorting.Desc}) +
		filter.Page(pagination.Window{Skip: 5, Take: 10})

	assert.Equal(t,
		` WHERE a.name ILIKE $1 ESCAPE '\' AND a.release_date >= $2 AND a.release_date < $3`+
			` ORDER BY a.sort_slug DESC, a.id ASC LIMIT $4 OFFSET $5`,
		sql)

	args := filter.Args()
	require.Len(t, args, 5)
	assert.Equal(t, `100\%%`, args[0])
	assert.Equal(t, time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC), args[1])
	assert.Equal(t, time.Date(2002, time.January, 1, 0, 0, 0, 0, time.UTC), args[2])
	assert.Equal(t, int64(10), args[3])
	assert.Equal(t, int64(5), args[4])
}

/*
TestFilter_Identifier matches ids and slugs on their own columns.
*/
func TestFilter_Identifier(t *testing.T) {
	filter := resource.NewFilter(albumColumns).Identifier(identifier.Numeric{ID: 7})
	assert.Equal(t, " WHERE a.id = $1", filter.Clause())
	assert.Equal(t, []any{int64(7)}, filter.Args())

	filter = resource.NewFilter(albumColumns).Identifier(identifier.Resolve("Air+Moon Safari"))
	assert.Equal(t, " WHERE a.slug = $1", filter.Clause())
	assert.Equal(t, []any{"air-moon-safari"}, filter.Args())
}

/*
TestFilter_Empty renders nothing without conditions and sorts unknown keys by id.
*/
func TestFilter_Empty(t *testing.T) {
	filter := resource.NewFilter(albumColumns)
	assert.Equal(t, "", filter.Clause())
	assert.Equal(t, " ORDER BY a.id ASC", filter.OrderBy(sorting.Parameter{Key: "addDate", Order: sorting.Asc}))
}
