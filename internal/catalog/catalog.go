// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog holds the value types shared by the catalog resource slices.
//
// Relations between slices are rendered with these lightweight references so that
// the artist, album, song and genre packages never import each other.
package catalog

import (
	"slices"

	"github.com/taibuivan/cadenza/pkg/pointer"
	"github.com/taibuivan/cadenza/pkg/slug"
	"github.com/taibuivan/cadenza/pkg/sortname"
)

// Ref is the minimal representation of a related catalog entity.
type Ref struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Slug slug.Slug `json:"slug"`
}

// Naming holds the names derived from an entity name.
type Naming struct {
	Slug     slug.Slug
	SortName string
	SortSlug slug.Slug
}

// NameOf derives the slug and sort names of name.
//
// parents are the names of the ancestors the slug is scoped by, outermost first: an
// album slug embeds its artist name so that "artist+album" identifiers resolve to it.
func NameOf(name string, parents ...string) Naming {
	sortName := sortname.Normalize(name)
	return Naming{
		Slug:     slug.New(append(slices.Clone(parents), name)...),
		SortName: sortName,
		SortSlug: slug.From(sortName),
	}
}

// Illustration is the artwork of an entity. Image files are served elsewhere.
type Illustration struct {
	URL string `json:"url"`
}

// IllustrationOf returns nil when url is nil.
func IllustrationOf(url *string) *Illustration {
	if pointer.Val(url) == "" {
		return nil
	}
	return &Illustration{URL: *url}
}

// Common JSON field names of catalog payloads.
const (
	FieldName        = "name"
	FieldType        = "type"
	FieldArtistID    = "artistId"
	FieldReleaseDate = "releaseDate"
	FieldGenreIDs    = "genreIds"
	FieldLyrics      = "lyrics"
)

// MaxNameLength bounds catalog names.
const MaxNameLength = 300

// ValidIDs reports whether every id is a positive primary key.
func ValidIDs(ids []int64) bool {
	return !slices.ContainsFunc(ids, func(id int64) bool { return id <= 0 })
}
