// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package resource composes the query primitives of pkg/ into per-resource request parsing.
//
// # Architecture
//
// Every catalog resource is described once by a [Definition]: which relations it can
// eagerly load, which of them stay available on list endpoints, which keys it sorts by
// and whether it can be searched by date. Handlers call [ParseList] or [ParseOne] and
// hand the resulting [Query] to their store, which renders it with [Filter].
package resource

import (
	"github.com/taibuivan/cadenza/pkg/relation"
	"github.com/taibuivan/cadenza/pkg/search"
	"github.com/taibuivan/cadenza/pkg/sorting"
)

// IncludeParam is the query parameter listing the relations to eagerly load.
const IncludeParam = "with"

// NameFields are the query parameters of the name search family.
var NameFields = search.StringFields{
	Is:         "name",
	StartsWith: "nameStartsWith",
	EndsWith:   "nameEndsWith",
	Contains:   "q",
}

// ReleaseDateFields are the query parameters of the release date search family.
var ReleaseDateFields = search.DateFields{
	Before: "releasedBefore",
	After:  "releasedAfter",
	OnDay:  "releasedOn",
	InYear: "releasedIn",
}

// Definition describes how a catalog resource can be queried.
type Definition struct {
	Name string

	// Includes is the allow-list of single resource endpoints.
	Includes relation.Keys

	// Atomic is the allow-list of list endpoints.
	Atomic relation.Keys

	// SortKeys lists the sortable attributes; the first one is the default.
	SortKeys sorting.Keys

	// DateSearch enables the release date search family.
	DateSearch bool

	// IdentifierParts is the number of slugs in a composite identifier, or 0 when the
	// resource is only addressed by id or a single slug.
	IdentifierParts int
}

// define builds a definition whose atomic allow-list drops every collection key except kept.
func define(name string, includes relation.Keys, kept relation.Keys, sortKeys sorting.Keys) Definition {
	return Definition{
		Name:     name,
		Includes: includes,
		Atomic:   relation.FilterAtomic(includes, kept...),
		SortKeys: sortKeys,
	}
}

// # Catalog Definitions

var (
	Artist = define("artist",
		relation.Keys{"albums", "songs", "illustration"},
		nil,
		sorting.Keys{"id", "name", "albumCount", "songCount", "addDate"},
	)

	Album = withDates(withParts(define("album",
		relation.Keys{"releases", "artist", "master", "genres", "illustration"},
		relation.Keys{"genres"},
		sorting.Keys{"id", "name", "artistName", "releaseDate", "addDate"},
	), 2))

	Release = withDates(define("release",
		relation.Keys{"album", "tracks", "illustration", "discs", "label", "localIdentifiers"},
		relation.Keys{"discs", "localIdentifiers"},
		sorting.Keys{"id", "name", "releaseDate", "trackCount", "addDate"},
	))

	Song = withParts(define("song",
		relation.Keys{"versions", "artist", "genres", "lyrics", "externalIds"},
		relation.Keys{"lyrics", "externalIds"},
		sorting.Keys{"id", "name", "playCount", "artistName", "addDate"},
	), 2)

	Track = withDates(define("track",
		relation.Keys{"song", "release", "sourceFile", "video", "illustration"},
		nil,
		sorting.Keys{"id", "name", "releaseName", "duration", "bitrate", "trackIndex", "discIndex", "addDate", "releaseDate"},
	))

	Video = withDates(define("video",
		relation.Keys{"tracks", "artist", "song", "master", "illustration"},
		nil,
		sorting.Keys{"id", "name", "artistName", "addDate", "releaseDate"},
	))

	Genre = define("genre",
		relation.Keys{},
		nil,
		sorting.Keys{"id", "name", "songCount"},
	)

	Label = define("label",
		relation.Keys{},
		nil,
		sorting.Keys{"id", "name", "releaseCount"},
	)

	Playlist = define("playlist",
		relation.Keys{"entries", "illustration"},
		nil,
		sorting.Keys{"id", "name", "entryCount", "creationDate"},
	)
)

func withDates(definition Definition) Definition {
	definition.DateSearch = true
	return definition
}

func withParts(definition Definition, parts int) Definition {
	definition.IdentifierParts = parts
	return definition
}
