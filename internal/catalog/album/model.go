// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package album

import (
	"time"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/pkg/slug"
)

// Type classifies how an album was produced.
type Type string

const (
	TypeStudioRecording Type = "StudioRecording"
	TypeLiveRecording   Type = "LiveRecording"
	TypeCompilation     Type = "Compilation"
	TypeSoundtrack      Type = "Soundtrack"
	TypeRemixAlbum      Type = "RemixAlbum"
	TypeSingle          Type = "Single"
	TypeVideoAlbum      Type = "VideoAlbum"
)

// Types lists the accepted album types.
var Types = []string{
	string(TypeStudioRecording), string(TypeLiveRecording), string(TypeCompilation),
	string(TypeSoundtrack), string(TypeRemixAlbum), string(TypeSingle), string(TypeVideoAlbum),
}

// Album groups the releases of the same record.
//
// Compilations have no artist; their slug is derived from the album name alone.
type Album struct {
	ID          int64      `json:"id"`
	ArtistID    *int64     `json:"artistId"`
	Name        string     `json:"name"`
	Slug        slug.Slug  `json:"slug"`
	SortName    string     `json:"sortName"`
	SortSlug    slug.Slug  `json:"sortSlug"`
	Type        Type       `json:"type"`
	ReleaseDate *time.Time `json:"releaseDate"`
	CreatedAt   time.Time  `json:"addDate"`

	IllustrationURL *string      `json:"-"`
	ArtistRef       *catalog.Ref `json:"-"`

	Artist       *catalog.Ref          `json:"artist,omitempty"`
	Genres       *[]catalog.Ref        `json:"genres,omitempty"`
	Illustration *catalog.Illustration `json:"illustration,omitempty"`
}

// CreateInput is the ingestion payload of a new album.
type CreateInput struct {
	Name            string  `json:"name"`
	ArtistID        *int64  `json:"artistId"`
	Type            string  `json:"type"`
	ReleaseDate     string  `json:"releaseDate"`
	IllustrationURL *string `json:"illustrationUrl"`
	GenreIDs        []int64 `json:"genreIds"`
}

// RenameInput is the payload of a rename.
type RenameInput struct {
	Name string `json:"name"`
}
