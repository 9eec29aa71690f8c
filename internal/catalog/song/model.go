// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"time"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/pkg/slug"
)

// Type classifies a song version.
type Type string

const (
	TypeOriginal     Type = "Original"
	TypeRemix        Type = "Remix"
	TypeLive         Type = "Live"
	TypeAcoustic     Type = "Acoustic"
	TypeInstrumental Type = "Instrumental"
	TypeEdit         Type = "Edit"
	TypeClean        Type = "Clean"
	TypeDemo         Type = "Demo"
	TypeAcappella    Type = "Acappella"
	TypeMedley       Type = "Medley"
	TypeNonMusic     Type = "NonMusic"
)

// Types lists the accepted song types.
var Types = []string{
	string(TypeOriginal), string(TypeRemix), string(TypeLive), string(TypeAcoustic),
	string(TypeInstrumental), string(TypeEdit), string(TypeClean), string(TypeDemo),
	string(TypeAcappella), string(TypeMedley), string(TypeNonMusic),
}

// MaxLyricsLength bounds the lyrics text of a song.
const MaxLyricsLength = 20000

// Song is a composition of an artist, independent of its recordings.
type Song struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artistId"`
	Name      string    `json:"name"`
	Slug      slug.Slug `json:"slug"`
	SortName  string    `json:"sortName"`
	SortSlug  slug.Slug `json:"sortSlug"`
	Type      Type      `json:"type"`
	PlayCount int64     `json:"playCount"`
	CreatedAt time.Time `json:"addDate"`

	LyricsText *string     `json:"-"`
	ArtistRef  catalog.Ref `json:"-"`

	Artist *catalog.Ref   `json:"artist,omitempty"`
	Genres *[]catalog.Ref `json:"genres,omitempty"`
	Lyrics *Lyrics        `json:"lyrics,omitempty"`
}

// Lyrics is the text of a song. A requested but unknown text renders as null content.
type Lyrics struct {
	Content *string `json:"content"`
}

// CreateInput is the ingestion payload of a new song.
type CreateInput struct {
	Name     string  `json:"name"`
	ArtistID int64   `json:"artistId"`
	Type     string  `json:"type"`
	Lyrics   *string `json:"lyrics"`
	GenreIDs []int64 `json:"genreIds"`
}

// RenameInput is the payload of a rename.
type RenameInput struct {
	Name string `json:"name"`
}
