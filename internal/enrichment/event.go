// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package enrichment notifies the metadata matcher that new catalog entities exist.
//
// # Architecture
//
// Ingestion handlers build an [Event] with one of the constructors and hand it to a
// [Publisher]. Publishing never blocks and never fails from the caller's point of view:
// events are buffered, sent by a single goroutine over a [Transport], and dropped with a
// warning when the broker cannot keep up. Delivery order across priorities is the
// broker's job; the publisher only attaches the priority of each event.
package enrichment

import (
	"encoding/json"
	"log/slog"
)

// Type is the entity type announced in the message body.
type Type string

const (
	TypeArtist Type = "artist"
	TypeAlbum  Type = "album"
	TypeSong   Type = "song"
)

// Kind refines a type for prioritisation.
type Kind int

const (
	KindArtist Kind = iota + 1
	KindStudioAlbum
	KindAlbum
	KindOriginalSong
	KindNonOriginalSong
)

// priorities is the fixed priority table; the queue accepts values up to 5.
var priorities = map[Kind]uint8{
	KindArtist:          5,
	KindStudioAlbum:     5,
	KindOriginalSong:    4,
	KindAlbum:           2,
	KindNonOriginalSong: 1,
}

// Priority returns the broker priority of kind, or 0 for an unknown kind.
func (k Kind) Priority() uint8 {
	return priorities[k]
}

// Type returns the message type of kind.
func (k Kind) Type() Type {
	switch k {
	case KindArtist:
		return TypeArtist
	case KindStudioAlbum, KindAlbum:
		return TypeAlbum
	default:
		return TypeSong
	}
}

// Event announces a newly created catalog entity.
type Event struct {
	Kind Kind
	Name string
	ID   int64
}

// ArtistCreated announces a new artist.
func ArtistCreated(id int64, name string) Event {
	return Event{Kind: KindArtist, Name: name, ID: id}
}

// AlbumCreated announces a new album; studio albums are matched first.
func AlbumCreated(id int64, name string, studio bool) Event {
	kind := KindAlbum
	if studio {
		kind = KindStudioAlbum
	}
	return Event{Kind: kind, Name: name, ID: id}
}

// SongCreated announces a new song; original songs are matched before remixes,
// live versions and other derived material.
func SongCreated(id int64, name string, original bool) Event {
	kind := KindNonOriginalSong
	if original {
		kind = KindOriginalSong
	}
	return Event{Kind: kind, Name: name, ID: id}
}

// Priority returns the broker priority of the event.
func (e Event) Priority() uint8 { return e.Kind.Priority() }

// Message is the JSON body consumed by the metadata matcher.
type Message struct {
	Event string `json:"event"`
	Type  Type   `json:"type"`
	Name  string `json:"name"`
	ID    int64  `json:"id"`
}

// Body encodes the broker message of the event.
func (e Event) Body() ([]byte, error) {
	return json.Marshal(Message{Event: "created", Type: e.Kind.Type(), Name: e.Name, ID: e.ID})
}

// LogValue implements [slog.LogValuer].
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(e.Kind.Type())),
		slog.Int64("id", e.ID),
		slog.Int("priority", int(e.Priority())),
	)
}
