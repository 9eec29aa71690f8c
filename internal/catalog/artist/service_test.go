// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/internal/catalog/artist"
	"github.com/taibuivan/cadenza/internal/catalog/resource"
	"github.com/taibuivan/cadenza/internal/platform/dberr"
	"github.com/taibuivan/cadenza/pkg/identifier"
	"github.com/taibuivan/cadenza/pkg/relation"
	"github.com/taibuivan/cadenza/pkg/slug"
)

/*
TestService_RenameArtist_RescopesChildren moves album and song slugs under the new artist name.
*/
func TestService_RenameArtist_RescopesChildren(t *testing.T) {
	blur := catalog.NameOf("Blur")
	parklife := catalog.NameOf("Parklife", "Blur")
	song2 := catalog.NameOf("Song 2", "Blur")
	homogenic := catalog.NameOf("Homogenic", "Björk")

	repo := &memoryRepository{
		artists: []*artist.Artist{
			{ID: 1, Name: "Blur", Slug: blur.Slug, SortName: blur.SortName, SortSlug: blur.SortSlug},
			{ID: 2, Name: "Björk", Slug: "bjork", SortName: "Björk", SortSlug: "bjork"},
		},
		children: []*scopedChild{
			{ArtistID: 1, Name: "Parklife", Slug: parklife.Slug},
			{ArtistID: 1, Name: "Song 2", Slug: song2.Slug},
			{ArtistID: 2, Name: "Homogenic", Slug: homogenic.Slug},
		},
	}
	service := artist.NewService(repo, &recordingPublisher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	q := resource.Query{Identifier: identifier.Resolve("blur"), Include: relation.None(resource.Artist.Includes)}
	renamed, err := service.RenameArtist(context.Background(), q, artist.RenameInput{Name: "Blur UK"})
	require.NoError(t, err)
	assert.Equal(t, slug.Slug("blur-uk"), renamed.Slug)

	assert.Equal(t, slug.Slug("blur-uk-parklife"), repo.children[0].Slug)
	assert.Equal(t, slug.Slug("blur-uk-song-2"), repo.children[1].Slug)
	assert.Equal(t, repo.children[0].Slug, identifier.Composite{Parts: []slug.Slug{"blur-uk", "parklife"}}.Slug())
	assert.Equal(t, slug.Slug("bjork-homogenic"), repo.children[2].Slug)
}

/*
TestService_RenameArtist_NotFound reports a missing artist without touching any slug.
*/
func TestService_RenameArtist_NotFound(t *testing.T) {
	repo := &memoryRepository{children: []*scopedChild{{ArtistID: 1, Name: "Parklife", Slug: "blur-parklife"}}}
	service := artist.NewService(repo, &recordingPublisher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	q := resource.Query{Identifier: identifier.Resolve("blur"), Include: relation.None(resource.Artist.Includes)}
	_, err := service.RenameArtist(context.Background(), q, artist.RenameInput{Name: "Blur UK"})
	assert.ErrorIs(t, err, dberr.ErrNotFound)
	assert.Equal(t, slug.Slug("blur-parklife"), repo.children[0].Slug)
}
