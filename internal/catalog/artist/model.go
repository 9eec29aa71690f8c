// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"time"

	"github.com/taibuivan/cadenza/internal/catalog"
	"github.com/taibuivan/cadenza/pkg/slug"
)

// Artist is a performer credited on albums and songs.
//
// Relations are nil unless requested with the 'with' parameter.
type Artist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      slug.Slug `json:"slug"`
	SortName  string    `json:"sortName"`
	SortSlug  slug.Slug `json:"sortSlug"`
	CreatedAt time.Time `json:"addDate"`

	IllustrationURL *string `json:"-"`

	Illustration *catalog.Illustration `json:"illustration,omitempty"`
	Albums       *[]catalog.Ref        `json:"albums,omitempty"`
	Songs        *[]catalog.Ref        `json:"songs,omitempty"`
}

// CreateInput is the ingestion payload of a new artist.
type CreateInput struct {
	Name            string  `json:"name"`
	IllustrationURL *string `json:"illustrationUrl"`
}

// RenameInput is the payload of a rename.
type RenameInput struct {
	Name string `json:"name"`
}
