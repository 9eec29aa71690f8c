// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"time"

	"github.com/taibuivan/cadenza/pkg/slug"
)

// Genre is a free-form tag shared by albums and songs.
type Genre struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      slug.Slug `json:"slug"`
	CreatedAt time.Time `json:"addDate"`
}

// Input is the payload of both creation and rename.
type Input struct {
	Name string `json:"name"`
}
