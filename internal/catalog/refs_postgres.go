// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/cadenza/pkg/slug"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by catalog stores.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LoadRefs runs query with ids as its only argument and groups the rows by owner.
//
// query must select (owner id, id, name, slug) and filter the owner with "= ANY($1)".
func LoadRefs(ctx context.Context, db Querier, query string, ids []int64) (map[int64][]Ref, error) {
	grouped := make(map[int64][]Ref, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	var (
		ownerID int64
		ref     Ref
		rawSlug string
	)
	_, err = pgx.ForEachRow(rows, []any{&ownerID, &ref.ID, &ref.Name, &rawSlug}, func() error {
		ref.Slug = slug.Slug(rawSlug)
		grouped[ownerID] = append(grouped[ownerID], ref)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return grouped, nil
}

// RefsOf returns the refs of id. The result is never nil so a requested relation
// renders as [] while an unrequested one (a nil pointer) is omitted.
func RefsOf(grouped map[int64][]Ref, id int64) *[]Ref {
	refs, ok := grouped[id]
	if !ok {
		refs = []Ref{}
	}
	return &refs
}
