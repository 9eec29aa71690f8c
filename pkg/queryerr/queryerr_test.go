// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package queryerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cadenza/pkg/queryerr"
)

/*
TestRelationIncludeKey names the key and every allowed key in order.
*/
func TestRelationIncludeKey(t *testing.T) {
	err := queryerr.RelationIncludeKey("bogus", []string{"artist", "genres"})
	assert.Equal(t, "Invalid relation include key: 'bogus'. Expected one of: 'artist', 'genres'", err.Error())

	err = queryerr.RelationIncludeKey("songs", nil)
	assert.Contains(t, err.Error(), "(none)")
}

/*
TestIs matches by kind through wrapping.
*/
func TestIs(t *testing.T) {
	err := fmt.Errorf("list: %w", queryerr.PaginationParameter("skip", "-1"))

	assert.True(t, errors.Is(err, &queryerr.Error{Kind: queryerr.InvalidPaginationParameter}))
	assert.False(t, errors.Is(err, &queryerr.Error{Kind: queryerr.InvalidSearchParameter}))

	qe := queryerr.As(err)
	require.NotNil(t, qe)
	assert.Equal(t, queryerr.InvalidPaginationParameter, qe.Kind)

	assert.Nil(t, queryerr.As(errors.New("other")))
}
