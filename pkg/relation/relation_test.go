// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cadenza/pkg/pointer"
	"github.com/taibuivan/cadenza/pkg/queryerr"
	"github.com/taibuivan/cadenza/pkg/relation"
)

/*
TestParse_Valid checks that requested keys are set and the map stays total.
*/
func TestParse_Valid(t *testing.T) {
	allowed := relation.Keys{"artist", "illustration", "tracks"}

	include, err := relation.Parse(pointer.To("artist,illustration"), allowed)
	require.NoError(t, err)

	assert.Equal(t, relation.Include{
		"artist":       true,
		"illustration": true,
		"tracks":       false,
	}, include)
}

/*
TestParse_Absent checks that nil and empty input include nothing.
*/
func TestParse_Absent(t *testing.T) {
	allowed := relation.Keys{"a", "b"}
	want := relation.Include{"a": false, "b": false}

	include, err := relation.Parse(nil, allowed)
	require.NoError(t, err)
	assert.Equal(t, want, include)

	include, err = relation.Parse(pointer.To(""), allowed)
	require.NoError(t, err)
	assert.Equal(t, want, include)
}

/*
TestParse_UnknownKey checks the error enumerates the full allow-list in order.
*/
func TestParse_UnknownKey(t *testing.T) {
	allowed := relation.Keys{"artist", "illustration"}

	_, err := relation.Parse(pointer.To("bogus"), allowed)
	require.Error(t, err)

	var qe *queryerr.Error
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, queryerr.InvalidRelationIncludeKey, qe.Kind)
	assert.Equal(t, "bogus", qe.Value)
	assert.Equal(t, []string{"artist", "illustration"}, qe.Allowed)

	assert.Contains(t, err.Error(), "bogus")
	assert.Contains(t, err.Error(), "artist")
	assert.Contains(t, err.Error(), "illustration")
	assert.Less(t, strings.Index(err.Error(), "'artist'"), strings.Index(err.Error(), "'illustration'"))
}

/*
TestParse_UnknownKeyAfterValid fails on the first key outside the allow-list.
*/
func TestParse_UnknownKeyAfterValid(t *testing.T) {
	_, err := relation.Parse(pointer.To("artist,songs"), relation.Keys{"artist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "songs")
}

/*
TestParse_Format rejects malformed separators and characters before any key lookup.
*/
func TestParse_Format(t *testing.T) {
	allowed := relation.Keys{"artist", "genres"}

	for _, raw := range []string{
		"artist,",
		",artist",
		"artist,,genres",
		"artist, genres",
		"artist;genres",
		"artist genres",
		"art1st",
		"external_ids",
		"bogus,",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := relation.Parse(pointer.To(raw), allowed)
			require.Error(t, err)
			assert.True(t, errors.Is(err, &queryerr.Error{Kind: queryerr.InvalidRelationIncludeFormat}))
		})
	}
}

/*
TestParse_EmptyAllowList rejects every key when a resource has no relations.
*/
func TestParse_EmptyAllowList(t *testing.T) {
	_, err := relation.Parse(pointer.To("artist"), relation.Keys{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(none)")
}

/*
TestFilterAtomic drops plural keys unless they are explicitly kept.
*/
func TestFilterAtomic(t *testing.T) {
	keys := relation.Keys{"releases", "artist", "master", "genres", "illustration"}

	assert.Equal(t, relation.Keys{"artist", "master", "illustration"}, relation.FilterAtomic(keys))
	assert.Equal(t, relation.Keys{"artist", "master", "genres", "illustration"}, relation.FilterAtomic(keys, "genres"))
	assert.Equal(t, relation.Keys{}, relation.FilterAtomic(relation.Keys{}))
}
