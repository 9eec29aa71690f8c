// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sorting parses the sort/order query parameters of list endpoints.
//
// Parsing is permissive: an unsupported sort key falls back to the first declared key
// and an unsupported order falls back to ascending. It never fails.
package sorting

import (
	"net/url"
	"strings"

	"github.com/taibuivan/cadenza/pkg/slice"
)

// Order is the direction of a sort.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Query parameter names.
const (
	SortParam  = "sort"
	OrderParam = "order"
)

// Key names a sortable attribute of a resource ("name", "addDate", ...).
type Key string

// Keys is the ordered list of supported keys; the first one is the default.
type Keys []Key

// Parameter is a validated sort key and direction.
type Parameter struct {
	Key   Key
	Order Order
}

// Parse resolves raw sort/order values against keys.
//
// keys must not be empty.
func Parse(rawKey, rawOrder string, keys Keys) Parameter {
	parameter := Parameter{Key: keys[0], Order: Asc}

	if slice.Contains(keys, Key(rawKey)) {
		parameter.Key = Key(rawKey)
	}

	if Order(strings.ToLower(rawOrder)) == Desc {
		parameter.Order = Desc
	}

	return parameter
}

// FromValues reads the sort/order parameters from query values.
func FromValues(values url.Values, keys Keys) Parameter {
	return Parse(values.Get(SortParam), values.Get(OrderParam), keys)
}

// SQL returns the ORDER BY direction keyword.
func (o Order) SQL() string {
	if o == Desc {
		return "DESC"
	}
	return "ASC"
}
