// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resource

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/taibuivan/cadenza/pkg/identifier"
	"github.com/taibuivan/cadenza/pkg/pagination"
	"github.com/taibuivan/cadenza/pkg/search"
	"github.com/taibuivan/cadenza/pkg/sorting"
)

// Columns maps the queryable attributes of a resource to SQL expressions.
type Columns struct {
	ID   string
	Slug string
	Name string

	// Date is the column of the date search family; empty when unsupported.
	Date string

	// Sort maps sort keys to ORDER BY expressions. Unmapped keys sort by ID.
	Sort map[sorting.Key]string
}

// Filter accumulates parameterised conditions for a pgx query.
//
// Placeholders are numbered in the order values are bound, so a Filter must be rendered
// into exactly one statement.
type Filter struct {
	columns    Columns
	conditions []string
	args       []any
}

// NewFilter returns an empty filter over columns.
func NewFilter(columns Columns) *Filter {
	return &Filter{columns: columns}
}

// Bind appends value to the arguments and returns its placeholder.
func (f *Filter) Bind(value any) string {
	f.args = append(f.args, value)
	return "$" + strconv.Itoa(len(f.args))
}

// Where adds a raw condition. Use [Filter.Bind] for its values.
func (f *Filter) Where(condition string) *Filter {
	f.conditions = append(f.conditions, condition)
	return f
}

// Identifier restricts the filter to the resource addressed by id.
func (f *Filter) Identifier(id identifier.Identifier) *Filter {
	switch id := id.(type) {
	case identifier.Numeric:
		return f.Where(f.columns.ID + " = " + f.Bind(id.ID))
	case identifier.SlugID:
		return f.Where(f.columns.Slug + " = " + f.Bind(id.Slug.String()))
	case identifier.Composite:
		return f.Where(f.columns.Slug + " = " + f.Bind(id.Slug().String()))
	default:
		return f
	}
}

// Name adds the name search predicate, if any.
func (f *Filter) Name(predicate *search.StringPredicate) *Filter {
	if predicate == nil {
		return f
	}
	return f.Where(fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, f.columns.Name, f.Bind(predicate.Pattern())))
}

// Date adds the date search predicate, if any.
func (f *Filter) Date(predicate *search.DatePredicate) *Filter {
	if predicate == nil || f.columns.Date == "" {
		return f
	}

	dateRange := predicate.Range()
	if dateRange.GTE != nil {
		f.Where(f.columns.Date + " >= " + f.Bind(*dateRange.GTE))
	}
	if dateRange.LT != nil {
		f.Where(f.columns.Date + " < " + f.Bind(*dateRange.LT))
	}
	return f
}

// Query adds every search predicate of q.
func (f *Filter) Query(q Query) *Filter {
	if q.Identifier != nil {
		f.Identifier(q.Identifier)
	}
	return f.Name(q.Name).Date(q.Date)
}

// Clause renders the WHERE clause, or "" when there is no condition.
func (f *Filter) Clause() string {
	if len(f.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conditions, " AND ")
}

// OrderBy renders the ORDER BY clause for parameter. The id column breaks ties.
func (f *Filter) OrderBy(parameter sorting.Parameter) string {
	column, ok := f.columns.Sort[parameter.Key]
	if !ok || column == f.columns.ID {
		return fmt.Sprintf(" ORDER BY %s %s", f.columns.ID, parameter.Order.SQL())
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC", column, parameter.Order.SQL(), f.columns.ID)
}

// Page renders the LIMIT/OFFSET clause and binds its values.
func (f *Filter) Page(window pagination.Window) string {
	return " LIMIT " + f.Bind(toBigint(window.Take)) + " OFFSET " + f.Bind(toBigint(window.Skip))
}

// toBigint saturates n at the largest bigint.
func toBigint(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

// Args returns the bound values in placeholder order.
func (f *Filter) Args() []any {
	return f.args
}
