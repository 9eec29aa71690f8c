// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import "time"

// DateMode is the anchor of a [DatePredicate].
type DateMode int

const (
	// ModeBefore selects instants strictly before the anchor.
	ModeBefore DateMode = iota + 1
	// ModeAfter selects instants from the anchor onwards.
	ModeAfter
	// ModeOnDay selects the calendar day of the anchor.
	ModeOnDay
	// ModeInYear selects the calendar year.
	ModeInYear
)

// DatePredicate selects a date range from exactly one anchor.
type DatePredicate struct {
	mode DateMode
	at   time.Time
	year int
}

// Before selects instants strictly before d.
func Before(d time.Time) DatePredicate { return DatePredicate{mode: ModeBefore, at: d} }

// After selects instants at or after d.
func After(d time.Time) DatePredicate { return DatePredicate{mode: ModeAfter, at: d} }

// OnDay selects the calendar day of d, in d's location.
func OnDay(d time.Time) DatePredicate { return DatePredicate{mode: ModeOnDay, at: d} }

// InYear selects the calendar year y, in UTC.
func InYear(y int) DatePredicate { return DatePredicate{mode: ModeInYear, year: y} }

// Mode returns the anchor kind.
func (p DatePredicate) Mode() DateMode { return p.mode }

// DateRange is the half-open interval [GTE, LT). A nil bound is open.
type DateRange struct {
	GTE *time.Time
	LT  *time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.GTE != nil && t.Before(*r.GTE) {
		return false
	}
	if r.LT != nil && !t.Before(*r.LT) {
		return false
	}
	return true
}

// Range returns the half-open interval selected by p.
func (p DatePredicate) Range() DateRange {
	switch p.mode {
	case ModeBefore:
		lt := p.at
		return DateRange{LT: &lt}

	case ModeAfter:
		gte := p.at
		return DateRange{GTE: &gte}

	case ModeOnDay:
		gte := time.Date(p.at.Year(), p.at.Month(), p.at.Day(), 0, 0, 0, 0, p.at.Location())
		lt := gte.Add(24 * time.Hour)
		return DateRange{GTE: &gte, LT: &lt}

	case ModeInYear:
		// Month 13 normalizes to January of the following year.
		gte := time.Date(p.year, time.January, 1, 0, 0, 0, 0, time.UTC)
		lt := time.Date(p.year, 13, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{GTE: &gte, LT: &lt}

	default:
		return DateRange{}
	}
}
