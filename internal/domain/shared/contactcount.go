// Package shared provides reusable domain logic shared across aggregates.
package shared

import (
	"fmt"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// ContactCount is one row of a group-by-contact aggregation.
type ContactCount struct {
	ContactID uint
	FullName  string
	Count     int64
}

// CountBounds is an inclusive [Min, Max] range on an aggregated count.
// A nil Max is unbounded.
type CountBounds struct {
	Min int64
	Max *int64
}

func (b CountBounds) Validate() error {
	if b.Min < 0 {
		return fmt.Errorf("minimum count cannot be negative")
	}
	if b.Max != nil && *b.Max < b.Min {
		return fmt.Errorf("maximum count %d is below minimum %d", *b.Max, b.Min)
	}
	return nil
}

// Contains reports whether n lies within the bounds.
func (b CountBounds) Contains(n int64) bool {
	if n < b.Min {
		return false
	}
	return b.Max == nil || n <= *b.Max
}

// DateRange is an inclusive time window; nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) Validate() error {
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("max_date is before min_date")
	}
	return nil
}

// GroupByContactFilter is shared by the ticket and participation aggregations.
type GroupByContactFilter struct {
	query.PageFilter
	Bounds CountBounds
	Dates  DateRange
}

// NewGroupByContactFilter builds and validates a filter from optional
// request bounds.
func NewGroupByContactFilter(page query.PageFilter, minCount, maxCount *int, from, to *time.Time) (GroupByContactFilter, error) {
	f := GroupByContactFilter{
		PageFilter: page,
		Dates:      DateRange{From: from, To: to},
	}
	if minCount != nil {
		f.Bounds.Min = int64(*minCount)
	}
	if maxCount != nil {
		m := int64(*maxCount)
		f.Bounds.Max = &m
	}
	if err := f.Bounds.Validate(); err != nil {
		return GroupByContactFilter{}, err
	}
	if err := f.Dates.Validate(); err != nil {
		return GroupByContactFilter{}, err
	}
	return f, nil
}
