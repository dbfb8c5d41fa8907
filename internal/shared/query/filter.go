package query

import (
	"fmt"
	"strings"
)

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// OrderTerm is one validated ORDER BY column. Column is always taken from a
// whitelist, never from request input.
type OrderTerm struct {
	Column string
	Desc   bool
}

func (t OrderTerm) String() string {
	if t.Desc {
		return t.Column + " DESC"
	}
	return t.Column + " ASC"
}

// SortFilter holds the ordering requested by a list call.
type SortFilter struct {
	Terms []OrderTerm
}

// OrderClause joins the terms into a SQL ORDER BY expression.
func (f SortFilter) OrderClause() string {
	parts := make([]string, 0, len(f.Terms))
	for _, t := range f.Terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}

func (f SortFilter) IsEmpty() bool {
	return len(f.Terms) == 0
}

type BaseFilter struct {
	PageFilter
	SortFilter
}

// ParseOrdering turns an `ordering` query value such as "-created_at,priority"
// into order terms. allowed maps public field names to table columns; any
// other name is rejected.
func ParseOrdering(raw string, allowed map[string]string) (SortFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortFilter{}, nil
	}

	var terms []OrderTerm
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		column, ok := allowed[name]
		if !ok {
			return SortFilter{}, fmt.Errorf("unsupported ordering field %q", name)
		}
		terms = append(terms, OrderTerm{Column: column, Desc: desc})
	}
	return SortFilter{Terms: terms}, nil
}

// OrDefault returns f, or the given default terms when f is empty.
func (f SortFilter) OrDefault(def ...OrderTerm) SortFilter {
	if f.IsEmpty() {
		return SortFilter{Terms: def}
	}
	return f
}
