package usecases

import (
	"strconv"
	"strings"

	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// tagSelector reads a tag filter value: all digits selects by ID, anything
// else by name.
func tagSelector(raw string) (*uint, *string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
		v := uint(id)
		return &v, nil
	}
	return nil, &raw
}

func pageNumber(p query.PageFilter) int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
