package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/shared/query"
)

func TestCountBounds_Contains(t *testing.T) {
	max := int64(5)
	b := CountBounds{Min: 2, Max: &max}

	assert.False(t, b.Contains(1))
	assert.True(t, b.Contains(2))
	assert.True(t, b.Contains(5))
	assert.False(t, b.Contains(6))

	open := CountBounds{}
	assert.True(t, open.Contains(0))
	assert.True(t, open.Contains(1000))
}

func TestCountBounds_Validate(t *testing.T) {
	max := int64(1)
	assert.Error(t, CountBounds{Min: 2, Max: &max}.Validate())
	assert.Error(t, CountBounds{Min: -1}.Validate())
	assert.NoError(t, CountBounds{Min: 1, Max: &max}.Validate())
}

func TestDateRange_Validate(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	assert.Error(t, DateRange{From: &from, To: &to}.Validate())
	assert.NoError(t, DateRange{From: &from}.Validate())
}

func TestNewGroupByContactFilter(t *testing.T) {
	lo, hi := 2, 4
	f, err := NewGroupByContactFilter(query.PageFilter{Page: 2, PageSize: 10}, &lo, &hi, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.Bounds.Min)
	require.NotNil(t, f.Bounds.Max)
	assert.Equal(t, int64(4), *f.Bounds.Max)
	assert.Equal(t, 10, f.Limit())

	f, err = NewGroupByContactFilter(query.PageFilter{}, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, f.Bounds.Contains(0))

	_, err = NewGroupByContactFilter(query.PageFilter{}, &hi, &lo, nil, nil)
	assert.Error(t, err)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err = NewGroupByContactFilter(query.PageFilter{}, nil, nil, &from, &to)
	assert.Error(t, err)
}
