package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	got := MapSlice([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestMapSlice_NilBecomesEmpty(t *testing.T) {
	got := MapSlice[int, string](nil, strconv.Itoa)
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestMapSliceWithError(t *testing.T) {
	got, err := MapSliceWithError([]string{"1", "2"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = MapSliceWithError([]string{"1", "x"}, func(s string) (int, error) {
		if s == "x" {
			return 0, errors.New("bad")
		}
		return strconv.Atoi(s)
	})
	assert.Error(t, err)
}
