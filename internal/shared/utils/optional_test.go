package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	type body struct {
		AssignedTo Optional[uint] `json:"assigned_to"`
	}

	var absent body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.AssignedTo.Set)

	var null body
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to": null}`), &null))
	assert.True(t, null.AssignedTo.Set)
	assert.True(t, null.AssignedTo.IsNull())

	var value body
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to": 7}`), &value))
	require.NotNil(t, value.AssignedTo.Value)
	assert.Equal(t, uint(7), *value.AssignedTo.Value)

	var bad body
	assert.Error(t, json.Unmarshal([]byte(`{"assigned_to": "x"}`), &bad))
}
