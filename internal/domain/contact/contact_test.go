package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact_TrimsAndValidates(t *testing.T) {
	c, err := NewContact(Fields{FullName: "  Jane Doe ", DiscordID: "123456789012345678"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", c.FullName())

	_, err = NewContact(Fields{Phone: "0123456789012345678901234567890123456789012345678901"})
	assert.Error(t, err)
}

func TestContact_Apply(t *testing.T) {
	c, err := NewContact(Fields{FullName: "Jane Doe", Email: "jane@example.org"})
	require.NoError(t, err)

	phone := "555-0100"
	require.NoError(t, c.Apply(Patch{Phone: &phone}))

	assert.Equal(t, "555-0100", c.Phone())
	assert.Equal(t, "jane@example.org", c.Email())
}

func TestNewTag(t *testing.T) {
	tag, err := NewTag("Dev-Software", "")
	require.NoError(t, err)
	assert.Equal(t, "#9e9e9e", tag.Color())

	_, err = NewTag("", "#ffffff")
	assert.Error(t, err)

	_, err = NewTag("x", "red")
	assert.Error(t, err)
}

func TestTag_UpdateKeepsOldValuesOnError(t *testing.T) {
	tag, err := NewTag("Organizer", "#112233")
	require.NoError(t, err)

	bad := "blue"
	assert.Error(t, tag.Update(nil, &bad))
	assert.Equal(t, "#112233", tag.Color())
}

func TestUniqueTagNames(t *testing.T) {
	got := UniqueTagNames([]string{"Dev-Software", " dev-software", "", "Outreach", "OUTREACH "})

	assert.Equal(t, []string{"Dev-Software", "Outreach"}, got)
}

func TestNewActivity(t *testing.T) {
	a, err := NewActivity(3, ActivityMisc, nil)
	require.NoError(t, err)
	assert.NotNil(t, a.Data)

	_, err = NewActivityType("gossip")
	assert.Error(t, err)
}

func TestNewContact_CountsCharactersNotBytes(t *testing.T) {
	c, err := NewContact(Fields{FullName: strings.Repeat("Ж", 150), Phone: strings.Repeat("٣", 50)})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("Ж", 150), c.FullName())

	_, err = NewContact(Fields{FullName: strings.Repeat("Ж", 201)})
	assert.Error(t, err)

	_, err = NewTag(strings.Repeat("é", 64), "")
	assert.NoError(t, err)

	_, err = NewTag(strings.Repeat("é", 65), "")
	assert.Error(t, err)
}
