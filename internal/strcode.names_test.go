package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurname(t *testing.T) {
	assert.Equal(t, "Adams", Surname(0, false))
	assert.Equal(t, "Grumpy", Surname(0, true))
	assert.Equal(t, "Watkins", Surname(0xFF<<16, false))
	assert.Equal(t, "Nutkins", Surname(0xFF<<16, true))
}

func TestPresidentName(t *testing.T) {
	t.Run("two initials", func(t *testing.T) {
		var b strings.Builder
		PresidentName(&b, 0, false)
		assert.Equal(t, "A. A. Adams", b.String())
	})

	t.Run("second initial omitted", func(t *testing.T) {
		var b strings.Builder
		PresidentName(&b, 0xFF<<8, false)
		assert.Equal(t, "A. Adams", b.String())
	})
}

func TestAndCoName(t *testing.T) {
	var b strings.Builder
	AndCoName(&b, 0, false)
	assert.Equal(t, "Adams & Co.", b.String())
}

func TestSillyCompanyName(t *testing.T) {
	assert.Equal(t, "Bloggs Brothers", SillyCompanyName(0))
	assert.Equal(t, "Getout & Pushit Ltd.", SillyCompanyName(12))
	assert.Equal(t, "Getout & Pushit Ltd.", SillyCompanyName(1000))
}

func TestSyllableTownNames(t *testing.T) {
	gen := SyllableTownNames{}
	a, err := gen.TownName(0, 1234)
	require.NoError(t, err)
	b, err := gen.TownName(0, 1234)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)

	first, err := gen.TownName(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Ashbridge", first)
}

func TestEntityKind_String(t *testing.T) {
	assert.Equal(t, "station", EntityStation.String())
	assert.Equal(t, "waypoint", EntityWaypoint.String())
	assert.Equal(t, "entity(200)", EntityKind(200).String())
}
