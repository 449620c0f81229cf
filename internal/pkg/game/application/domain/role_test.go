package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("police")
	require.NoError(t, err)
	assert.Equal(t, RolePolice, r)

	r, err = ParseRole("thief")
	require.NoError(t, err)
	assert.Equal(t, RoleThief, r)

	_, err = ParseRole("citizen")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestAllCaptured(t *testing.T) {
	assignments := []Assignment{
		{Role: RolePolice, Captured: false},
		{Role: RoleThief, Captured: true},
		{Role: RoleThief, Captured: false},
	}
	assert.False(t, AllCaptured(assignments, RoleThief))

	assignments[2].Captured = true
	assert.True(t, AllCaptured(assignments, RoleThief))

	// Free police never block the thief win condition.
	assert.False(t, AllCaptured(assignments, RolePolice))
}

func TestAllCapturedEmptySetIsFalse(t *testing.T) {
	assert.False(t, AllCaptured(nil, RoleThief))
	assert.False(t, AllCaptured([]Assignment{{Role: RolePolice}}, RoleThief))
}

func TestCaptureNotice(t *testing.T) {
	name := "jun"
	assert.Equal(t, "jun was caught by the police.", CaptureNotice(&name, true))
	assert.Equal(t, "jun was released by the police.", CaptureNotice(&name, false))
	assert.Equal(t, "A participant was caught by the police.", CaptureNotice(nil, true))
}
