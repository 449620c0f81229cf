package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateBody(t *testing.T) {
	assert.NoError(t, ValidateBody("hi"))
	assert.Error(t, ValidateBody(""))
	assert.Error(t, ValidateBody("   "))
	assert.NoError(t, ValidateBody(strings.Repeat("a", MaxBodyLen)))
	assert.Error(t, ValidateBody(strings.Repeat("a", MaxBodyLen+1)))
}

func TestValidateBodyCountsRunesNotBytes(t *testing.T) {
	// Multibyte text up to the rune limit is fine even though it exceeds
	// the limit in bytes.
	assert.NoError(t, ValidateBody(strings.Repeat("가", MaxBodyLen)))
}

func TestIsSystem(t *testing.T) {
	assert.True(t, ChatMessage{Body: "mina joined the room"}.IsSystem())
	assert.False(t, ChatMessage{Body: "see you at 7"}.IsSystem())
}

func TestJoinNotice(t *testing.T) {
	name := "mina"
	assert.Equal(t, "mina joined the room", JoinNotice(&name))

	empty := "  "
	assert.Equal(t, "A participant joined the room", JoinNotice(&empty))
	assert.Equal(t, "A participant joined the room", JoinNotice(nil))
}

func TestCreatedAtUTCReinterpretsWallClock(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	m := ChatMessage{CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, loc)}

	got := m.CreatedAtUTC()

	// The wall-clock reading is kept and relabeled as UTC, not converted.
	assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), got)
}
