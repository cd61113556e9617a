package mcpchat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("tool"), RoleTool)
}

func TestGenerateMessageID(t *testing.T) {
	t.Run("has msg prefix", func(t *testing.T) {
		id := GenerateMessageID()
		assert.True(t, strings.HasPrefix(id, "msg-"))
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := GenerateMessageID()
			assert.False(t, seen[id], "duplicate ID: %s", id)
			seen[id] = true
		}
	})
}
