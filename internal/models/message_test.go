package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mentorhub/backend/internal/models"
)

func TestChatIDFor_OrderIndependent(t *testing.T) {
	cases := []struct{ a, b string }{
		{"u1", "u2"},
		{"u2", "u1"},
		{"aaa", "zzz"},
		{"2f1c", "2f1b"},
		{"same", "same"},
	}
	for _, tc := range cases {
		assert.Equal(t, models.ChatIDFor(tc.a, tc.b), models.ChatIDFor(tc.b, tc.a),
			"ChatIDFor(%q,%q) must not depend on argument order", tc.a, tc.b)
	}
}

func TestChatIDFor_DistinctPairsDistinctIDs(t *testing.T) {
	assert.NotEqual(t, models.ChatIDFor("u1", "u2"), models.ChatIDFor("u1", "u3"))
	assert.NotEqual(t, models.ChatIDFor("u1", "u2"), models.ChatIDFor("u2", "u3"))
}

func TestValidMessageType(t *testing.T) {
	assert.True(t, models.ValidMessageType(models.MessageTypeText))
	assert.True(t, models.ValidMessageType(models.MessageTypeImage))
	assert.True(t, models.ValidMessageType(models.MessageTypeFile))
	assert.False(t, models.ValidMessageType(""))
	assert.False(t, models.ValidMessageType("video"))
}
