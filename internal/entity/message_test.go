package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64List_Contains(t *testing.T) {
	l := Int64List{1, 5, 9}

	assert.True(t, l.Contains(5))
	assert.False(t, l.Contains(2))
	assert.False(t, Int64List(nil).Contains(1))
}

func TestMessage_VisibleTo(t *testing.T) {
	msg := &Message{HideFrom: Int64List{3}}

	assert.False(t, msg.VisibleTo(3))
	assert.True(t, msg.VisibleTo(4))

	// Soft deletion does not affect visibility; clients render tombstones.
	msg.IsDeleted = true
	assert.True(t, msg.VisibleTo(4))
}
