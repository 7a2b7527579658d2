package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPaid, StatusVoid))
	assert.False(t, CanTransition(StatusVoid, StatusVoid))
	assert.False(t, CanTransition(StatusVoid, StatusPaid))
	assert.False(t, CanTransition(StatusPaid, StatusPaid))
}
