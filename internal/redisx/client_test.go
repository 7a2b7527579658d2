package redisx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppliesTimeout(t *testing.T) {
	r := New("127.0.0.1:6379")
	defer r.Close()

	opts := r.Options()
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.WriteTimeout)
}
