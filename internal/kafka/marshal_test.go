package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		OrderID int64 `json:"order_id"`
	}

	p, err := UnwrapPayload[payload](json.RawMessage(`{"order_id":42}`))
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.OrderID)

	_, err = UnwrapPayload[payload](json.RawMessage(`not json`))
	assert.ErrorContains(t, err, "decode payload")
}
