package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionCodePrefix(t *testing.T) {
	day := time.Date(2023, 10, 27, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "TRX-20231027-", transactionCodePrefix(day))
}

func TestFirstCodeOfDay(t *testing.T) {
	day := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)
	code := formatTransactionCode(transactionCodePrefix(day), 1)
	assert.Equal(t, "TRX-20231027-0001", code)
}

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name string
		last string
		want int
	}{
		{name: "increments existing", last: "TRX-20231027-0042", want: 43},
		{name: "rolls into five digits", last: "TRX-20231027-9999", want: 10000},
		{name: "malformed suffix restarts", last: "TRX-20231027-00AB", want: 1},
		{name: "no separator restarts", last: "garbage", want: 1},
		{name: "empty restarts", last: "", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextSequence(tt.last))
		})
	}
}

func TestFormatTransactionCodePadding(t *testing.T) {
	assert.Equal(t, "TRX-20231027-0007", formatTransactionCode("TRX-20231027-", 7))
	assert.Equal(t, "TRX-20231027-0043", formatTransactionCode("TRX-20231027-", 43))
	assert.Equal(t, "TRX-20231027-12345", formatTransactionCode("TRX-20231027-", 12345))
}
