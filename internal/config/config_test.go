package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single broker", in: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "multiple with spaces", in: "a:9092, b:9092 ,c:9092", want: []string{"a:9092", "b:9092", "c:9092"}},
		{name: "drops empties", in: "a:9092,,", want: []string{"a:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCSV(tt.in))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 4, cfg.AlertWorkers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("LOW_STOCK_THRESHOLD", "2")
	t.Setenv("ALERT_WORKERS", "not-a-number")
	cfg := Load()
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 2, cfg.LowStockThreshold)
	assert.Equal(t, 4, cfg.AlertWorkers) // bad int falls back to default
}
