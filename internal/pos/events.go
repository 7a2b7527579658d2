package pos

import (
	"encoding/json"
	"time"
)

const (
	EventOrderSettled = "OrderSettled"
	EventOrderVoided  = "OrderVoided"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // transaction code
	Payload       json.RawMessage `json:"payload"`
}

// SettledItem is one settled cart line. Remaining is the post-deduction stock,
// -1 for products whose inventory is not tracked.
type SettledItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	Remaining int    `json:"remaining"`
}

type OrderSettledPayload struct {
	OrderID         int64         `json:"order_id"`
	TransactionCode string        `json:"transaction_code"`
	TotalCents      int           `json:"total_cents"`
	Items           []SettledItem `json:"items"`
}

type OrderVoidedPayload struct {
	OrderID         int64  `json:"order_id"`
	TransactionCode string `json:"transaction_code,omitempty"`
}
