package pos

import "time"

type CartItem struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type Receipt struct {
	OrderID         int64  `json:"order_id"`
	TransactionCode string `json:"transaction_code"`
	TotalCents      int    `json:"total_cents"`
}

type Order struct {
	ID              int64     `json:"id"`
	TransactionCode string    `json:"transaction_code"`
	TotalCents      int       `json:"total_cents"`
	TaxCents        int       `json:"tax_cents"`
	PaymentMethod   string    `json:"payment_method"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderItem is a snapshot of the product at sale time. ProductID is the
// stable reference used for stock restoration on void; nil means the
// original product row is gone.
type OrderItem struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"order_id"`
	ProductID     *int64 `json:"product_id"`
	NameSnapshot  string `json:"name_snapshot"`
	PriceCents    int    `json:"price_cents"`
	Qty           int    `json:"qty"`
	SubtotalCents int    `json:"subtotal_cents"`
}

type Totals struct {
	DailyCents   int `json:"daily_cents"`
	MonthlyCents int `json:"monthly_cents"`
}

type DailyTotal struct {
	Date       string `json:"date"`
	TotalCents int    `json:"total_cents"`
}
