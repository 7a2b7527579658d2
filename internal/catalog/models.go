package catalog

import (
	"errors"
	"time"
)

type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	PriceCents       int       `json:"price_cents"`
	Category         string    `json:"category"`
	ImageURL         string    `json:"image_url"`
	InventoryManaged bool      `json:"is_inventory_managed"`
	Stock            int       `json:"stock"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultImageURL is used when an admin creates a product without an image.
const DefaultImageURL = "https://placehold.co/400x300?text=No+Image"

var (
	ErrNotFound = errors.New("product not found")
)

// Validate checks admin input before it reaches the database.
func Validate(p Product) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	if p.InventoryManaged && p.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}
