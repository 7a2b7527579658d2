// initdb creates the POS schema and seeds default accounts and products.
// Safe to run repeatedly.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-kasir-pos.git/internal/auth"
	"github.com/ariefcatur/go-kasir-pos.git/internal/config"
	"github.com/ariefcatur/go-kasir-pos.git/internal/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id                   BIGSERIAL PRIMARY KEY,
    name                 TEXT        NOT NULL,
    price_cents          INT         NOT NULL CHECK (price_cents >= 0),
    category             TEXT        NOT NULL DEFAULT '',
    image_url            TEXT        NOT NULL DEFAULT '',
    is_inventory_managed BOOLEAN     NOT NULL DEFAULT FALSE,
    stock                INT         NOT NULL DEFAULT 0 CHECK (stock >= 0),
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
    id               BIGSERIAL PRIMARY KEY,
    -- UNIQUE is load-bearing: two same-day settlements racing for the same
    -- sequence collide here and the loser retries with a fresh code.
    transaction_code TEXT        NOT NULL UNIQUE,
    total_cents      INT         NOT NULL,
    tax_cents        INT         NOT NULL,
    payment_method   TEXT        NOT NULL,
    status           TEXT        NOT NULL DEFAULT 'paid',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
    id             BIGSERIAL PRIMARY KEY,
    order_id       BIGINT NOT NULL REFERENCES orders(id),
    -- stable reference for stock restoration on void; NULLed when the
    -- product is deleted, which turns restoration into a no-op
    product_id     BIGINT REFERENCES products(id) ON DELETE SET NULL,
    name_snapshot  TEXT   NOT NULL,
    price_cents    INT    NOT NULL,
    qty            INT    NOT NULL,
    subtotal_cents INT    NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL
);
`

type seedProduct struct {
	name     string
	price    int
	category string
	image    string
	managed  bool
	stock    int
}

var seedProducts = []seedProduct{
	{"Espresso", 25000, "Coffee", "https://placehold.co/400x300?text=Espresso", false, 0},
	{"Cappuccino", 30000, "Coffee", "https://placehold.co/400x300?text=Cappuccino", true, 50},
	{"Latte", 32000, "Coffee", "https://placehold.co/400x300?text=Latte", true, 40},
	{"Croissant", 15000, "Pastry", "https://placehold.co/400x300?text=Croissant", true, 20},
	{"Ice Tea", 10000, "Beverage", "https://placehold.co/400x300?text=Ice+Tea", false, 0},
	{"Mineral Water", 5000, "Beverage", "https://placehold.co/400x300?text=Water", true, 100},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(ctx, schema); err != nil {
		log.Fatalf("create schema: %v", err)
	}
	log.Println("tables created")

	users := map[string]struct{ password, role string }{
		"admin":   {"admin123", "admin"},
		"cashier": {"cashier123", "cashier"},
	}
	for username, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if _, err := db.Exec(ctx, `
			INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)
			ON CONFLICT (username) DO NOTHING
		`, username, hash, u.role); err != nil {
			log.Fatalf("seed user %s: %v", username, err)
		}
	}
	log.Println("users seeded")

	var count int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		log.Fatalf("count products: %v", err)
	}
	if count > 0 {
		log.Println("products already exist, skipping seed")
		return
	}
	for _, p := range seedProducts {
		if _, err := db.Exec(ctx, `
			INSERT INTO products (name, price_cents, category, image_url, is_inventory_managed, stock)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.name, p.price, p.category, p.image, p.managed, p.stock); err != nil {
			log.Fatalf("seed product %s: %v", p.name, err)
		}
	}
	log.Println("products seeded")
}
