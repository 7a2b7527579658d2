package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, name, price_cents, category, image_url, is_inventory_managed, stock, created_at, updated_at`

// List returns products sorted by name; category narrows the result when set.
// Read-only, no locking.
func (r *Repo) List(ctx context.Context, category string) ([]Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY name`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Category, &p.ImageURL, &p.InventoryManaged, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.PriceCents, &p.Category, &p.ImageURL, &p.InventoryManaged, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, p Product) (int64, error) {
	if err := Validate(p); err != nil {
		return 0, err
	}
	if p.ImageURL == "" {
		p.ImageURL = DefaultImageURL
	}
	if !p.InventoryManaged {
		p.Stock = 0
	}
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, price_cents, category, image_url, is_inventory_managed, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.Name, p.PriceCents, p.Category, p.ImageURL, p.InventoryManaged, p.Stock).Scan(&id)
	return id, err
}

func (r *Repo) Update(ctx context.Context, p Product) error {
	if err := Validate(p); err != nil {
		return err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, price_cents=$3, category=$4, image_url=$5, is_inventory_managed=$6, stock=$7, updated_at=now()
		WHERE id=$1
	`, p.ID, p.Name, p.PriceCents, p.Category, p.ImageURL, p.InventoryManaged, p.Stock)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
