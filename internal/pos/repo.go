package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Two settlements on the same day can race for the same sequence number; the
// loser hits the unique index and the whole transaction is re-run with a
// fresh code.
const settleRetries = 3

type stagedLine struct {
	productID int64
	name      string
	price     int
	qty       int
	subtotal  int
	remaining int
	managed   bool
}

// Settle converts a cart into a paid order: one transaction covering stock
// validation + deduction (row-locked), totals, code assignment, and the
// order/item inserts. Either everything commits or nothing does.
func (r *Repo) Settle(ctx context.Context, items []CartItem, paymentMethod string) (Receipt, []SettledItem, error) {
	if len(items) == 0 {
		return Receipt{}, nil, ErrEmptyCart
	}
	for _, it := range items {
		if it.Qty <= 0 {
			return Receipt{}, nil, fmt.Errorf("invalid qty %d for product %d", it.Qty, it.ProductID)
		}
	}

	var lastErr error
	for attempt := 0; attempt < settleRetries; attempt++ {
		rec, lines, err := r.settleOnce(ctx, items, paymentMethod, time.Now())
		if err != nil && isCodeConflict(err) {
			lastErr = err
			continue
		}
		return rec, lines, err
	}
	return Receipt{}, nil, lastErr
}

func (r *Repo) settleOnce(ctx context.Context, items []CartItem, paymentMethod string, now time.Time) (Receipt, []SettledItem, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Receipt{}, nil, err
	}
	defer tx.Rollback(ctx)

	subtotal := 0
	staged := make([]stagedLine, 0, len(items))

	for _, it := range items {
		var (
			name    string
			price   int
			managed bool
			stock   int
		)
		// FOR UPDATE: settlements fighting over the same product serialize here.
		err := tx.QueryRow(ctx,
			`SELECT name, price_cents, is_inventory_managed, stock FROM products WHERE id=$1 FOR UPDATE`,
			it.ProductID).Scan(&name, &price, &managed, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return Receipt{}, nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, it.ProductID)
		}
		if err != nil {
			return Receipt{}, nil, err
		}

		remaining := -1
		if managed {
			if stock < it.Qty {
				return Receipt{}, nil, &InsufficientStockError{Product: name, Available: stock, Requested: it.Qty}
			}
			// kurangi stok langsung, masih dalam transaksi yang sama
			if _, err := tx.Exec(ctx,
				`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id=$1`,
				it.ProductID, it.Qty); err != nil {
				return Receipt{}, nil, err
			}
			remaining = stock - it.Qty
		}

		line := price * it.Qty
		subtotal += line
		staged = append(staged, stagedLine{
			productID: it.ProductID,
			name:      name,
			price:     price,
			qty:       it.Qty,
			subtotal:  line,
			remaining: remaining,
			managed:   managed,
		})
	}

	tax := CalculateTax(subtotal)
	total := subtotal + tax

	code, err := nextTransactionCode(ctx, tx, now)
	if err != nil {
		return Receipt{}, nil, err
	}

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(transaction_code, total_cents, tax_cents, payment_method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, code, total, tax, paymentMethod, StatusPaid).Scan(&orderID)
	if err != nil {
		return Receipt{}, nil, err
	}

	for _, s := range staged {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, name_snapshot, price_cents, qty, subtotal_cents)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, s.productID, s.name, s.price, s.qty, s.subtotal); err != nil {
			return Receipt{}, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Receipt{}, nil, err
	}

	lines := make([]SettledItem, 0, len(staged))
	for _, s := range staged {
		lines = append(lines, SettledItem{
			ProductID: s.productID,
			Name:      s.name,
			Qty:       s.qty,
			Remaining: s.remaining,
		})
	}
	return Receipt{OrderID: orderID, TransactionCode: code, TotalCents: total}, lines, nil
}

func isCodeConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "orders_transaction_code_key"
}

// Void reverses a paid order: restores managed stock through the stable
// product reference and flips status to void, atomically. Items whose
// product row no longer exists are skipped (documented no-op).
func (r *Repo) Void(ctx context.Context, orderID int64) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status Status
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if !CanTransition(status, StatusVoid) {
		return ErrOrderAlreadyVoid
	}

	rows, err := tx.Query(ctx, `SELECT product_id, name_snapshot, qty FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return err
	}
	type line struct {
		productID *int64
		name      string
		qty       int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.name, &l.qty); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		if l.productID != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id=$1 AND is_inventory_managed`,
				*l.productID, l.qty); err != nil {
				return err
			}
			continue
		}
		// baris lama tanpa product_id: cocokkan lewat nama snapshot
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock + $2, updated_at = now() WHERE name=$1 AND is_inventory_managed`,
			l.name, l.qty); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, orderID, StatusVoid); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DashboardTotals sums paid orders for the asOf day and its month-to-date.
// Voided orders never count; no rows means zero, not an error.
func (r *Repo) DashboardTotals(ctx context.Context, asOf time.Time) (Totals, error) {
	day := asOf.Format("2006-01-02")
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).Format("2006-01-02")

	var t Totals
	if err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE created_at::date = $1 AND status = 'paid'`,
		day).Scan(&t.DailyCents); err != nil {
		return Totals{}, err
	}
	if err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE created_at::date >= $1 AND status = 'paid'`,
		monthStart).Scan(&t.MonthlyCents); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// SalesByDay returns per-day paid totals for the chart, oldest first.
func (r *Repo) SalesByDay(ctx context.Context, days int) ([]DailyTotal, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT created_at::date AS day, SUM(total_cents)
		FROM orders
		WHERE status = 'paid'
		GROUP BY day
		ORDER BY day DESC
		LIMIT $1
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyTotal
	for rows.Next() {
		var (
			day   time.Time
			total int
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		out = append(out, DailyTotal{Date: day.Format("2006-01-02"), TotalCents: total})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// query is newest-first for the LIMIT; chart wants ascending
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ListOrders is the sales screen projection, newest first.
func (r *Repo) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, transaction_code, total_cents, tax_cents, payment_method, status, created_at
		FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.TransactionCode, &o.TotalCents, &o.TaxCents, &o.PaymentMethod, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
