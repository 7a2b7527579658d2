package pos

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Transaction codes look like TRX-20231027-0042: date-scoped, sequence
// restarts at 0001 every day.

func transactionCodePrefix(t time.Time) string {
	return "TRX-" + t.Format("20060102") + "-"
}

func formatTransactionCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// nextSequence derives the next sequence from the newest stored code of the
// day. A suffix that does not parse restarts the sequence at 1; the unique
// index on transaction_code turns the resulting collision into a settlement
// retry instead of a duplicate row.
func nextSequence(lastCode string) int {
	i := strings.LastIndexByte(lastCode, '-')
	if i < 0 {
		return 1
	}
	n, err := strconv.Atoi(lastCode[i+1:])
	if err != nil {
		return 1
	}
	return n + 1
}

// nextTransactionCode runs inside the settlement transaction so the lookup
// and the order insert share one unit of work.
func nextTransactionCode(ctx context.Context, tx pgx.Tx, now time.Time) (string, error) {
	prefix := transactionCodePrefix(now)
	var last string
	err := tx.QueryRow(ctx,
		`SELECT transaction_code FROM orders WHERE transaction_code LIKE $1 ORDER BY id DESC LIMIT 1`,
		prefix+"%").Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return formatTransactionCode(prefix, 1), nil
	}
	if err != nil {
		return "", err
	}
	return formatTransactionCode(prefix, nextSequence(last)), nil
}
