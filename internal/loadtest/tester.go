// Package loadtest fires concurrent settlements at a running API, mainly to
// watch stock contention behave: carts racing for the last units must end as
// exactly the right mix of receipts and out-of-stock rejections.
package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
)

type Tester struct {
	BaseURL string
	Client  *http.Client
}

type Result struct {
	Receipts   int64
	OutOfStock int64
	Rejected   int64 // non-409 failures
}

type settleReq struct {
	Items         []pos.CartItem `json:"items"`
	PaymentMethod string         `json:"payment_method"`
}

// Run settles every cart, at most concurrency in flight. Transport errors
// abort the run; HTTP-level rejections are counted, not fatal.
func (t *Tester) Run(ctx context.Context, carts [][]pos.CartItem, concurrency int) (Result, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	var res Result
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, cart := range carts {
		cart := cart // per-iteration copy; required while go.mod declares go < 1.22
		g.Go(func() error {
			body, err := json.Marshal(settleReq{Items: cart, PaymentMethod: "cash"})
			if err != nil {
				return err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/api/orders", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				atomic.AddInt64(&res.Receipts, 1)
			case http.StatusConflict:
				atomic.AddInt64(&res.OutOfStock, 1)
			default:
				atomic.AddInt64(&res.Rejected, 1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// LastUnitCarts builds n single-line carts all asking for one unit of the
// same product, the worst case for stock contention.
func LastUnitCarts(productID int64, n int) [][]pos.CartItem {
	carts := make([][]pos.CartItem, n)
	for i := range carts {
		carts[i] = []pos.CartItem{{ProductID: productID, Qty: 1}}
	}
	return carts
}
