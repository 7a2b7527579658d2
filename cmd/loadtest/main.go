// loadtest settles many carts at once against a running API and reports how
// the contention resolved.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ariefcatur/go-kasir-pos.git/internal/loadtest"
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8081", "API base URL")
		productID   = flag.Int64("product", 1, "product id to contend on")
		carts       = flag.Int("carts", 20, "number of single-unit carts to settle")
		concurrency = flag.Int("concurrency", 10, "settlements in flight")
	)
	flag.Parse()

	t := &loadtest.Tester{BaseURL: *baseURL}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start := time.Now()
	res, err := t.Run(ctx, loadtest.LastUnitCarts(*productID, *carts), *concurrency)
	if err != nil {
		log.Fatalf("loadtest: %v", err)
	}
	log.Printf("done in %s: receipts=%d out_of_stock=%d rejected=%d",
		time.Since(start).Round(time.Millisecond), res.Receipts, res.OutOfStock, res.Rejected)
}
