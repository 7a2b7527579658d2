package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-kasir-pos.git/internal/kafka"
	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
	"github.com/ariefcatur/go-kasir-pos.git/internal/redisx"
)

// Service watches settlement events and flags products whose tracked stock
// fell to or below the threshold. It never touches the database: the settled
// payload already carries post-deduction stock per line.
type Service struct {
	Redis     *redis.Client
	Threshold int
}

// HandleOrderSettled is wired as the consumer handler for pos.order.settled.
func (s *Service) HandleOrderSettled(ctx context.Context, m kafkago.Message) error {
	var env pos.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != pos.EventOrderSettled {
		return nil
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "alerts", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[pos.OrderSettledPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, it := range LowLines(p.Items, s.Threshold) {
		slog.Warn("low stock",
			"product_id", it.ProductID,
			"name", it.Name,
			"remaining", it.Remaining,
			"order_id", p.OrderID,
		)
		key := fmt.Sprintf(redisx.KeyLowStock, it.ProductID)
		_ = s.Redis.Set(ctx, key, it.Remaining, redisx.TTLLowStock).Err()
	}
	return nil
}

// LowLines keeps lines with tracked stock (Remaining >= 0) at or below the
// threshold. Untracked lines report Remaining == -1 and are skipped.
func LowLines(items []pos.SettledItem, threshold int) []pos.SettledItem {
	var out []pos.SettledItem
	for _, it := range items {
		if it.Remaining >= 0 && it.Remaining <= threshold {
			out = append(out, it)
		}
	}
	return out
}
