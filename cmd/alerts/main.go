package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-kasir-pos.git/internal/alerts"
	"github.com/ariefcatur/go-kasir-pos.git/internal/config"
	kafkax "github.com/ariefcatur/go-kasir-pos.git/internal/kafka"
	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
	"github.com/ariefcatur/go-kasir-pos.git/internal/redisx"
	"github.com/ariefcatur/go-kasir-pos.git/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	telemetry.InitLogger(cfg.ServiceName + "-alerts")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &alerts.Service{
		Redis:     rdb,
		Threshold: cfg.LowStockThreshold,
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AlertGroup, pos.TopicOrderSettled, cfg.AlertWorkers)

	go func() {
		log.Printf("alerts consumer started: group=%s topic=%s workers=%d threshold=%d",
			cfg.AlertGroup, pos.TopicOrderSettled, cfg.AlertWorkers, cfg.LowStockThreshold)
		if err := cons.Start(ctx, svc.HandleOrderSettled); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		log.Println("shutting down consumer...")
	case <-ctx.Done():
	}
	cancel()
}
