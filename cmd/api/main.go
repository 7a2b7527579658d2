package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-kasir-pos.git/internal/catalog"
	"github.com/ariefcatur/go-kasir-pos.git/internal/config"
	"github.com/ariefcatur/go-kasir-pos.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-kasir-pos.git/internal/kafka"
	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
	"github.com/ariefcatur/go-kasir-pos.git/internal/postgres"
	"github.com/ariefcatur/go-kasir-pos.git/internal/redisx"
	"github.com/ariefcatur/go-kasir-pos.git/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	telemetry.InitLogger(cfg.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers (settled & voided, dua topic berbeda)
	pSettled := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicOrderSettled, 1024)
	pSettled.Start(ctx)
	pVoided := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicOrderVoided, 1024)
	pVoided.Start(ctx)

	// Repos & handlers
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Orders:  &pos.Repo{DB: db},
		Redis:   rdb,
		Settled: pSettled,
		Voided:  pVoided,
		Service: cfg.ServiceName,
	}
	oh.Register(router)
	ch := &httpx.CatalogHandler{
		Catalog: &catalog.Repo{DB: db},
		Redis:   rdb,
	}
	ch.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pSettled.Close() // tutup inbox -> flush & close writer
	pVoided.Close()
	cancel() // stop producer loops
	pSettled.WaitClosed()
	pVoided.WaitClosed()
}
