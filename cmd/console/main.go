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

	"github.com/ariefcatur/go-backoffice-orders.git/internal/audit"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/config"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/dataservice"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-backoffice-orders.git/internal/kafka"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/postgres"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/redisx"
	"github.com/ariefcatur/go-backoffice-orders.git/pkg/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres: hanya audit trail; data order ada di data service.
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, satu per topic
	pubUpdated := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderUpdated, 1024)
	pubUpdated.Start(ctx)
	pubStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	pubStatus.Start(ctx)
	pubReordered := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderReordered, 1024)
	pubReordered.Start(ctx)
	pubDeleted := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderDeleted, 1024)
	pubDeleted.Start(ctx)

	m := metrics.NewServerMetrics("console")

	router := httpx.NewRouter()
	router.Handle("/metrics", metrics.Handler())
	oh := &httpx.OrdersHandler{
		Orders:       dataservice.New(cfg.DataServiceURL),
		Redis:        rdb,
		Audit:        &audit.Repo{DB: db},
		PubUpdated:   pubUpdated,
		PubStatus:    pubStatus,
		PubReordered: pubReordered,
		PubDeleted:   pubDeleted,
		Service:      cfg.ServiceName,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpx.Instrument(m, router)}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	for _, p := range []*kafkax.Producer{pubUpdated, pubStatus, pubReordered, pubDeleted} {
		p.Close()
	}
	cancel()
	for _, p := range []*kafkax.Producer{pubUpdated, pubStatus, pubReordered, pubDeleted} {
		p.WaitClosed()
	}
}
