package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-backoffice-orders.git/internal/config"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/dataservice"
	kafkax "github.com/ariefcatur/go-backoffice-orders.git/internal/kafka"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/notify"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/redisx"
	"github.com/ariefcatur/go-backoffice-orders.git/pkg/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Redis:   rdb,
		Clients: dataservice.New(cfg.DataServiceURL),
		SMS:     notify.NewSMSGateway(cfg.SMSGatewayURL, cfg.SMSGatewayToken),
		Token:   cfg.DataServiceToken,
	}

	consumer := kafkax.NewConsumer(cfg.KafkaBrokers, "backoffice-notifier", orders.TopicOrderStatusChanged, 4)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("notifier consuming %s", orders.TopicOrderStatusChanged)
		return consumer.Start(gctx, svc.HandleStatusChanged)
	})
	g.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
		go func() {
			<-gctx.Done()
			_ = srv.Close()
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("notifier: %v", err)
	}
	log.Println("notifier stopped")
}
