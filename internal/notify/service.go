// Package notify turns order status-change events into client SMS. Consumes
// backoffice.order.status, dedups by event id, looks the client's phone up
// from the data service and hands the text to the SMS gateway.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-backoffice-orders.git/internal/dataservice"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/kafka"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/redisx"
)

// ClientLookup is the slice of the data service adapter the notifier needs.
type ClientLookup interface {
	GetClient(ctx context.Context, id int64) (orders.Client, error)
}

type Service struct {
	Redis   *redis.Client
	Clients ClientLookup
	SMS     Sender

	// Token is the notifier's own data service credential. Lookups run
	// outside any admin session, so there is no bearer to forward.
	Token string
}

// HandleStatusChanged dipasang sebagai handler consumer. Return nil berarti
// offset boleh di-commit; kegagalan gateway di-log saja, tidak di-retry
// melewati redelivery consumer.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil // ignore
	}

	// dedup via Redis (pakai event_id)
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyNotifyDedup, env.EventID)
		if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLNotifyDedup).Err()
	}

	p, err := kafka.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	client, err := s.Clients.GetClient(dataservice.WithToken(ctx, s.Token), p.ClientID)
	if err != nil {
		log.Printf("notify order %d: client %d lookup: %v", p.OrderID, p.ClientID, err)
		return nil // client hilang bukan alasan nge-block partition
	}
	if client.Phone == "" {
		return nil
	}

	msg := Message(p.Code, p.To)
	if err := s.SMS.Send(ctx, client.Phone, msg); err != nil {
		log.Printf("notify order %d: %v", p.OrderID, err)
	}
	return nil
}

// Message is the SMS body for a status change.
func Message(code string, to orders.Status) string {
	return fmt.Sprintf("Your order %s is now %s.", code, to.Label())
}
