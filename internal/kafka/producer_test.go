package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishAfterCloseIsDropped(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:9092"}, "backoffice.order.updated", 4)

	p.Publish([]byte("5"), []byte(`{"event_type":"OrderUpdated"}`))
	p.Close()

	// pesan telat saat shutdown: drop, jangan panic
	require.NotPanics(t, func() {
		p.Publish([]byte("5"), []byte(`{"event_type":"OrderUpdated"}`))
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:9092"}, "backoffice.order.updated", 4)
	require.NotPanics(t, func() {
		p.Close()
		p.Close()
	})
}
