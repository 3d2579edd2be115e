package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderUpdated       = "OrderUpdated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderReordered     = "OrderReordered"
	EventOrderDeleted       = "OrderDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`   // uuid
	EventType     string          `json:"event_type"` // salah satu const di atas
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"` // RFC3339
	Producer      string          `json:"producer"`    // e.g., "backoffice-console"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type OrderUpdatedPayload struct {
	OrderID  int64   `json:"order_id"`
	Code     string  `json:"code"`
	ClientID int64   `json:"client_id"`
	Status   Status  `json:"status"`
	Total    float64 `json:"total"`
	Items    int     `json:"items"`
}

type OrderStatusChangedPayload struct {
	OrderID  int64  `json:"order_id"`
	Code     string `json:"code"`
	ClientID int64  `json:"client_id"`
	From     Status `json:"from"`
	To       Status `json:"to"`
}

type OrderReorderedPayload struct {
	SourceOrderID int64  `json:"source_order_id"`
	NewOrderID    int64  `json:"new_order_id"`
	NewCode       string `json:"new_code"`
}

type OrderDeletedPayload struct {
	OrderID int64  `json:"order_id"`
	Code    string `json:"code"`
}
