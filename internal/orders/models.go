package orders

import "time"

// Field names (termasuk yang kapital: CompanyName, Price, Quantity,
// TotalLine) mengikuti kontrak data service apa adanya — jangan dirapikan.

type Client struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"CompanyName"`
	Phone       string `json:"Phone,omitempty"`
}

type OrderItem struct {
	Product   string  `json:"product"`
	Price     float64 `json:"Price"`
	Quantity  int     `json:"Quantity"`
	TotalLine float64 `json:"TotalLine"`
}

type Order struct {
	ID        int64       `json:"id"`
	Code      string      `json:"code"`
	ClientID  int64       `json:"clientId"`
	Client    Client      `json:"client"`
	Total     float64     `json:"total"`
	Status    Status      `json:"status"` // lihat status.go
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UpdatePayload replaces the mutable fields wholesale. No partial patch:
// the full item list is resent on every save so client and server state
// never diverge.
type UpdatePayload struct {
	ClientID int64       `json:"clientId"`
	Total    float64     `json:"total"`
	Status   Status      `json:"status"`
	Items    []OrderItem `json:"items"`
}

type ReorderRequest struct {
	OrderID int64 `json:"orderId"`
}

// DateLayout is how createdAt is displayed (and searched) in the console.
const DateLayout = "02/01/2006"
