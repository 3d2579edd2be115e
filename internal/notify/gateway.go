package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers one SMS. The production implementation is the external
// gateway collaborator; tests swap in a fake.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

type SMSGateway struct {
	URL   string
	Token string
	HTTP  *http.Client
}

func NewSMSGateway(url, token string) *SMSGateway {
	return &SMSGateway{URL: url, Token: token, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (g *SMSGateway) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{"to": phone, "message": message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL+"/sms", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}
	resp, err := g.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sms gateway: status %d", resp.StatusCode)
	}
	return nil
}
