package orders

import (
	"context"
	"fmt"
)

// Repository is the slice of the data service the edit session needs.
// The full adapter lives in internal/dataservice.
type Repository interface {
	Get(ctx context.Context, id int64) (Order, error)
	Update(ctx context.Context, id int64, patch UpdatePayload) (Order, error)
}

type SessionState string

const (
	SessionLoading SessionState = "loading"
	SessionReady   SessionState = "ready"
	SessionSaving  SessionState = "saving"
	SessionSaved   SessionState = "saved"
	SessionFailed  SessionState = "failed"
)

type ItemField string

const (
	FieldProduct  ItemField = "product"
	FieldPrice    ItemField = "price"
	FieldQuantity ItemField = "quantity"
)

// EditSession is a stateful editor over one order. All edits are local
// until Submit, which resends the mutable fields wholesale. A failed submit
// drops back to Ready with the edits intact — nothing the admin typed is
// lost.
//
// Sessions are single-goroutine, matching one admin interaction at a time.
type EditSession struct {
	repo    Repository
	id      int64
	state   SessionState
	order   Order
	err     error
	warning string

	// gen naik tiap Abandon(); respons dari Load/Submit yang sudah
	// ditinggal dibuang, state tidak disentuh.
	gen int
}

func NewEditSession(repo Repository, id int64) *EditSession {
	return &EditSession{repo: repo, id: id, state: SessionLoading}
}

func (s *EditSession) State() SessionState { return s.state }
func (s *EditSession) Order() Order        { return s.order }
func (s *EditSession) Err() error          { return s.err }

// Warning holds an advisory note from the last SetStatus, e.g. a jump that
// skips the normal production flow. It never blocks the edit.
func (s *EditSession) Warning() string { return s.warning }

// Abandon marks the session as navigated-away. In-flight Load/Submit
// results are discarded when they land.
func (s *EditSession) Abandon() { s.gen++ }

// Load fetches the order. Only meaningful from Loading; on failure the
// session ends up Failed with the error kept for display.
func (s *EditSession) Load(ctx context.Context) error {
	if s.state != SessionLoading {
		return fmt.Errorf("load from state %s: %w", s.state, ErrSessionNotReady)
	}
	gen := s.gen
	o, err := s.repo.Get(ctx, s.id)
	if gen != s.gen {
		return nil // abandoned, drop the result
	}
	if err != nil {
		s.state = SessionFailed
		s.err = err
		return err
	}
	Recalculate(&o) // never trust a stored total
	s.order = o
	s.state = SessionReady
	s.err = nil
	return nil
}

func (s *EditSession) editable() error {
	switch s.state {
	case SessionReady:
		return nil
	case SessionSaving:
		return ErrSessionBusy
	default:
		return ErrSessionNotReady
	}
}

func (s *EditSession) SetClient(clientID int64) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.order.ClientID = clientID
	return nil
}

// SetStatus accepts any value from the vocabulary — the production flow is
// advisory, not enforced (operator flexibility). Off-flow jumps only set
// Warning.
func (s *EditSession) SetStatus(v Status) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !Valid(v) {
		return fmt.Errorf("status %q: %w", v, ErrUnknownStatus)
	}
	if !CanTransition(s.order.Status, v) {
		s.warning = fmt.Sprintf("status %s → %s skips the normal flow", s.order.Status, v)
	} else {
		s.warning = ""
	}
	s.order.Status = v
	return nil
}

// SetItemField replaces one field on one line and immediately recomputes
// the line's TotalLine and the order Total. Runs on every keystroke-level
// change, never deferred to submit.
func (s *EditSession) SetItemField(index int, field ItemField, value any) error {
	if err := s.editable(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.order.Items) {
		return fmt.Errorf("index %d of %d items: %w", index, len(s.order.Items), ErrBadItemIndex)
	}
	it := &s.order.Items[index]
	switch field {
	case FieldProduct:
		v, ok := value.(string)
		if !ok || v == "" {
			return fmt.Errorf("product: %w", ErrBadFieldValue)
		}
		it.Product = v
	case FieldPrice:
		v, ok := toFloat(value)
		if !ok || v < 0 {
			return fmt.Errorf("price: %w", ErrBadFieldValue)
		}
		it.Price = v
	case FieldQuantity:
		v, ok := toInt(value)
		if !ok || v <= 0 {
			return fmt.Errorf("quantity: %w", ErrBadFieldValue)
		}
		it.Quantity = v
	default:
		return fmt.Errorf("field %q: %w", field, ErrBadFieldValue)
	}
	it.TotalLine = ExtendedPrice(it.Price, it.Quantity)
	s.order.Total = OrderTotal(s.order.Items)
	return nil
}

// Submit resends {clientId, total, status, items} as a full replacement.
// The total is recomputed right before the call — stale values are never
// transmitted. No automatic retry: on failure the session returns to Ready
// with the error retained.
func (s *EditSession) Submit(ctx context.Context) error {
	if s.state != SessionReady {
		if s.state == SessionSaving {
			return ErrSessionBusy
		}
		return ErrSessionNotReady
	}
	if len(s.order.Items) == 0 {
		return fmt.Errorf("order has no items: %w", ErrValidation)
	}
	Recalculate(&s.order)
	patch := UpdatePayload{
		ClientID: s.order.ClientID,
		Total:    s.order.Total,
		Status:   s.order.Status,
		Items:    s.order.Items,
	}
	s.state = SessionSaving
	gen := s.gen
	saved, err := s.repo.Update(ctx, s.id, patch)
	if gen != s.gen {
		return nil // abandoned mid-save; jangan sentuh state
	}
	if err != nil {
		s.state = SessionReady
		s.err = err
		return err
	}
	s.order = saved
	s.state = SessionSaved
	s.err = nil
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// JSON numbers decode as float64; accept whole values only.
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
