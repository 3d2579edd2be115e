package httpx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-backoffice-orders.git/internal/audit"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/dataservice"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/invoice"
	kafkax "github.com/ariefcatur/go-backoffice-orders.git/internal/kafka"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
	"github.com/ariefcatur/go-backoffice-orders.git/internal/redisx"
)

// Publisher is what the handler needs from a kafka producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// OrdersHandler is the console's order surface. Redis, producers and the
// audit repo are optional (nil = feature off); the data service is not.
type OrdersHandler struct {
	Orders *dataservice.Client
	Redis  *redis.Client
	Audit  *audit.Repo

	PubUpdated   Publisher
	PubStatus    Publisher
	PubReordered Publisher
	PubDeleted   Publisher

	Service string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Put("/orders/{id}", h.updateOrder)
	r.Delete("/orders", h.deleteOrder)
	r.Post("/orders/{id}/reorder", h.reorder)
	r.Get("/orders/{id}/invoice.pdf", h.invoicePDF)
	r.Get("/audit", h.auditTrail)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errStatus(err), map[string]string{"error": orders.UserMessage(err)})
}

// errStatus maps the adapter's error taxonomy back onto response codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, orders.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, orders.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orders.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// callCtx forwards the admin's bearer token to the data service and bounds
// the call. One call per interaction — no fan-out here.
func callCtx(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), d)
	if tok := bearerToken(r); tok != "" {
		ctx = dataservice.WithToken(ctx, tok)
	}
	return ctx, cancel
}

func bearerToken(r *http.Request) string {
	tok, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return tok
}

func actor(r *http.Request) string {
	if a := r.Header.Get("X-Admin-User"); a != "" {
		return a
	}
	return "unknown"
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

type listResponse struct {
	Items     []orders.Order `json:"items"`
	Page      int            `json:"page"`
	PageSize  int            `json:"pageSize"`
	PageCount int            `json:"pageCount"`
	Matched   int            `json:"matched"`
}

// listOrders fetches the full set (snapshot-cached briefly), then filters
// and pages locally via the collection view model. Search is never pushed
// to the data service.
func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := callCtx(r, 10*time.Second)
	defer cancel()

	set, err := h.fetchList(ctx, bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	col := orders.NewCollection(set)
	col.SetSearchTerm(r.URL.Query().Get("q"))
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		col.SetPageSize(s)
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		col.SetPageIndex(p)
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items:     col.Page(),
		Page:      col.PageIndex(),
		PageSize:  col.PageSize(),
		PageCount: col.PageCount(),
		Matched:   col.FilteredCount(),
	})
}

// fetchList serves the order set from the per-token snapshot cache or the
// data service. The key carries a hash of the caller's bearer, so a request
// with a different (or missing) token can never ride on someone else's
// authorized snapshot — it has to face the data service itself.
func (h *OrdersHandler) fetchList(ctx context.Context, token string) ([]orders.Order, error) {
	var key string
	if h.Redis != nil {
		gen, err := h.Redis.Get(ctx, redisx.KeyOrderListGen).Result()
		if err != nil {
			gen = "0"
		}
		key = listCacheKey(gen, token)
		if raw, err := h.Redis.Get(ctx, key).Bytes(); err == nil {
			var set []orders.Order
			if json.Unmarshal(raw, &set) == nil {
				return set, nil
			}
		}
	}
	set, err := h.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	if h.Redis != nil {
		if raw, err := json.Marshal(set); err == nil {
			_ = h.Redis.Set(ctx, key, raw, redisx.TTLOrderList).Err()
		}
	}
	return set, nil
}

func listCacheKey(gen, token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf(redisx.KeyOrderList, gen, hex.EncodeToString(sum[:8]))
}

// invalidateList bumps the snapshot generation; old keys expire by TTL.
func (h *OrdersHandler) invalidateList(ctx context.Context) {
	if h.Redis != nil {
		_ = h.Redis.Incr(ctx, redisx.KeyOrderListGen).Err()
	}
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	ctx, cancel := callCtx(r, 5*time.Second)
	defer cancel()

	o, err := h.Orders.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// updateOrder runs an edit session end to end: load, apply the admin's
// fields, submit. Totals in the incoming payload are ignored — the session
// recomputes every derived value before the save goes out.
func (h *OrdersHandler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req orders.UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := callCtx(r, 10*time.Second)
	defer cancel()

	sess := orders.NewEditSession(h.Orders, id)
	if err := sess.Load(ctx); err != nil {
		writeError(w, err)
		return
	}
	prev := sess.Order().Status

	// Sesi edit tidak punya add/remove item — jumlah harus sama.
	if len(req.Items) != len(sess.Order().Items) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "item count mismatch"})
		return
	}
	if err := h.applyEdits(sess, req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	if err := sess.Submit(ctx); err != nil {
		writeError(w, err)
		return
	}
	saved := sess.Order()

	h.invalidateList(ctx)
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyInvoicePDF, id)).Err()
	}
	if h.Audit != nil {
		if err := h.Audit.Record(ctx, actor(r), audit.ActionUpdate, id, string(saved.Status)); err != nil {
			log.Printf("audit update order %d: %v", id, err)
		}
	}

	h.publish(h.PubUpdated, orders.EventOrderUpdated, r, id, orders.OrderUpdatedPayload{
		OrderID: id, Code: saved.Code, ClientID: saved.ClientID,
		Status: saved.Status, Total: saved.Total, Items: len(saved.Items),
	})
	if saved.Status != prev {
		h.publish(h.PubStatus, orders.EventOrderStatusChanged, r, id, orders.OrderStatusChangedPayload{
			OrderID: id, Code: saved.Code, ClientID: saved.ClientID,
			From: prev, To: saved.Status,
		})
	}

	resp := map[string]any{"order": saved}
	if wmsg := sess.Warning(); wmsg != "" {
		resp["warning"] = wmsg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OrdersHandler) applyEdits(sess *orders.EditSession, req orders.UpdatePayload) error {
	if err := sess.SetClient(req.ClientID); err != nil {
		return err
	}
	if err := sess.SetStatus(req.Status); err != nil {
		return err
	}
	for i, it := range req.Items {
		if err := sess.SetItemField(i, orders.FieldProduct, it.Product); err != nil {
			return err
		}
		if err := sess.SetItemField(i, orders.FieldPrice, it.Price); err != nil {
			return err
		}
		if err := sess.SetItemField(i, orders.FieldQuantity, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// deleteOrder is irreversible, so the boundary demands an explicit
// confirm=true — the confirmation dialog alone is not enough.
func (h *OrdersHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing confirm=true"})
		return
	}

	ctx, cancel := callCtx(r, 5*time.Second)
	defer cancel()

	// Ambil code dulu buat event; kalau gagal ya sudah, event tanpa code.
	var code string
	if o, err := h.Orders.Get(ctx, id); err == nil {
		code = o.Code
	}

	if err := h.Orders.Delete(ctx, id); err != nil {
		writeError(w, err)
		return
	}

	h.invalidateList(ctx)
	if h.Audit != nil {
		if err := h.Audit.Record(ctx, actor(r), audit.ActionDelete, id, code); err != nil {
			log.Printf("audit delete order %d: %v", id, err)
		}
	}
	h.publish(h.PubDeleted, orders.EventOrderDeleted, r, id, orders.OrderDeletedPayload{OrderID: id, Code: code})

	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) reorder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	ctx, cancel := callCtx(r, 10*time.Second)
	defer cancel()

	// Non-idempotent by contract: every call duplicates into a new order.
	created, err := h.Orders.Reorder(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidateList(ctx)
	if h.Audit != nil {
		if err := h.Audit.Record(ctx, actor(r), audit.ActionReorder, id, created.Code); err != nil {
			log.Printf("audit reorder order %d: %v", id, err)
		}
	}
	h.publish(h.PubReordered, orders.EventOrderReordered, r, created.ID, orders.OrderReorderedPayload{
		SourceOrderID: id, NewOrderID: created.ID, NewCode: created.Code,
	})

	writeJSON(w, http.StatusCreated, created)
}

// invoicePDF renders the snapshot and streams it as an attachment. Cached
// per order; repeat exports are free and never touch order state.
func (h *OrdersHandler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	ctx, cancel := callCtx(r, 10*time.Second)
	defer cancel()

	o, err := h.Orders.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	doc := invoice.Build(o)

	var pdf []byte
	key := fmt.Sprintf(redisx.KeyInvoicePDF, id)
	if h.Redis != nil {
		if b, err := h.Redis.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
			pdf = b
		}
	}
	if pdf == nil {
		pdf, err = doc.ExportPDF()
		if err != nil {
			log.Printf("invoice export order %d: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to export invoice"})
			return
		}
		if h.Redis != nil {
			_ = h.Redis.Set(ctx, key, pdf, redisx.TTLInvoicePDF).Err()
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *OrdersHandler) auditTrail(w http.ResponseWriter, r *http.Request) {
	if h.Audit == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "audit trail disabled"})
		return
	}
	id, err := strconv.ParseInt(r.URL.Query().Get("orderId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid orderId"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	entries, err := h.Audit.ListByOrder(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "audit lookup failed"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *OrdersHandler) publish(p Publisher, eventType string, r *http.Request, orderID int64, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.FormatInt(orderID, 10),
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
