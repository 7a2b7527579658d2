package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-kasir-pos.git/internal/kafka"
	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
	"github.com/ariefcatur/go-kasir-pos.git/internal/redisx"
	"github.com/ariefcatur/go-kasir-pos.git/internal/reports"
)

// OrderService is what the settlement endpoints need from the core engine.
type OrderService interface {
	Settle(ctx context.Context, items []pos.CartItem, paymentMethod string) (pos.Receipt, []pos.SettledItem, error)
	Void(ctx context.Context, orderID int64) error
	DashboardTotals(ctx context.Context, asOf time.Time) (pos.Totals, error)
	SalesByDay(ctx context.Context, days int) ([]pos.DailyTotal, error)
	ListOrders(ctx context.Context) ([]pos.Order, error)
}

type OrdersHandler struct {
	Orders  OrderService
	Redis   *redis.Client
	Settled *kafkax.Producer // pos.order.settled
	Voided  *kafkax.Producer // pos.order.voided
	Service string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.settle)
	r.Post("/api/orders/{id}/void", h.void)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/export", h.exportSales)
	r.Get("/api/dashboard", h.dashboard)
}

type SettleReq struct {
	Items         []pos.CartItem `json:"items"`
	PaymentMethod string         `json:"payment_method"`
}

func (h *OrdersHandler) settle(w http.ResponseWriter, r *http.Request) {
	var req SettleReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cash"
	}
	for _, it := range req.Items {
		if it.Qty <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid qty for product %d", it.ProductID))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, lines, err := h.Orders.Settle(ctx, req.Items, req.PaymentMethod)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	h.invalidateDashboard(ctx)
	h.publishSettled(ctx, rec, lines)

	writeJSON(w, http.StatusCreated, rec)
}

func (h *OrdersHandler) void(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.Void(ctx, orderID); err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	h.invalidateDashboard(ctx)
	h.publishVoided(ctx, orderID)

	writeJSON(w, http.StatusOK, map[string]any{"order_id": orderID, "status": pos.StatusVoid})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.Orders.ListOrders(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) exportSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.Orders.ListOrders(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	f, err := reports.SalesWorkbook(orders)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sales_report.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Error("write xlsx", "err", err)
	}
}

type DashboardResp struct {
	DailyCents   int              `json:"daily_cents"`
	MonthlyCents int              `json:"monthly_cents"`
	Chart        []pos.DailyTotal `json:"chart"`
}

func (h *OrdersHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	now := time.Now()
	key := fmt.Sprintf(redisx.KeyDashboard, now.Format("20060102"))
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	totals, err := h.Orders.DashboardTotals(ctx, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chart, err := h.Orders.SalesByDay(ctx, 7)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := DashboardResp{DailyCents: totals.DailyCents, MonthlyCents: totals.MonthlyCents, Chart: chart}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(resp), redisx.TTLDashboardCache).Err()
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeOrderError maps the engine's business errors onto HTTP statuses;
// anything unrecognized is an internal failure and stays opaque.
func (h *OrdersHandler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *pos.InsufficientStockError
	switch {
	case errors.Is(err, pos.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, pos.ErrProductNotFound), errors.Is(err, pos.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &stockErr), errors.Is(err, pos.ErrOrderAlreadyVoid):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "order operation", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *OrdersHandler) invalidateDashboard(ctx context.Context) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyDashboard, time.Now().Format("20060102"))
	_ = h.Redis.Del(ctx, key).Err()
}

func (h *OrdersHandler) publishSettled(ctx context.Context, rec pos.Receipt, lines []pos.SettledItem) {
	if h.Settled == nil {
		return
	}
	ev := pos.Envelope{
		EventID:       uuid.NewString(),
		EventType:     pos.EventOrderSettled,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: rec.TransactionCode,
		Payload: kafkax.MustMarshal(pos.OrderSettledPayload{
			OrderID:         rec.OrderID,
			TransactionCode: rec.TransactionCode,
			TotalCents:      rec.TotalCents,
			Items:           lines,
		}),
	}
	h.Settled.Publish(pos.PartitionKey(rec.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pos.EventOrderSettled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) publishVoided(ctx context.Context, orderID int64) {
	if h.Voided == nil {
		return
	}
	ev := pos.Envelope{
		EventID:      uuid.NewString(),
		EventType:    pos.EventOrderVoided,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     h.Service,
		TraceID:      middleware.GetReqID(ctx),
		Payload:      kafkax.MustMarshal(pos.OrderVoidedPayload{OrderID: orderID}),
	}
	h.Voided.Publish(pos.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(pos.EventOrderVoided)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
