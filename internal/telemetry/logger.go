package telemetry

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDHandler is a slog.Handler that copies the chi request id from the
// context into every record, so API logs can be correlated per request.
type RequestIDHandler struct {
	slog.Handler
}

func (h *RequestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := middleware.GetReqID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

// InitLogger installs the global JSON logger. Call once from main.
func InitLogger(service string) {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := slog.New(&RequestIDHandler{Handler: handler}).With(slog.String("service", service))
	slog.SetDefault(logger)
}
