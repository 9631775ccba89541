package handler

import (
	"net/http"
	"strings"

	"github.com/yubarajDas/payguard-motia/internal/infra/bus"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Deps bundles everything the router serves.
type Deps struct {
	Bills         *service.BillService
	Subscriptions *service.SubscriptionService
	Summary       *service.SummaryService
	Recorder      *bus.Recorder
	Metrics       *observability.Metrics
	Logger        *zap.Logger

	// AllowedOrigins is a comma-separated origin list for CORS; "*" in dev.
	AllowedOrigins string
}

// NewRouter creates the HTTP router with all routes and middleware.
// Paths match the contract the payguard frontend already speaks.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(deps.Logger, deps.Metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: splitOrigins(deps.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- PayGuard API ---
	r.Route("/payguard", func(r chi.Router) {
		r.Post("/bills", createBillHandler(deps.Bills, deps.Summary, deps.Logger))
		r.Get("/bills", listBillsHandler(deps.Bills, deps.Logger))
		r.Patch("/bills/{id}/pay", payBillHandler(deps.Bills, deps.Summary, deps.Logger))
		r.Delete("/bills/{id}", deleteBillHandler(deps.Bills, deps.Summary, deps.Logger))

		r.Post("/subscriptions", createSubscriptionHandler(deps.Subscriptions, deps.Logger))
		r.Get("/subscriptions", listSubscriptionsHandler(deps.Subscriptions, deps.Logger))

		r.Get("/summary", getSummaryHandler(deps.Summary, deps.Logger))
		r.Get("/events", getEventsHandler(deps.Recorder))
		r.Get("/metrics/pipeline", pipelineMetricsHandler(deps.Metrics))
	})

	return r
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return []string{"*"}
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
