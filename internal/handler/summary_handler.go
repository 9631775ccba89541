package handler

import (
	"net/http"

	"github.com/yubarajDas/payguard-motia/internal/infra/bus"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Summary, event feed, pipeline metrics
// ============================================================

func getSummaryHandler(summarySvc *service.SummaryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payguard/summary")
		defer span.End()

		summary, err := summarySvc.Dashboard(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// getEventsHandler serves the recent-event feed consumed by the frontend
// event monitor, newest first.
func getEventsHandler(recorder *bus.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, recorder.Recent())
	}
}

func pipelineMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetPipelineSnapshot())
	}
}
