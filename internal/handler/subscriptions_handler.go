package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Subscriptions
// ============================================================

func createSubscriptionHandler(subSvc *service.SubscriptionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /payguard/subscriptions")
		defer span.End()

		var req domain.CreateSubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sub, err := subSvc.Create(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, sub)
	}
}

func listSubscriptionsHandler(subSvc *service.SubscriptionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payguard/subscriptions")
		defer span.End()

		subs, err := subSvc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if subs == nil {
			subs = []domain.Subscription{}
		}

		writeJSON(w, http.StatusOK, subs)
	}
}
