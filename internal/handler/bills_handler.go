package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Bills
// ============================================================

func createBillHandler(billSvc *service.BillService, summarySvc *service.SummaryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /payguard/bills")
		defer span.End()

		var req domain.CreateBillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		bill, err := billSvc.Create(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		summarySvc.InvalidateDashboard()

		writeJSON(w, http.StatusOK, bill)
	}
}

func listBillsHandler(billSvc *service.BillService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payguard/bills")
		defer span.End()

		bills, err := billSvc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if bills == nil {
			bills = []domain.Bill{}
		}

		writeJSON(w, http.StatusOK, bills)
	}
}

func payBillHandler(billSvc *service.BillService, summarySvc *service.SummaryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /payguard/bills/{id}/pay")
		defer span.End()

		billID := chi.URLParam(r, "id")

		bill, err := billSvc.Pay(ctx, billID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		summarySvc.InvalidateDashboard()

		writeJSON(w, http.StatusOK, bill)
	}
}

func deleteBillHandler(billSvc *service.BillService, summarySvc *service.SummaryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /payguard/bills/{id}")
		defer span.End()

		billID := chi.URLParam(r, "id")

		bill, err := billSvc.Delete(ctx, billID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		summarySvc.InvalidateDashboard()

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Bill deleted successfully",
			"deletedBill": map[string]string{
				"id":   bill.ID,
				"name": bill.Name,
			},
		})
	}
}
