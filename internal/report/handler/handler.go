package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/auth"
	"github.com/fekuna/omnipos-stock-ledger/internal/report"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: log}
}

func (h *ReportHandler) Register(r *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/reports/inventory", h.InventorySummary).Methods(http.MethodGet)
	api.HandleFunc("/reports/sales", h.SalesSummary).Methods(http.MethodGet)
	api.HandleFunc("/reports/low-stock", h.LowStock).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/stats", h.DashboardStats).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}/reconcile", h.ReconcileItem).Methods(http.MethodGet)
}

func (h *ReportHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{"status": "ok"}})
}

func (h *ReportHandler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	location := auth.FromRequest(r).Scope(r.URL.Query().Get("location"))
	s, err := h.uc.InventorySummary(r.Context(), location)
	if err != nil {
		h.fail(w, "inventory summary", err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: s})
}

func (h *ReportHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseTime(q.Get("from"), false)
	if err != nil {
		h.fail(w, "sales summary", apperror.Validation("invalid from: %v", err))
		return
	}
	to, err := parseTime(q.Get("to"), true)
	if err != nil {
		h.fail(w, "sales summary", apperror.Validation("invalid to: %v", err))
		return
	}

	location := auth.FromRequest(r).Scope(q.Get("location"))
	s, err := h.uc.SalesSummary(r.Context(), location, from, to)
	if err != nil {
		h.fail(w, "sales summary", err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: s})
}

func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	location := auth.FromRequest(r).Scope(r.URL.Query().Get("location"))
	items, err := h.uc.LowStockItems(r.Context(), location)
	if err != nil {
		h.fail(w, "low stock", err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: items})
}

func (h *ReportHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	location := auth.FromRequest(r).Scope(r.URL.Query().Get("location"))
	st, err := h.uc.DashboardStats(r.Context(), location)
	if err != nil {
		h.fail(w, "dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: st})
}

func (h *ReportHandler) ReconcileItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	check, err := h.uc.VerifyItemLedger(r.Context(), id)
	if err != nil {
		h.fail(w, "reconcile item", err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: check})
}

func (h *ReportHandler) fail(w http.ResponseWriter, op string, err error) {
	code := apperror.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("report request failed", zap.String("op", op), zap.Error(err))
	}
	writeJSON(w, code, Response{Success: false, Error: err.Error()})
}

// parseTime accepts RFC 3339 or a plain date. A plain date used as an upper bound covers
// the whole day.
func parseTime(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
