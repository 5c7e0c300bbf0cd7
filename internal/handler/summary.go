package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fruitstand-backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SummaryService is the part of the regeneration service the handler uses.
type SummaryService interface {
	Generate(ctx context.Context, placeID int64, date time.Time) (int64, error)
	Get(ctx context.Context, id int64) (*domain.DailySummary, error)
	GetByKey(ctx context.Context, placeID int64, date time.Time) (*domain.DailySummary, error)
}

// SummaryHandler exposes daily summary generation and lookup.
type SummaryHandler struct {
	Service SummaryService
}

func (h SummaryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/summaries/generate", h.generate)
	r.Get("/summaries/{id}", h.getByID)
	r.Get("/summaries", h.getByKey)
}

func (h SummaryHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaceID    int64  `json:"place_id"`
		ReportDate string `json:"report_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.PlaceID <= 0 {
		writeError(w, http.StatusBadRequest, "place_id is required")
		return
	}
	date, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "report_date must be YYYY-MM-DD")
		return
	}

	id, err := h.Service.Generate(r.Context(), req.PlaceID, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h SummaryHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid summary id")
		return
	}

	summary, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryDTO(summary))
}

func (h SummaryHandler) getByKey(w http.ResponseWriter, r *http.Request) {
	placeID, err := strconv.ParseInt(r.URL.Query().Get("place_id"), 10, 64)
	if err != nil || placeID <= 0 {
		writeError(w, http.StatusBadRequest, "place_id is required")
		return
	}
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	summary, err := h.Service.GetByKey(r.Context(), placeID, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryDTO(summary))
}

// summaryDTO is the wire shape of a persisted summary. Consumers must
// tolerate an empty fruit list.
func summaryDTO(s *domain.DailySummary) map[string]any {
	fruits := s.Fruits
	if fruits == nil {
		fruits = make([]domain.FruitSummaryRow, 0)
	}
	return map[string]any{
		"id":               s.ID,
		"place_id":         s.PlaceID,
		"place_name":       s.PlaceName,
		"report_date":      s.ReportDate.Format("2006-01-02"),
		"has_start_report": s.HasStartReport,
		"has_end_report":   s.HasEndReport,
		"start_report_id":  s.StartReportID,
		"end_report_id":    s.EndReportID,
		"start_user_name":  s.StartUserName,
		"end_user_name":    s.EndUserName,
		"start_work_hours": s.StartWorkHours,
		"end_work_hours":   s.EndWorkHours,
		"initial_cash":     s.InitialCash,
		"deposited_cash":   s.DepositedCash,
		"cash_for_change":  s.CashForChange,
		"fruits":           fruits,
		"totals":           s.Totals,
		"created_at":       s.CreatedAt,
		"updated_at":       s.UpdatedAt,
	}
}
