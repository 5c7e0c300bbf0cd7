package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/server/authctx"
	"fruitstand-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// ReportDeleter is the part of the deletion service the handler uses.
type ReportDeleter interface {
	DeleteReport(ctx context.Context, reportID int64, actor service.Actor) (*service.DeletedReport, error)
	DeleteByKey(ctx context.Context, placeID int64, date time.Time, kind *domain.ReportKind, actor service.Actor) ([]int64, error)
}

// ReportHandler exposes raw shift report deletion.
type ReportHandler struct {
	Service ReportDeleter
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/reports/{id}", h.deleteOne)
	r.Delete("/reports", h.deleteByKey)
}

func (h ReportHandler) deleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	actor, ok := currentActor(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	deleted, err := h.Service.DeleteReport(r.Context(), id, actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted_ids": []int64{deleted.ID},
		"place_id":    deleted.PlaceID,
		"report_date": deleted.ReportDate.Format("2006-01-02"),
		"kind":        deleted.Kind,
	})
}

func (h ReportHandler) deleteByKey(w http.ResponseWriter, r *http.Request) {
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
	var kind *domain.ReportKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k := domain.ReportKind(raw)
		if !k.Valid() {
			writeError(w, http.StatusBadRequest, "kind must be start or end")
			return
		}
		kind = &k
	}
	actor, ok := currentActor(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	ids, err := h.Service.DeleteByKey(r.Context(), placeID, date, kind, actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted_ids": ids})
}

func currentActor(r *http.Request) (service.Actor, bool) {
	u := authctx.FromContext(r.Context())
	if u == nil {
		return service.Actor{}, false
	}
	return service.Actor{UserID: u.ID, Role: u.Role}, true
}
