package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/metrics"
	"fruitstand-backend/internal/repository"
)

// DeletionService removes raw shift reports under the three-tier
// permission check and refreshes the now-stale daily summary in the same
// transaction: regenerated from the surviving reports when possible,
// deleted when nothing reconcilable remains.
type DeletionService struct {
	DB        Transactor
	Reports   ReportStore
	Summaries SummaryStore
	Places    PlaceStore
	Users     UserStore
	Logger    *slog.Logger
}

// DeletedReport carries the key fields of a removed report.
type DeletedReport struct {
	ID         int64
	PlaceID    int64
	ReportDate time.Time
	Kind       domain.ReportKind
}

// DeleteReport removes one report (lines first, then the row) after the
// permission tiers allow it.
func (s DeletionService) DeleteReport(ctx context.Context, reportID int64, actor Actor) (*DeletedReport, error) {
	var deleted *DeletedReport
	err := s.DB.WithTx(ctx, func(q db.Querier) error {
		rep, err := s.Reports.FindByID(ctx, q, reportID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("report %d not found", reportID)
			}
			return err
		}

		req, err := s.requester(ctx, q, actor)
		if err != nil {
			return err
		}
		if !CanDeleteReport(req, *rep) {
			return domain.Forbiddenf("user %d may not delete report %d", actor.UserID, reportID)
		}

		if err := s.Reports.Delete(ctx, q, rep.ID); err != nil {
			return err
		}
		deleted = &DeletedReport{ID: rep.ID, PlaceID: rep.PlaceID, ReportDate: rep.ReportDate, Kind: rep.Kind}

		return s.refreshSummary(ctx, q, rep.PlaceID, rep.ReportDate)
	})
	if err != nil {
		return nil, coerceErr(err)
	}

	metrics.ReportsDeleted.Inc()
	s.Logger.Info("shift report deleted", "report_id", deleted.ID,
		"place_id", deleted.PlaceID, "kind", deleted.Kind, "user_id", actor.UserID)
	return deleted, nil
}

// DeleteByKey removes the reports matching (place, date) and optionally
// one kind, filtered to those the actor may delete. An empty filtered set
// fails with not found.
func (s DeletionService) DeleteByKey(ctx context.Context, placeID int64, date time.Time, kind *domain.ReportKind, actor Actor) ([]int64, error) {
	var deletedIDs []int64
	err := s.DB.WithTx(ctx, func(q db.Querier) error {
		candidates, err := s.Reports.ListByKey(ctx, q, placeID, date, kind)
		if err != nil {
			return err
		}

		req, err := s.requester(ctx, q, actor)
		if err != nil {
			return err
		}
		var allowed []domain.ShiftReport
		for _, rep := range candidates {
			if CanDeleteReport(req, rep) {
				allowed = append(allowed, rep)
			}
		}
		if len(allowed) == 0 {
			return domain.NotFoundf("no deletable reports for place %d on %s",
				placeID, date.Format("2006-01-02"))
		}

		for _, rep := range allowed {
			if err := s.Reports.Delete(ctx, q, rep.ID); err != nil {
				return err
			}
			deletedIDs = append(deletedIDs, rep.ID)
		}

		return s.refreshSummary(ctx, q, placeID, date)
	})
	if err != nil {
		return nil, coerceErr(err)
	}

	metrics.ReportsDeleted.Add(float64(len(deletedIDs)))
	s.Logger.Info("shift reports deleted by key", "place_id", placeID,
		"date", date.Format("2006-01-02"), "count", len(deletedIDs), "user_id", actor.UserID)
	return deletedIDs, nil
}

func (s DeletionService) requester(ctx context.Context, q db.Querier, actor Actor) (Requester, error) {
	grants, err := s.Places.MembershipsFor(ctx, q, actor.UserID)
	if err != nil {
		return Requester{}, err
	}
	return NewRequester(actor, grants), nil
}

// refreshSummary recomputes the key's summary from whatever reports
// survived the deletion. Best-effort: when nothing remains, or the
// remaining data no longer reconciles, the stale summary row is dropped
// instead of failing the deletion.
func (s DeletionService) refreshSummary(ctx context.Context, q db.Querier, placeID int64, date time.Time) error {
	summary, err := reconcileKey(ctx, q, s.Reports, s.Places, s.Users, placeID, date)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindNotFound:
			return s.Summaries.DeleteByKey(ctx, q, placeID, date)
		case domain.KindValidation:
			s.Logger.Warn("surviving reports no longer reconcile, dropping stale summary",
				"place_id", placeID, "date", date.Format("2006-01-02"), "err", err)
			return s.Summaries.DeleteByKey(ctx, q, placeID, date)
		default:
			return err
		}
	}
	_, err = s.Summaries.Upsert(ctx, q, summary)
	return err
}
