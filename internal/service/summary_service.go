package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/metrics"
	"fruitstand-backend/internal/reconcile"
	"fruitstand-backend/internal/repository"
)

// SummaryService orchestrates summary (re)generation: load the raw reports,
// run the reconciler, upsert the aggregate, all inside one transaction. The
// underlying shift reports are never mutated here.
type SummaryService struct {
	DB        Transactor
	Reports   ReportStore
	Summaries SummaryStore
	Places    PlaceStore
	Users     UserStore
	Logger    *slog.Logger
}

// Generate reconciles the (place, date) key and upserts its DailySummary,
// returning the persisted summary id. Calling it again with unchanged
// source reports rewrites identical content; there is no terminal state.
func (s SummaryService) Generate(ctx context.Context, placeID int64, date time.Time) (int64, error) {
	var id int64
	err := s.DB.WithTx(ctx, func(q db.Querier) error {
		summary, err := reconcileKey(ctx, q, s.Reports, s.Places, s.Users, placeID, date)
		if err != nil {
			return err
		}
		id, err = s.Summaries.Upsert(ctx, q, summary)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return domain.Conflictf("summary for place %d on %s already being written",
					placeID, date.Format("2006-01-02"))
			}
			return err
		}
		return nil
	})
	if err != nil {
		err = coerceErr(err)
		metrics.GenerateTotal.WithLabelValues(string(domain.KindOf(err))).Inc()
		return 0, err
	}

	metrics.GenerateTotal.WithLabelValues("ok").Inc()
	s.Logger.Info("daily summary generated", "place_id", placeID,
		"date", date.Format("2006-01-02"), "summary_id", id)
	return id, nil
}

// Get fetches a persisted summary by id without recomputing.
func (s SummaryService) Get(ctx context.Context, id int64) (*domain.DailySummary, error) {
	var summary *domain.DailySummary
	err := s.DB.WithTx(ctx, func(q db.Querier) error {
		var err error
		summary, err = s.Summaries.GetByID(ctx, q, id)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFoundf("summary %d not found", id)
		}
		return err
	})
	if err != nil {
		return nil, coerceErr(err)
	}
	return summary, nil
}

// GetByKey fetches the persisted summary for (place, date) without
// recomputing.
func (s SummaryService) GetByKey(ctx context.Context, placeID int64, date time.Time) (*domain.DailySummary, error) {
	var summary *domain.DailySummary
	err := s.DB.WithTx(ctx, func(q db.Querier) error {
		var err error
		summary, err = s.Summaries.GetByKey(ctx, q, placeID, date)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFoundf("no summary for place %d on %s", placeID, date.Format("2006-01-02"))
		}
		return err
	})
	if err != nil {
		return nil, coerceErr(err)
	}
	return summary, nil
}

// reconcileKey loads both half-day reports for the key and runs the pure
// reconciler, returning the unpersisted summary. Shared by generation and
// the post-deletion refresh.
func reconcileKey(ctx context.Context, q db.Querier, reports ReportStore, places PlaceStore, users UserStore, placeID int64, date time.Time) (domain.DailySummary, error) {
	place, err := places.GetByID(ctx, q, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DailySummary{}, domain.NotFoundf("place %d not found", placeID)
		}
		return domain.DailySummary{}, err
	}

	in := reconcile.Input{PlaceName: place.Name}

	in.StartReport, err = findOptional(ctx, q, reports, placeID, date, domain.ReportStart)
	if err != nil {
		return domain.DailySummary{}, err
	}
	in.EndReport, err = findOptional(ctx, q, reports, placeID, date, domain.ReportEnd)
	if err != nil {
		return domain.DailySummary{}, err
	}
	if in.StartReport == nil && in.EndReport == nil {
		return domain.DailySummary{}, domain.NotFoundf("no shift reports for place %d on %s",
			placeID, date.Format("2006-01-02"))
	}

	if in.StartReport != nil {
		if in.StartLines, err = reports.FindLines(ctx, q, in.StartReport.ID); err != nil {
			return domain.DailySummary{}, err
		}
		in.StartUserName = userName(ctx, q, users, in.StartReport.UserID)
	}
	if in.EndReport != nil {
		if in.EndLines, err = reports.FindLines(ctx, q, in.EndReport.ID); err != nil {
			return domain.DailySummary{}, err
		}
		in.EndUserName = userName(ctx, q, users, in.EndReport.UserID)
	}

	return reconcile.Reconcile(in)
}

func findOptional(ctx context.Context, q db.Querier, reports ReportStore, placeID int64, date time.Time, kind domain.ReportKind) (*domain.ShiftReport, error) {
	rep, err := reports.FindByKey(ctx, q, placeID, date, kind)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rep, err
}

// userName tolerates a missing submitter row; the summary then carries an
// empty name rather than failing.
func userName(ctx context.Context, q db.Querier, users UserStore, id int64) string {
	u, err := users.GetByID(ctx, q, id)
	if err != nil {
		return ""
	}
	return u.Name
}

// coerceErr keeps kinded domain errors and wraps everything else as a
// storage failure.
func coerceErr(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.StorageErr(err)
}
