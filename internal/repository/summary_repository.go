package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// SummaryRepository persists the reconciled daily aggregate, one row per
// (place, date). The fruit rows travel as a typed JSONB array.
type SummaryRepository struct {
	DB *db.Postgres
}

const summaryColumns = `id, place_id, report_date, place_name, has_start_report, has_end_report,
	start_report_id, end_report_id, start_user_name, end_user_name,
	start_work_hours, end_work_hours, initial_cash, deposited_cash, cash_for_change,
	fruits, total_initial_qty, total_remaining_qty, total_waste_qty, total_sold_qty,
	total_gross_sales, total_calculated_sales, sales_variance, variance_flagged,
	created_at, updated_at`

// Upsert writes the summary atomically: the unique (place_id, report_date)
// index plus ON CONFLICT makes concurrent generates for one key serialize
// on the row instead of double-inserting.
func (r SummaryRepository) Upsert(ctx context.Context, q db.Querier, s domain.DailySummary) (int64, error) {
	fruits, err := json.Marshal(s.Fruits)
	if err != nil {
		return 0, fmt.Errorf("marshal fruit rows: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, `
		INSERT INTO daily_summaries
		(place_id, report_date, place_name, has_start_report, has_end_report,
		 start_report_id, end_report_id, start_user_name, end_user_name,
		 start_work_hours, end_work_hours, initial_cash, deposited_cash, cash_for_change,
		 fruits, total_initial_qty, total_remaining_qty, total_waste_qty, total_sold_qty,
		 total_gross_sales, total_calculated_sales, sales_variance, variance_flagged,
		 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23, now(), now())
		ON CONFLICT (place_id, report_date) DO UPDATE SET
			place_name             = EXCLUDED.place_name,
			has_start_report       = EXCLUDED.has_start_report,
			has_end_report         = EXCLUDED.has_end_report,
			start_report_id        = EXCLUDED.start_report_id,
			end_report_id          = EXCLUDED.end_report_id,
			start_user_name        = EXCLUDED.start_user_name,
			end_user_name          = EXCLUDED.end_user_name,
			start_work_hours       = EXCLUDED.start_work_hours,
			end_work_hours         = EXCLUDED.end_work_hours,
			initial_cash           = EXCLUDED.initial_cash,
			deposited_cash         = EXCLUDED.deposited_cash,
			cash_for_change        = EXCLUDED.cash_for_change,
			fruits                 = EXCLUDED.fruits,
			total_initial_qty      = EXCLUDED.total_initial_qty,
			total_remaining_qty    = EXCLUDED.total_remaining_qty,
			total_waste_qty        = EXCLUDED.total_waste_qty,
			total_sold_qty         = EXCLUDED.total_sold_qty,
			total_gross_sales      = EXCLUDED.total_gross_sales,
			total_calculated_sales = EXCLUDED.total_calculated_sales,
			sales_variance         = EXCLUDED.sales_variance,
			variance_flagged       = EXCLUDED.variance_flagged,
			updated_at             = now()
		RETURNING id
	`, s.PlaceID, s.ReportDate.Format("2006-01-02"), s.PlaceName, s.HasStartReport, s.HasEndReport,
		s.StartReportID, s.EndReportID, s.StartUserName, s.EndUserName,
		s.StartWorkHours, s.EndWorkHours, s.InitialCash, s.DepositedCash, s.CashForChange,
		fruits, s.Totals.InitialQty, s.Totals.RemainingQty, s.Totals.WasteQty, s.Totals.SoldQty,
		s.Totals.GrossSales, s.Totals.CalculatedSales, s.Totals.SalesVariance, s.Totals.VarianceFlagged).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns one summary, or ErrNotFound.
func (r SummaryRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*domain.DailySummary, error) {
	row := q.QueryRow(ctx, `SELECT `+summaryColumns+` FROM daily_summaries WHERE id=$1`, id)
	return scanSummary(row)
}

// GetByKey returns the summary for (place, date), or ErrNotFound.
func (r SummaryRepository) GetByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time) (*domain.DailySummary, error) {
	row := q.QueryRow(ctx, `
		SELECT `+summaryColumns+` FROM daily_summaries WHERE place_id=$1 AND report_date=$2
	`, placeID, date.Format("2006-01-02"))
	return scanSummary(row)
}

// DeleteByKey removes the summary for (place, date) if present.
func (r SummaryRepository) DeleteByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time) error {
	_, err := q.Exec(ctx, `
		DELETE FROM daily_summaries WHERE place_id=$1 AND report_date=$2
	`, placeID, date.Format("2006-01-02"))
	return err
}

func scanSummary(row pgx.Row) (*domain.DailySummary, error) {
	var s domain.DailySummary
	var startReportID, endReportID pgtype.Int8
	var fruits []byte
	err := row.Scan(&s.ID, &s.PlaceID, &s.ReportDate, &s.PlaceName, &s.HasStartReport, &s.HasEndReport,
		&startReportID, &endReportID, &s.StartUserName, &s.EndUserName,
		&s.StartWorkHours, &s.EndWorkHours, &s.InitialCash, &s.DepositedCash, &s.CashForChange,
		&fruits, &s.Totals.InitialQty, &s.Totals.RemainingQty, &s.Totals.WasteQty, &s.Totals.SoldQty,
		&s.Totals.GrossSales, &s.Totals.CalculatedSales, &s.Totals.SalesVariance, &s.Totals.VarianceFlagged,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if startReportID.Valid {
		s.StartReportID = &startReportID.Int64
	}
	if endReportID.Valid {
		s.EndReportID = &endReportID.Int64
	}
	s.Fruits = make([]domain.FruitSummaryRow, 0)
	if len(fruits) > 0 {
		if err := json.Unmarshal(fruits, &s.Fruits); err != nil {
			return nil, fmt.Errorf("unmarshal fruit rows: %w", err)
		}
	}
	return &s, nil
}
