package repository

import (
	"context"
	"errors"
	"time"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ShiftReportRepository reads and writes raw shift reports and their fruit
// lines. Methods take a db.Querier so they can participate in a
// caller-supplied transaction; no business rules live here.
type ShiftReportRepository struct {
	DB *db.Postgres
}

const shiftReportColumns = `id, place_id, report_date, kind, user_id, shipment_ref,
	work_hours, initial_cash, deposited_cash, cash_for_change, created_at`

// FindByKey returns the report of the given kind for (place, date), or
// ErrNotFound.
func (r ShiftReportRepository) FindByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time, kind domain.ReportKind) (*domain.ShiftReport, error) {
	row := q.QueryRow(ctx, `
		SELECT `+shiftReportColumns+`
		FROM shift_reports
		WHERE place_id=$1 AND report_date=$2 AND kind=$3
	`, placeID, date.Format("2006-01-02"), kind)
	return scanShiftReport(row)
}

// FindByID returns one report by id, or ErrNotFound.
func (r ShiftReportRepository) FindByID(ctx context.Context, q db.Querier, id int64) (*domain.ShiftReport, error) {
	row := q.QueryRow(ctx, `
		SELECT `+shiftReportColumns+`
		FROM shift_reports
		WHERE id=$1
	`, id)
	return scanShiftReport(row)
}

// ListByKey returns all reports for (place, date), optionally narrowed to
// one kind, ordered by kind so start precedes end.
func (r ShiftReportRepository) ListByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time, kind *domain.ReportKind) ([]domain.ShiftReport, error) {
	query := `
		SELECT ` + shiftReportColumns + `
		FROM shift_reports
		WHERE place_id=$1 AND report_date=$2
	`
	args := []any{placeID, date.Format("2006-01-02")}
	if kind != nil {
		query += ` AND kind=$3`
		args = append(args, *kind)
	}
	query += ` ORDER BY kind DESC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.ShiftReport
	for rows.Next() {
		rep, err := scanShiftReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

// FindLines returns the fruit lines of one report ordered by fruit id.
func (r ShiftReportRepository) FindLines(ctx context.Context, q db.Querier, reportID int64) ([]domain.FruitLine, error) {
	rows, err := q.Query(ctx, `
		SELECT id, report_id, fruit_id, fruit_name, initial_qty, remaining_qty,
		       waste_qty, price_per_kg, gross_sales
		FROM fruit_lines
		WHERE report_id=$1
		ORDER BY fruit_id ASC
	`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.FruitLine
	for rows.Next() {
		var l domain.FruitLine
		var initial, remaining, waste, price, gross pgtype.Float8
		if err := rows.Scan(&l.ID, &l.ReportID, &l.FruitID, &l.FruitName,
			&initial, &remaining, &waste, &price, &gross); err != nil {
			return nil, err
		}
		l.InitialQty = initial.Float64
		l.RemainingQty = remaining.Float64
		l.WasteQty = waste.Float64
		l.PricePerKg = price.Float64
		l.GrossSales = gross.Float64
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

type CreateReportInput struct {
	PlaceID       int64
	ReportDate    time.Time
	Kind          domain.ReportKind
	UserID        int64
	ShipmentRef   string
	WorkHours     float64
	InitialCash   *float64
	DepositedCash *float64
	CashForChange *float64
	Lines         []CreateLineInput
}

type CreateLineInput struct {
	FruitID      int64
	FruitName    string
	InitialQty   *float64
	RemainingQty *float64
	WasteQty     *float64
	PricePerKg   *float64
	GrossSales   *float64
}

// Insert writes a report and its lines. The (place, date, kind) unique
// index surfaces duplicates as a unique-violation error.
func (r ShiftReportRepository) Insert(ctx context.Context, q db.Querier, in CreateReportInput) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO shift_reports
		(place_id, report_date, kind, user_id, shipment_ref, work_hours,
		 initial_cash, deposited_cash, cash_for_change, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, now())
		RETURNING id
	`, in.PlaceID, in.ReportDate.Format("2006-01-02"), in.Kind, in.UserID, in.ShipmentRef,
		in.WorkHours, in.InitialCash, in.DepositedCash, in.CashForChange).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, line := range in.Lines {
		_, err := q.Exec(ctx, `
			INSERT INTO fruit_lines
			(report_id, fruit_id, fruit_name, initial_qty, remaining_qty, waste_qty, price_per_kg, gross_sales)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, id, line.FruitID, line.FruitName, line.InitialQty, line.RemainingQty,
			line.WasteQty, line.PricePerKg, line.GrossSales)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Delete removes a report's fruit lines and then the report row itself.
func (r ShiftReportRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM fruit_lines WHERE report_id=$1`, id); err != nil {
		return err
	}
	tag, err := q.Exec(ctx, `DELETE FROM shift_reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShiftReport(row pgx.Row) (*domain.ShiftReport, error) {
	var rep domain.ShiftReport
	var initialCash, depositedCash, cashForChange pgtype.Float8
	err := row.Scan(&rep.ID, &rep.PlaceID, &rep.ReportDate, &rep.Kind, &rep.UserID,
		&rep.ShipmentRef, &rep.WorkHours, &initialCash, &depositedCash, &cashForChange,
		&rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if initialCash.Valid {
		rep.InitialCash = &initialCash.Float64
	}
	if depositedCash.Valid {
		rep.DepositedCash = &depositedCash.Float64
	}
	if cashForChange.Valid {
		rep.CashForChange = &cashForChange.Float64
	}
	return &rep, nil
}
