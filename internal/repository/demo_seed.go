package repository

import (
	"context"
	"time"

	"fruitstand-backend/internal/domain"
)

// SeedDemo inserts one reconcilable sample day (a start and an end report
// with matching fruit lines) for development environments. Skipped when
// any report already exists.
func (r ShiftReportRepository) SeedDemo(ctx context.Context) error {
	var count int
	if err := r.DB.Pool.QueryRow(ctx, `SELECT count(*) FROM shift_reports`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var placeID int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT id FROM places ORDER BY id ASC LIMIT 1`).Scan(&placeID)
	if err != nil {
		return err
	}

	var startUserID, endUserID int64
	if err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (name, role) VALUES ('Ania Kowalska', 'staff') RETURNING id
	`).Scan(&startUserID); err != nil {
		return err
	}
	if err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (name, role) VALUES ('Bartek Nowak', 'staff') RETURNING id
	`).Scan(&endUserID); err != nil {
		return err
	}

	date := time.Now().AddDate(0, 0, -1)
	f := func(v float64) *float64 { return &v }

	_, err = r.Insert(ctx, r.DB.Pool, CreateReportInput{
		PlaceID:     placeID,
		ReportDate:  date,
		Kind:        domain.ReportStart,
		UserID:      startUserID,
		ShipmentRef: "SHIP-0001",
		WorkHours:   8,
		InitialCash: f(200),
		Lines: []CreateLineInput{
			{FruitID: 1, FruitName: "truskawka", InitialQty: f(10), PricePerKg: f(12)},
			{FruitID: 2, FruitName: "malina", InitialQty: f(6.5), PricePerKg: f(24)},
		},
	})
	if err != nil {
		return err
	}

	_, err = r.Insert(ctx, r.DB.Pool, CreateReportInput{
		PlaceID:       placeID,
		ReportDate:    date,
		Kind:          domain.ReportEnd,
		UserID:        endUserID,
		ShipmentRef:   "SHIP-0001",
		WorkHours:     7.5,
		DepositedCash: f(350),
		CashForChange: f(50),
		Lines: []CreateLineInput{
			{FruitID: 1, FruitName: "truskawka", RemainingQty: f(2), WasteQty: f(1), PricePerKg: f(12), GrossSales: f(84)},
			{FruitID: 2, FruitName: "malina", RemainingQty: f(0.5), WasteQty: f(0.25), PricePerKg: f(26), GrossSales: f(140)},
		},
	})
	return err
}
