package service

import (
	"context"
	"time"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/repository"
)

// Transactor runs a function inside one database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(q db.Querier) error) error
}

// ReportStore is the raw shift report store contract.
type ReportStore interface {
	FindByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time, kind domain.ReportKind) (*domain.ShiftReport, error)
	FindByID(ctx context.Context, q db.Querier, id int64) (*domain.ShiftReport, error)
	ListByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time, kind *domain.ReportKind) ([]domain.ShiftReport, error)
	FindLines(ctx context.Context, q db.Querier, reportID int64) ([]domain.FruitLine, error)
	Insert(ctx context.Context, q db.Querier, in repository.CreateReportInput) (int64, error)
	Delete(ctx context.Context, q db.Querier, id int64) error
}

// SummaryStore persists the reconciled aggregate.
type SummaryStore interface {
	Upsert(ctx context.Context, q db.Querier, s domain.DailySummary) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*domain.DailySummary, error)
	GetByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time) (*domain.DailySummary, error)
	DeleteByKey(ctx context.Context, q db.Querier, placeID int64, date time.Time) error
}

// PlaceStore resolves places and place-level grants.
type PlaceStore interface {
	GetByID(ctx context.Context, q db.Querier, id int64) (*domain.Place, error)
	MembershipsFor(ctx context.Context, q db.Querier, userID int64) ([]int64, error)
}

// UserStore resolves submitting users for denormalized summary names.
type UserStore interface {
	GetByID(ctx context.Context, q db.Querier, id int64) (*domain.User, error)
}
