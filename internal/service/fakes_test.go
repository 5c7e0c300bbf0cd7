package service_test

import (
	"context"
	"fmt"
	"time"

	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/domain"
	"fruitstand-backend/internal/repository"
)

// fakeTx satisfies service.Transactor without a database; the fake stores
// below ignore the querier entirely.
type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(q db.Querier) error) error {
	return fn(nil)
}

// memState is shared in-memory backing data; the typed views below adapt
// it to the individual store interfaces.
type memState struct {
	nextReportID  int64
	nextSummaryID int64
	reports       map[int64]domain.ShiftReport
	lines         map[int64][]domain.FruitLine
	summaries     map[string]domain.DailySummary
	places        map[int64]domain.Place
	users         map[int64]domain.User
	grants        map[int64][]int64
}

func newMemState() *memState {
	return &memState{
		reports:   make(map[int64]domain.ShiftReport),
		lines:     make(map[int64][]domain.FruitLine),
		summaries: make(map[string]domain.DailySummary),
		places:    make(map[int64]domain.Place),
		users:     make(map[int64]domain.User),
		grants:    make(map[int64][]int64),
	}
}

func summaryKey(placeID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", placeID, date.Format("2006-01-02"))
}

type memReportStore struct{ *memState }
type memSummaryStore struct{ *memState }
type memPlaceStore struct{ *memState }
type memUserStore struct{ *memState }

func (m memReportStore) FindByKey(_ context.Context, _ db.Querier, placeID int64, date time.Time, kind domain.ReportKind) (*domain.ShiftReport, error) {
	for _, rep := range m.reports {
		if rep.PlaceID == placeID && rep.ReportDate.Equal(date) && rep.Kind == kind {
			r := rep
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memReportStore) FindByID(_ context.Context, _ db.Querier, id int64) (*domain.ShiftReport, error) {
	rep, ok := m.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rep, nil
}

func (m memReportStore) ListByKey(_ context.Context, _ db.Querier, placeID int64, date time.Time, kind *domain.ReportKind) ([]domain.ShiftReport, error) {
	var out []domain.ShiftReport
	for _, k := range []domain.ReportKind{domain.ReportStart, domain.ReportEnd} {
		if kind != nil && *kind != k {
			continue
		}
		for _, rep := range m.reports {
			if rep.PlaceID == placeID && rep.ReportDate.Equal(date) && rep.Kind == k {
				out = append(out, rep)
			}
		}
	}
	return out, nil
}

func (m memReportStore) FindLines(_ context.Context, _ db.Querier, reportID int64) ([]domain.FruitLine, error) {
	return m.lines[reportID], nil
}

func (m memReportStore) Insert(_ context.Context, _ db.Querier, in repository.CreateReportInput) (int64, error) {
	m.nextReportID++
	id := m.nextReportID
	m.reports[id] = domain.ShiftReport{
		ID:            id,
		PlaceID:       in.PlaceID,
		ReportDate:    in.ReportDate,
		Kind:          in.Kind,
		UserID:        in.UserID,
		ShipmentRef:   in.ShipmentRef,
		WorkHours:     in.WorkHours,
		InitialCash:   in.InitialCash,
		DepositedCash: in.DepositedCash,
		CashForChange: in.CashForChange,
	}
	for _, l := range in.Lines {
		m.lines[id] = append(m.lines[id], domain.FruitLine{
			ReportID:     id,
			FruitID:      l.FruitID,
			FruitName:    l.FruitName,
			InitialQty:   deref(l.InitialQty),
			RemainingQty: deref(l.RemainingQty),
			WasteQty:     deref(l.WasteQty),
			PricePerKg:   deref(l.PricePerKg),
			GrossSales:   deref(l.GrossSales),
		})
	}
	return id, nil
}

func (m memReportStore) Delete(_ context.Context, _ db.Querier, id int64) error {
	if _, ok := m.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.lines, id)
	delete(m.reports, id)
	return nil
}

func (m memSummaryStore) Upsert(_ context.Context, _ db.Querier, s domain.DailySummary) (int64, error) {
	key := summaryKey(s.PlaceID, s.ReportDate)
	if prev, ok := m.summaries[key]; ok {
		s.ID = prev.ID
	} else {
		m.nextSummaryID++
		s.ID = m.nextSummaryID
	}
	m.summaries[key] = s
	return s.ID, nil
}

func (m memSummaryStore) GetByID(_ context.Context, _ db.Querier, id int64) (*domain.DailySummary, error) {
	for _, s := range m.summaries {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memSummaryStore) GetByKey(_ context.Context, _ db.Querier, placeID int64, date time.Time) (*domain.DailySummary, error) {
	s, ok := m.summaries[summaryKey(placeID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m memSummaryStore) DeleteByKey(_ context.Context, _ db.Querier, placeID int64, date time.Time) error {
	delete(m.summaries, summaryKey(placeID, date))
	return nil
}

func (m memPlaceStore) GetByID(_ context.Context, _ db.Querier, id int64) (*domain.Place, error) {
	p, ok := m.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m memPlaceStore) MembershipsFor(_ context.Context, _ db.Querier, userID int64) ([]int64, error) {
	return m.grants[userID], nil
}

func (m memUserStore) GetByID(_ context.Context, _ db.Querier, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
