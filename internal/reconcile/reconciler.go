// Package reconcile merges the two half-day shift reports of one
// (place, date) into a single DailySummary. It is pure: no I/O, no clock,
// deterministic output for identical input.
package reconcile

import (
	"math"
	"sort"

	"fruitstand-backend/internal/domain"
)

const (
	// quantityEpsilon absorbs float noise in quantity arithmetic.
	quantityEpsilon = 1e-9
	// varianceThreshold is the magnitude above which the gap between
	// declared and calculated sales is flagged as material.
	varianceThreshold = 0.01
)

// Input carries the raw reports and lines plus the denormalized names the
// summary snapshots. Either report may be nil when that half of the day has
// not been submitted.
type Input struct {
	StartReport   *domain.ShiftReport
	StartLines    []domain.FruitLine
	EndReport     *domain.ShiftReport
	EndLines      []domain.FruitLine
	PlaceName     string
	StartUserName string
	EndUserName   string
}

type joined struct {
	fruitID int64
	start   *domain.FruitLine
	end     *domain.FruitLine
}

// Reconcile outer-joins the per-fruit lines, derives sold quantities and
// sales figures, and returns an unpersisted DailySummary snapshot.
//
// A fruit may legitimately appear on only one side; the missing side is
// zero-filled. A negative derived sold quantity (remaining + waste
// exceeding the initial count) fails the whole reconciliation: the engine
// never fabricates a positive sale from bad data and no partial summary is
// produced.
func Reconcile(in Input) (domain.DailySummary, error) {
	if in.StartReport == nil && in.EndReport == nil {
		return domain.DailySummary{}, domain.NotFoundf("no shift reports to reconcile")
	}

	summary := domain.DailySummary{
		PlaceName:      in.PlaceName,
		HasStartReport: in.StartReport != nil,
		HasEndReport:   in.EndReport != nil,
		StartUserName:  in.StartUserName,
		EndUserName:    in.EndUserName,
		Fruits:         make([]domain.FruitSummaryRow, 0),
	}

	if in.StartReport != nil {
		summary.PlaceID = in.StartReport.PlaceID
		summary.ReportDate = in.StartReport.ReportDate
		summary.StartReportID = &in.StartReport.ID
		summary.StartWorkHours = in.StartReport.WorkHours
		if in.StartReport.InitialCash != nil {
			summary.InitialCash = *in.StartReport.InitialCash
		}
	}
	if in.EndReport != nil {
		summary.PlaceID = in.EndReport.PlaceID
		summary.ReportDate = in.EndReport.ReportDate
		summary.EndReportID = &in.EndReport.ID
		summary.EndWorkHours = in.EndReport.WorkHours
		if in.EndReport.DepositedCash != nil {
			summary.DepositedCash = *in.EndReport.DepositedCash
		}
		if in.EndReport.CashForChange != nil {
			summary.CashForChange = *in.EndReport.CashForChange
		}
	}

	for _, j := range join(in.StartLines, in.EndLines) {
		row, err := buildRow(j, in.EndReport != nil)
		if err != nil {
			return domain.DailySummary{}, err
		}

		summary.Fruits = append(summary.Fruits, row)
		summary.Totals.InitialQty += row.InitialQty
		summary.Totals.RemainingQty += row.RemainingQty
		summary.Totals.WasteQty += row.WasteQty
		summary.Totals.SoldQty += row.SoldQty
		summary.Totals.GrossSales += row.GrossSales
		summary.Totals.CalculatedSales += row.CalculatedSales
	}

	summary.Totals.SalesVariance = summary.Totals.GrossSales - summary.Totals.CalculatedSales
	summary.Totals.VarianceFlagged = math.Abs(summary.Totals.SalesVariance) > varianceThreshold

	return summary, nil
}

// join pairs start and end lines by fruit id, ordered by fruit id ascending
// so that reconciliation output is stable across reruns.
func join(startLines, endLines []domain.FruitLine) []joined {
	byFruit := make(map[int64]*joined)
	for i := range startLines {
		l := &startLines[i]
		byFruit[l.FruitID] = &joined{fruitID: l.FruitID, start: l}
	}
	for i := range endLines {
		l := &endLines[i]
		if j, ok := byFruit[l.FruitID]; ok {
			j.end = l
			continue
		}
		byFruit[l.FruitID] = &joined{fruitID: l.FruitID, end: l}
	}

	out := make([]joined, 0, len(byFruit))
	for _, j := range byFruit {
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].fruitID < out[b].fruitID })
	return out
}

func buildRow(j joined, endReported bool) (domain.FruitSummaryRow, error) {
	row := domain.FruitSummaryRow{FruitID: j.fruitID}

	if j.start != nil {
		row.FruitName = j.start.FruitName
		row.InitialQty = j.start.InitialQty
		row.StartPrice = j.start.PricePerKg
	}
	if j.end != nil {
		if row.FruitName == "" {
			row.FruitName = j.end.FruitName
		}
		row.RemainingQty = j.end.RemainingQty
		row.WasteQty = j.end.WasteQty
		row.EndPrice = j.end.PricePerKg
		row.GrossSales = j.end.GrossSales
	}

	switch {
	case j.start != nil && j.end != nil:
		row.PricePerKg = (row.StartPrice + row.EndPrice) / 2
	case j.start != nil:
		row.PricePerKg = row.StartPrice
	default:
		row.PricePerKg = row.EndPrice
	}

	// Without the end count the day's movement cannot be derived; the row
	// keeps its start-side figures and reports zero sales.
	if !endReported {
		return row, nil
	}

	sold := row.InitialQty - row.RemainingQty - row.WasteQty
	if sold < -quantityEpsilon {
		return domain.FruitSummaryRow{}, domain.Validationf(
			"fruit %q: remaining (%g) plus waste (%g) exceeds initial quantity (%g)",
			row.FruitName, row.RemainingQty, row.WasteQty, row.InitialQty)
	}
	if sold < 0 {
		sold = 0
	}
	row.SoldQty = sold
	row.CalculatedSales = sold * row.PricePerKg

	return row, nil
}
