package domain

import "time"

// Enumerations
const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"

	ReportStart ReportKind = "start"
	ReportEnd   ReportKind = "end"
)

type UserRole string
type ReportKind string

// Valid reports whether k is one of the known report kinds.
func (k ReportKind) Valid() bool {
	return k == ReportStart || k == ReportEnd
}

type Place struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID        int64
	Name      string
	Role      UserRole
	CreatedAt time.Time
}

// ShiftReport is one submitted half-day report for a place and date.
// The cash fields are kind-specific: InitialCash is set on start reports,
// DepositedCash and CashForChange on end reports.
type ShiftReport struct {
	ID            int64
	PlaceID       int64
	ReportDate    time.Time
	Kind          ReportKind
	UserID        int64
	ShipmentRef   string
	WorkHours     float64
	InitialCash   *float64
	DepositedCash *float64
	CashForChange *float64
	CreatedAt     time.Time
}

// FruitLine is one fruit's quantity/price row attached to a ShiftReport.
// Which fields are populated depends on the owning report's kind: start
// lines carry InitialQty and PricePerKg, end lines carry RemainingQty,
// WasteQty, PricePerKg and GrossSales.
type FruitLine struct {
	ID           int64
	ReportID     int64
	FruitID      int64
	FruitName    string
	InitialQty   float64
	RemainingQty float64
	WasteQty     float64
	PricePerKg   float64
	GrossSales   float64
}

// FruitSummaryRow is the reconciled per-fruit row inside a DailySummary.
type FruitSummaryRow struct {
	FruitID         int64   `json:"fruit_id"`
	FruitName       string  `json:"fruit_name"`
	InitialQty      float64 `json:"initial_qty"`
	RemainingQty    float64 `json:"remaining_qty"`
	WasteQty        float64 `json:"waste_qty"`
	SoldQty         float64 `json:"sold_qty"`
	StartPrice      float64 `json:"start_price"`
	EndPrice        float64 `json:"end_price"`
	PricePerKg      float64 `json:"price_per_kg"`
	GrossSales      float64 `json:"gross_sales"`
	CalculatedSales float64 `json:"calculated_sales"`
}

// DailySummary is the reconciled aggregate for one (place, date). It is a
// pure function of its two source ShiftReports and is always safe to
// discard and recompute.
type DailySummary struct {
	ID             int64
	PlaceID        int64
	PlaceName      string
	ReportDate     time.Time
	HasStartReport bool
	HasEndReport   bool
	StartReportID  *int64
	EndReportID    *int64
	StartUserName  string
	EndUserName    string
	StartWorkHours float64
	EndWorkHours   float64
	InitialCash    float64
	DepositedCash  float64
	CashForChange  float64
	Fruits         []FruitSummaryRow
	Totals         SummaryTotals
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SummaryTotals are the column-wise sums over a summary's fruit rows.
// SalesVariance is declared gross sales minus calculated sales;
// VarianceFlagged marks it material when its magnitude exceeds 0.01.
type SummaryTotals struct {
	InitialQty      float64 `json:"total_initial_qty"`
	RemainingQty    float64 `json:"total_remaining_qty"`
	WasteQty        float64 `json:"total_waste_qty"`
	SoldQty         float64 `json:"total_sold_qty"`
	GrossSales      float64 `json:"total_gross_sales"`
	CalculatedSales float64 `json:"total_calculated_sales"`
	SalesVariance   float64 `json:"sales_variance"`
	VarianceFlagged bool    `json:"variance_flagged"`
}
