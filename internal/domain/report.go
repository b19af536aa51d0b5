package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
	ReportYearly  ReportType = "yearly"
)

func IsValidReportType(t ReportType) bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportMonthly, ReportYearly:
		return true
	default:
		return false
	}
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmtInvalid("date range start and end are required")
	}
	if r.End.Before(r.Start) {
		return fmtInvalid("date range start must not be after end")
	}
	return nil
}

type TopProduct struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Category  string          `json:"category,omitempty"`
}

type ReportData struct {
	ID                string          `json:"id"`
	Type              ReportType      `json:"type"`
	DateRange         DateRange       `json:"dateRange"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalProductsSold int             `json:"totalProductsSold"`
	TopProducts       []TopProduct    `json:"topProducts"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

func (r ReportData) Key() string { return r.ID }

func (r ReportData) Clone() ReportData {
	r.TopProducts = slices.Clone(r.TopProducts)
	return r
}

type ChartPoint struct {
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Category string          `json:"category"`
}

type ChartSummary struct {
	TotalItems  int             `json:"totalItems"`
	Categories  int             `json:"categories"`
	ActiveItems int             `json:"activeItems"`
	TotalValue  decimal.Decimal `json:"totalValue"`
}
