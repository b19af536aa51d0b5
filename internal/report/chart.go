package report

import (
	"github.com/shopspring/decimal"

	"pos_service/internal/domain"
)

const (
	// AllCategories disables category filtering in Summarize.
	AllCategories = "All"
	// FallbackCategory labels top products recorded without a category.
	FallbackCategory = "Popular Items"
)

// DemoChartData is shown while no report has been generated yet.
func DemoChartData() []domain.ChartPoint {
	return []domain.ChartPoint{
		{Name: "Fried rice", Value: decimal.NewFromInt(1200), Category: "Main Course"},
		{Name: "Banku", Value: decimal.NewFromInt(800), Category: "Main Course"},
		{Name: "Fufu", Value: decimal.NewFromInt(500), Category: "Main Course"},
		{Name: "Plain rice", Value: decimal.NewFromInt(1000), Category: "Side"},
	}
}

// ChartData maps the top products of rep to chart points valued by revenue.
func ChartData(rep domain.ReportData) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(rep.TopProducts))
	for _, p := range rep.TopProducts {
		category := p.Category
		if category == "" {
			category = FallbackCategory
		}
		points = append(points, domain.ChartPoint{Name: p.Name, Value: p.Revenue, Category: category})
	}
	return points
}

func FilterByCategory(points []domain.ChartPoint, category string) []domain.ChartPoint {
	if category == "" || category == AllCategories {
		return points
	}
	filtered := make([]domain.ChartPoint, 0, len(points))
	for _, p := range points {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Summarize computes the headline figures for the points in category.
func Summarize(points []domain.ChartPoint, category string) domain.ChartSummary {
	points = FilterByCategory(points, category)
	summary := domain.ChartSummary{TotalItems: len(points), TotalValue: decimal.Zero}
	seen := make(map[string]struct{})
	for _, p := range points {
		seen[p.Category] = struct{}{}
		if p.Value.IsPositive() {
			summary.ActiveItems++
		}
		summary.TotalValue = summary.TotalValue.Add(p.Value)
	}
	summary.Categories = len(seen)
	return summary
}
