// Package report computes sales summaries and chart series from orders and products.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"pos_service/internal/domain"
)

// MaxTopProducts caps the number of top products kept in a report.
const MaxTopProducts = 10

type productTotals struct {
	id       string
	name     string
	quantity int
	revenue  decimal.Decimal
}

// Generate builds a report over the orders created inside r (inclusive).
// Line items are grouped by product id, or by product name for items without one.
func Generate(id string, typ domain.ReportType, r domain.DateRange, orders []domain.Order, products []domain.Product, generatedAt time.Time) domain.ReportData {
	rep := domain.ReportData{
		ID:           id,
		Type:         typ,
		DateRange:    r,
		TotalRevenue: decimal.Zero,
		TopProducts:  []domain.TopProduct{},
		GeneratedAt:  generatedAt,
	}

	var (
		order  []string
		totals = make(map[string]*productTotals)
	)
	for _, o := range orders {
		if !r.Contains(o.CreatedAt) {
			continue
		}
		rep.TotalOrders++
		rep.TotalRevenue = rep.TotalRevenue.Add(o.Total)

		for _, item := range o.Items {
			key := item.ProductID
			if key == "" {
				key = "name:" + item.ProductName
			}
			t, ok := totals[key]
			if !ok {
				t = &productTotals{id: item.ProductID, name: item.ProductName, revenue: decimal.Zero}
				totals[key] = t
				order = append(order, key)
			}
			t.quantity += item.Quantity
			t.revenue = t.revenue.Add(item.TotalPrice)
			rep.TotalProductsSold += item.Quantity
		}
	}

	ranked := make([]*productTotals, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, totals[key])
	}
	slices.SortStableFunc(ranked, func(a, b *productTotals) int {
		return b.revenue.Cmp(a.revenue)
	})
	if len(ranked) > MaxTopProducts {
		ranked = ranked[:MaxTopProducts]
	}

	categories := categoriesByID(products)
	for _, t := range ranked {
		rep.TopProducts = append(rep.TopProducts, domain.TopProduct{
			ProductID: t.id,
			Name:      t.name,
			Quantity:  t.quantity,
			Revenue:   t.revenue,
			Category:  categories[t.id],
		})
	}
	return rep
}

func categoriesByID(products []domain.Product) map[string]string {
	m := make(map[string]string, len(products))
	for _, p := range products {
		m[p.ID] = p.Category
	}
	return m
}

// Latest returns the report with the most recent generatedAt.
func Latest(reports []domain.ReportData) (domain.ReportData, bool) {
	if len(reports) == 0 {
		return domain.ReportData{}, false
	}
	latest := reports[0]
	for _, r := range reports[1:] {
		if r.GeneratedAt.After(latest.GeneratedAt) {
			latest = r
		}
	}
	return latest, true
}
