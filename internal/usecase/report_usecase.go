package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/idgen"
	"pos_service/internal/latency"
	"pos_service/internal/report"
	"pos_service/internal/state"
)

type ReportUseCase struct {
	reports *collection[domain.ReportData]
	ids     idgen.Generator
	now     func() time.Time
	log     *logrus.Logger
}

func NewReportUseCase(deps Deps) *ReportUseCase {
	deps = deps.withDefaults()
	return &ReportUseCase{
		reports: newCollection[domain.ReportData](domain.KeyReports, "reports", deps),
		ids:     deps.IDs,
		now:     deps.Now,
		log:     deps.Log,
	}
}

func (uc *ReportUseCase) Load(ctx context.Context) error {
	return uc.reports.load(ctx, latency.ReportsLoad)
}

func (uc *ReportUseCase) Refresh(ctx context.Context) error {
	return uc.Load(ctx)
}

func (uc *ReportUseCase) Snapshot() state.Collection[domain.ReportData] {
	return uc.reports.snapshot()
}

func (uc *ReportUseCase) Reports() []domain.ReportData {
	return uc.reports.snapshot().Items
}

// GenerateReport aggregates the given orders and products and stores the result.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, typ domain.ReportType, r domain.DateRange, orders []domain.Order, products []domain.Product) (domain.ReportData, error) {
	if !domain.IsValidReportType(typ) {
		return domain.ReportData{}, fmt.Errorf("%w: invalid report type '%s'", domain.ErrInvalidInput, typ)
	}
	if err := r.Validate(); err != nil {
		return domain.ReportData{}, err
	}
	uc.log.Infof("Use Case: Generating %s report over %d orders", typ, len(orders))

	var generated domain.ReportData
	err := uc.reports.commit(ctx, latency.GenerateReport, func([]domain.ReportData) (state.Action[domain.ReportData], error) {
		generated = report.Generate(uc.ids.NewID(), typ, r, orders, products, uc.now())
		return state.Add(generated), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to generate %s report: %v", typ, err)
		return domain.ReportData{}, err
	}

	uc.log.Infof("Use Case: Report %s generated (%d orders, revenue %s)", generated.ID, generated.TotalOrders, generated.TotalRevenue)
	return generated, nil
}

func (uc *ReportUseCase) DeleteReport(ctx context.Context, id string) error {
	err := uc.reports.commit(ctx, latency.Mutation, func(current []domain.ReportData) (state.Action[domain.ReportData], error) {
		if _, ok := state.Find(current, id); !ok {
			return state.Action[domain.ReportData]{}, fmt.Errorf("report with id %s: %w", id, domain.ErrNotFound)
		}
		return state.Delete[domain.ReportData](id), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to delete report ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Report ID %s deleted successfully", id)
	return nil
}

func (uc *ReportUseCase) GetReportByID(id string) (domain.ReportData, bool) {
	return state.Find(uc.Reports(), id)
}

func (uc *ReportUseCase) GetReportsByType(typ domain.ReportType) []domain.ReportData {
	var matched []domain.ReportData
	for _, r := range uc.Reports() {
		if r.Type == typ {
			matched = append(matched, r)
		}
	}
	return matched
}

// GetChartData returns chart points for reportID, or for the most recently
// generated report when reportID is empty. With no reports at all the demo
// series is returned.
func (uc *ReportUseCase) GetChartData(reportID string) ([]domain.ChartPoint, error) {
	if reportID != "" {
		rep, ok := uc.GetReportByID(reportID)
		if !ok {
			return nil, fmt.Errorf("report with id %s: %w", reportID, domain.ErrNotFound)
		}
		return report.ChartData(rep), nil
	}

	latest, ok := report.Latest(uc.Reports())
	if !ok {
		uc.log.Debug("Use Case: No reports yet, serving demo chart data")
		return report.DemoChartData(), nil
	}
	return report.ChartData(latest), nil
}

func (uc *ReportUseCase) GetChartSummary(reportID, category string) (domain.ChartSummary, error) {
	points, err := uc.GetChartData(reportID)
	if err != nil {
		return domain.ChartSummary{}, err
	}
	return report.Summarize(points, category), nil
}
