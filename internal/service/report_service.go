package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/report"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardCacheKey = "reports:dashboard"
	dashboardCacheTTL = 30 * time.Second
)

// ReportService is the request-facing wrapper around the aggregation engine
// and the materializer.
type ReportService interface {
	// Dashboard assembles the reports view: recent sales, the three rollups
	// and the artifact history. Rendering it also opportunistically backfills
	// last month's document if the scheduled run never happened.
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GenerateDaily(ctx context.Context, date time.Time) (string, error)
	GenerateMonthly(ctx context.Context, year int, month time.Month) (string, error)
	ListArtifacts(ctx context.Context) ([]string, error)
	ReadArtifact(ctx context.Context, name string) (*report.Artifact, error)
}

type reportService struct {
	agg   *report.Aggregator
	mat   *report.Materializer
	sales SaleService
	rdb   *redis.Client
	now   func() time.Time
}

// NewReportService wires the reporting view. rdb may be nil (no caching);
// now may be nil (wall clock).
func NewReportService(
	agg *report.Aggregator,
	mat *report.Materializer,
	sales SaleService,
	rdb *redis.Client,
	now func() time.Time,
) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{agg: agg, mat: mat, sales: sales, rdb: rdb, now: now}
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	// Backfill guard runs before the cache: a missed monthly boundary must be
	// repaired (and announced) even when a cached dashboard exists.
	notice, backfilled, err := s.backfillPreviousMonth(ctx)
	if err != nil {
		return nil, err
	}

	if !backfilled && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var resp dto.DashboardResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	recent, err := s.sales.Recent(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := s.agg.DailyRollup(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.agg.MonthlyRollup(ctx)
	if err != nil {
		return nil, err
	}
	mix, err := s.agg.CurrentMonthByProduct(ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := s.mat.ListArtifacts()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		RecentSales:   recent,
		DailyRollup:   toRollupResponse(daily),
		MonthlyRollup: toRollupResponse(monthly),
		ProductRollup: toProductMixResponse(mix),
		Artifacts:     artifacts,
		BackfillNotice: notice,
	}

	// Populate cache — best effort, ignore errors. Skipped when a backfill
	// happened so the notice is not served to later requests.
	if s.rdb != nil && !backfilled {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), dashboardCacheKey, b, dashboardCacheTTL).Err()
		}
	}
	return resp, nil
}

// backfillPreviousMonth repairs a missing monthly artifact for the month that
// just ended. Returns a user-visible notice when a regeneration occurred.
func (s *reportService) backfillPreviousMonth(ctx context.Context) (*string, bool, error) {
	now := s.now()
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)

	name, wrote, err := s.mat.EnsureMonthly(ctx, prev.Year(), prev.Month())
	if err != nil {
		return nil, false, err
	}
	if !wrote {
		return nil, false, nil
	}
	log.Info().Str("artifact", name).Msg("missing monthly artifact regenerated on view")
	notice := fmt.Sprintf("monthly report %s was missing and has been regenerated", name)
	return &notice, true, nil
}

func (s *reportService) GenerateDaily(ctx context.Context, date time.Time) (string, error) {
	return s.mat.WriteDaily(ctx, date)
}

func (s *reportService) GenerateMonthly(ctx context.Context, year int, month time.Month) (string, error) {
	return s.mat.WriteMonthly(ctx, year, month)
}

func (s *reportService) ListArtifacts(_ context.Context) ([]string, error) {
	return s.mat.ListArtifacts()
}

func (s *reportService) ReadArtifact(_ context.Context, name string) (*report.Artifact, error) {
	return s.mat.ReadArtifact(name)
}

func toRollupResponse(rows []repository.PeriodTotal) dto.RollupResponse {
	resp := dto.RollupResponse{
		Labels:     make([]string, 0, len(rows)),
		Profits:    make([]float64, 0, len(rows)),
		Quantities: make([]int64, 0, len(rows)),
		Revenues:   make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		profit, _ := row.Profit.Round(2).Float64()
		revenue, _ := row.Revenue.Round(2).Float64()
		resp.Labels = append(resp.Labels, row.Label)
		resp.Profits = append(resp.Profits, profit)
		resp.Quantities = append(resp.Quantities, row.Quantity)
		resp.Revenues = append(resp.Revenues, revenue)
	}
	return resp
}

func toProductMixResponse(t *report.Tally) dto.ProductMixResponse {
	resp := dto.ProductMixResponse{
		Labels:     make([]string, 0, t.Len()),
		Profits:    make([]float64, 0, t.Len()),
		Quantities: make([]int, 0, t.Len()),
	}
	for _, name := range t.Names() {
		e, _ := t.Get(name)
		profit, _ := e.Profit.Round(2).Float64()
		resp.Labels = append(resp.Labels, name)
		resp.Profits = append(resp.Profits, profit)
		resp.Quantities = append(resp.Quantities, e.Qty)
	}
	return resp
}
