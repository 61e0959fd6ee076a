package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultTrailingMonths = 3

// ForecastService computes collections summaries and forward projections.
// Every result is derived fresh from the ledger; nothing is cached or stored.
type ForecastService struct {
	bills          ledger.BillRepository
	payments       ledger.PaymentRepository
	tenants        ledger.TenantRepository
	calc           *ledger.ForecastCalculator
	trailingMonths int
	logger         *zap.Logger
}

// NewForecastService creates a new ForecastService. trailingMonths controls
// the collection efficiency window; zero or negative selects the default.
func NewForecastService(
	bills ledger.BillRepository,
	payments ledger.PaymentRepository,
	tenants ledger.TenantRepository,
	trailingMonths int,
	logger *zap.Logger,
) *ForecastService {
	if trailingMonths <= 0 {
		trailingMonths = defaultTrailingMonths
	}
	return &ForecastService{
		bills:          bills,
		payments:       payments,
		tenants:        tenants,
		calc:           ledger.NewForecastCalculator(),
		trailingMonths: trailingMonths,
		logger:         logger,
	}
}

// CollectionsSummary is the current-cycle view: expected versus collected
// plus the per-property category breakdown.
type CollectionsSummary struct {
	Month           string                     `json:"month"`
	Expected        decimal.Decimal            `json:"expected"`
	ActualCollected decimal.Decimal            `json:"actual_collected"`
	Outstanding     decimal.Decimal            `json:"outstanding"`
	Breakdown       []ledger.CategoryBreakdown `json:"breakdown"`
}

// PropertyReport is the single-property collections view: the current cycle
// plus the trailing efficiency series.
type PropertyReport struct {
	PropertyID      uuid.UUID                  `json:"property_id"`
	Month           string                     `json:"month"`
	Expected        decimal.Decimal            `json:"expected"`
	ActualCollected decimal.Decimal            `json:"actual_collected"`
	Breakdown       []ledger.CategoryBreakdown `json:"breakdown"`
	PastEfficiency  []ledger.MonthEfficiency   `json:"past_collection_efficiency"`
	ActiveTenants   int                        `json:"active_tenants"`
}

// Forecast builds the full collections forecast for a landlord's portfolio
func (s *ForecastService) Forecast(ctx context.Context, landlordID uuid.UUID, now time.Time) (*ledger.ForecastSnapshot, error) {
	bills, payments, tenants, err := s.loadPortfolio(ctx, landlordID, now)
	if err != nil {
		return nil, err
	}

	snapshot := s.calc.Compute(bills, payments, tenants, now, s.trailingMonths)

	s.logger.Debug("forecast computed",
		zap.String("landlord_id", landlordID.String()),
		zap.String("projected_efficiency", snapshot.ProjectedEfficiency.String()))
	return &snapshot, nil
}

// Summary builds the current-cycle collections summary for a landlord
func (s *ForecastService) Summary(ctx context.Context, landlordID uuid.UUID, now time.Time) (*CollectionsSummary, error) {
	snapshot, err := s.Forecast(ctx, landlordID, now)
	if err != nil {
		return nil, err
	}

	expected := snapshot.CurrentMonth.ProjectedCollection
	return &CollectionsSummary{
		Month:           snapshot.CurrentMonth.Month,
		Expected:        expected,
		ActualCollected: snapshot.ActualCollected,
		Outstanding:     expected.Sub(snapshot.ActualCollected),
		Breakdown:       snapshot.Breakdown,
	}, nil
}

// Report builds the collections report for a single property: the current
// cycle plus the trailing collection efficiency series.
func (s *ForecastService) Report(ctx context.Context, propertyID uuid.UUID, now time.Time) (*PropertyReport, error) {
	from := startOfCycle(now).AddDate(0, -s.trailingMonths, 0)
	_, to := cycleWindow(now)

	bills, err := s.bills.FindByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	payments, err := s.payments.FindByProperty(ctx, propertyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	tenants, err := s.tenants.FindByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenants: %w", err)
	}

	snapshot := s.calc.Compute(bills, payments, tenants, now, s.trailingMonths)
	active := 0
	for i := range tenants {
		if tenants[i].IsActive() {
			active++
		}
	}

	return &PropertyReport{
		PropertyID:      propertyID,
		Month:           snapshot.CurrentMonth.Month,
		Expected:        snapshot.CurrentMonth.ProjectedCollection,
		ActualCollected: snapshot.ActualCollected,
		Breakdown:       snapshot.Breakdown,
		PastEfficiency:  snapshot.PastEfficiency,
		ActiveTenants:   active,
	}, nil
}

// loadPortfolio fetches the bill, payment and tenant data needed to cover
// both the trailing efficiency window and the current cycle.
func (s *ForecastService) loadPortfolio(ctx context.Context, landlordID uuid.UUID, now time.Time) ([]ledger.Bill, []ledger.Payment, []ledger.Tenant, error) {
	from := startOfCycle(now).AddDate(0, -s.trailingMonths, 0)
	_, to := cycleWindow(now)

	bills, err := s.bills.FindByLandlord(ctx, landlordID, ledger.BillFilter{DueFrom: &from, DueTo: &to})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load bills: %w", err)
	}
	payments, err := s.payments.FindByLandlord(ctx, landlordID, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}
	tenants, err := s.tenants.FindByLandlord(ctx, landlordID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load tenants: %w", err)
	}
	return bills, payments, tenants, nil
}

func startOfCycle(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// cycleWindow returns the [start, end) bounds of the current billing cycle
func cycleWindow(now time.Time) (time.Time, time.Time) {
	start := startOfCycle(now)
	return start, start.AddDate(0, 1, 0)
}
