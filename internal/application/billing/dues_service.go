package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DuesService aggregates outstanding dues across a landlord's portfolio
type DuesService struct {
	bills   ledger.BillRepository
	tenants ledger.TenantRepository
	calc    *ledger.DuesCalculator
	logger  *zap.Logger
}

// NewDuesService creates a new DuesService
func NewDuesService(
	bills ledger.BillRepository,
	tenants ledger.TenantRepository,
	logger *zap.Logger,
) *DuesService {
	return &DuesService{
		bills:   bills,
		tenants: tenants,
		calc:    ledger.NewDuesCalculator(),
		logger:  logger,
	}
}

// OutstandingForTenant returns a tenant's pending bills and their total
func (s *DuesService) OutstandingForTenant(ctx context.Context, tenantID uuid.UUID, now time.Time) (*ledger.TenantDues, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	bills, err := s.bills.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}

	pending := s.calc.PendingBills(bills)
	total := s.calc.OutstandingForTenant(bills)
	overdue := false
	for i := range pending {
		if pending[i].IsOverdue(now) {
			overdue = true
			break
		}
	}

	return &ledger.TenantDues{
		Tenant:      *tenant,
		Dues:        pending,
		TotalAmount: total,
		Overdue:     overdue,
	}, nil
}

// OutstandingForLandlord returns per-tenant dues and the portfolio grand
// total for a landlord. Tenants without pending bills are included with a
// zero total.
func (s *DuesService) OutstandingForLandlord(ctx context.Context, landlordID uuid.UUID, now time.Time) (*ledger.LandlordDues, error) {
	tenants, err := s.tenants.FindByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenants: %w", err)
	}

	pendingStatus := ledger.BillStatusPending
	bills, err := s.bills.FindByLandlord(ctx, landlordID, ledger.BillFilter{Status: &pendingStatus})
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}

	billsByTenant := make(map[uuid.UUID][]ledger.Bill, len(tenants))
	for i := range bills {
		billsByTenant[bills[i].TenantID] = append(billsByTenant[bills[i].TenantID], bills[i])
	}

	result := s.calc.OutstandingForLandlord(landlordID, tenants, billsByTenant, now)

	s.logger.Debug("dues aggregated",
		zap.String("landlord_id", landlordID.String()),
		zap.Int("tenants", len(result.Tenants)),
		zap.String("grand_total", result.GrandTotal.String()))
	return &result, nil
}
