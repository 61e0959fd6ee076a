package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantDues holds the unpaid bills of one tenant with their total
type TenantDues struct {
	Tenant      Tenant          `json:"tenant"`
	Dues        []Bill          `json:"dues"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Overdue     bool            `json:"overdue"` // true if any due is past the reference instant
}

// LandlordDues groups outstanding dues across all tenants under a landlord.
// GrandTotal is always the sum of the per-tenant totals so the two can never
// disagree.
type LandlordDues struct {
	LandlordID uuid.UUID       `json:"landlord_id"`
	Tenants    []TenantDues    `json:"tenants"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// DuesCalculator computes outstanding dues from ledger data. It is a pure
// domain service: dues are always recomputed from the bills passed in, never
// read from a stored aggregate, and the reference instant is explicit.
type DuesCalculator struct{}

// NewDuesCalculator creates a new DuesCalculator
func NewDuesCalculator() *DuesCalculator {
	return &DuesCalculator{}
}

// OutstandingForTenant sums the amounts of all PENDING bills
func (c *DuesCalculator) OutstandingForTenant(bills []Bill) decimal.Decimal {
	total := decimal.Zero
	for i := range bills {
		if bills[i].IsPending() {
			total = total.Add(bills[i].Amount)
		}
	}
	return total
}

// PendingBills filters the PENDING bills, preserving input order
func (c *DuesCalculator) PendingBills(bills []Bill) []Bill {
	pending := make([]Bill, 0, len(bills))
	for i := range bills {
		if bills[i].IsPending() {
			pending = append(pending, bills[i])
		}
	}
	return pending
}

// OutstandingForLandlord groups unpaid bills per tenant under a landlord.
// Tenants with no pending bills are still listed with a zero total so the
// caller always receives a complete roster. Zero tenants yields a zero grand
// total, not an error.
func (c *DuesCalculator) OutstandingForLandlord(
	landlordID uuid.UUID,
	tenants []Tenant,
	billsByTenant map[uuid.UUID][]Bill,
	now time.Time,
) LandlordDues {
	result := LandlordDues{
		LandlordID: landlordID,
		Tenants:    make([]TenantDues, 0, len(tenants)),
		GrandTotal: decimal.Zero,
	}

	for _, tenant := range tenants {
		pending := c.PendingBills(billsByTenant[tenant.ID])
		total := decimal.Zero
		overdue := false
		for i := range pending {
			total = total.Add(pending[i].Amount)
			if pending[i].IsOverdue(now) {
				overdue = true
			}
		}
		result.Tenants = append(result.Tenants, TenantDues{
			Tenant:      tenant,
			Dues:        pending,
			TotalAmount: total,
			Overdue:     overdue,
		})
		result.GrandTotal = result.GrandTotal.Add(total)
	}

	return result
}
