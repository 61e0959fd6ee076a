package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// monthLabel formats a month for API consumers, e.g. "2026-08"
func monthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// startOfMonth truncates a time to the first instant of its month
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// CategoryBreakdown is the per-property split of billed amounts by category
// for one billing cycle
type CategoryBreakdown struct {
	PropertyID        uuid.UUID       `json:"property_id"`
	PropertyName      string          `json:"property_name"`
	RentAmount        decimal.Decimal `json:"rent_amount"`
	MaintenanceAmount decimal.Decimal `json:"maintenance_amount"`
	ElectricityAmount decimal.Decimal `json:"electricity_amount"`
	WaterAmount       decimal.Decimal `json:"water_amount"`
	OtherAmount       decimal.Decimal `json:"other_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	TenantCount       int             `json:"tenant_count"` // distinct tenants billed this cycle
}

// PropertyExpectation is the expected collection for one property in a month
type PropertyExpectation struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	Expected     decimal.Decimal `json:"expected"`
}

// MonthProjection is the projected collection for one month
type MonthProjection struct {
	Month               string                `json:"month"`
	ProjectedCollection decimal.Decimal       `json:"projected_collection"`
	ByProperty          []PropertyExpectation `json:"by_property"`
}

// MonthEfficiency is the billed-vs-collected ratio for one past month
type MonthEfficiency struct {
	Month      string          `json:"month"`
	Expected   decimal.Decimal `json:"expected"`
	Collected  decimal.Decimal `json:"collected"`
	Efficiency decimal.Decimal `json:"efficiency"` // percentage, one decimal place
}

// ForecastSnapshot is the derived (never persisted) collections forecast for
// a landlord's portfolio. Collected amounts are joined from payments at
// computation time.
type ForecastSnapshot struct {
	Breakdown           []CategoryBreakdown `json:"breakdown"`
	CurrentMonth        MonthProjection     `json:"current_month"`
	NextMonth           MonthProjection     `json:"next_month"`
	TwoMonthsAhead      MonthProjection     `json:"two_months_ahead"`
	PastEfficiency      []MonthEfficiency   `json:"past_collection_efficiency"`
	ProjectedEfficiency decimal.Decimal     `json:"projected_efficiency"`
	ActualCollected     decimal.Decimal     `json:"actual_collected"` // current month, from payments
}

// ForecastCalculator projects expected collections from ledger data. Pure
// domain service: the reference instant and trailing window are explicit
// inputs, nothing reads the system clock.
type ForecastCalculator struct{}

// NewForecastCalculator creates a new ForecastCalculator
func NewForecastCalculator() *ForecastCalculator {
	return &ForecastCalculator{}
}

// Compute builds the full forecast snapshot for a portfolio.
// Tenants provide property names and per-property expected rent; a property
// whose last tenant moved out is excluded from future-month projections.
func (c *ForecastCalculator) Compute(
	bills []Bill,
	payments []Payment,
	tenants []Tenant,
	now time.Time,
	trailingMonths int,
) ForecastSnapshot {
	current := startOfMonth(now)
	names := propertyNames(tenants)

	snapshot := ForecastSnapshot{
		Breakdown:       c.BreakdownForCycle(bills, tenants, current),
		CurrentMonth:    c.projectBilledMonth(bills, names, current),
		NextMonth:       c.projectRentBaseline(tenants, current.AddDate(0, 1, 0)),
		TwoMonthsAhead:  c.projectRentBaseline(tenants, current.AddDate(0, 2, 0)),
		ActualCollected: sumPaymentsInMonth(payments, current),
	}

	snapshot.PastEfficiency = c.PastCollectionEfficiency(bills, payments, now, trailingMonths)
	snapshot.ProjectedEfficiency = c.ProjectedEfficiency(snapshot.PastEfficiency)

	return snapshot
}

// BreakdownForCycle splits the cycle's billed amounts (pending and paid) per
// property and category. Properties known from tenant accommodations appear
// even with zero bills, as zeroed entries.
func (c *ForecastCalculator) BreakdownForCycle(bills []Bill, tenants []Tenant, month time.Time) []CategoryBreakdown {
	names := propertyNames(tenants)

	entries := make(map[uuid.UUID]*CategoryBreakdown)
	billedTenants := make(map[uuid.UUID]map[uuid.UUID]struct{})

	ensure := func(propertyID uuid.UUID) *CategoryBreakdown {
		if e, ok := entries[propertyID]; ok {
			return e
		}
		e := &CategoryBreakdown{
			PropertyID:        propertyID,
			PropertyName:      names[propertyID],
			RentAmount:        decimal.Zero,
			MaintenanceAmount: decimal.Zero,
			ElectricityAmount: decimal.Zero,
			WaterAmount:       decimal.Zero,
			OtherAmount:       decimal.Zero,
			TotalAmount:       decimal.Zero,
		}
		entries[propertyID] = e
		billedTenants[propertyID] = make(map[uuid.UUID]struct{})
		return e
	}

	for _, tenant := range tenants {
		if tenant.Accommodation != nil {
			ensure(tenant.Accommodation.PropertyID)
		}
	}

	for i := range bills {
		b := &bills[i]
		if !b.DueInMonth(month) {
			continue
		}
		e := ensure(b.PropertyID)
		switch b.Category {
		case BillCategoryRent:
			e.RentAmount = e.RentAmount.Add(b.Amount)
		case BillCategoryMaintenance:
			e.MaintenanceAmount = e.MaintenanceAmount.Add(b.Amount)
		case BillCategoryElectricity:
			e.ElectricityAmount = e.ElectricityAmount.Add(b.Amount)
		case BillCategoryWater:
			e.WaterAmount = e.WaterAmount.Add(b.Amount)
		default:
			e.OtherAmount = e.OtherAmount.Add(b.Amount)
		}
		e.TotalAmount = e.TotalAmount.Add(b.Amount)
		billedTenants[b.PropertyID][b.TenantID] = struct{}{}
	}

	result := make([]CategoryBreakdown, 0, len(entries))
	for propertyID, e := range entries {
		e.TenantCount = len(billedTenants[propertyID])
		result = append(result, *e)
	}
	sortBreakdown(result)
	return result
}

// projectBilledMonth projects a month from the bills actually due in it,
// regardless of paid status: expected billing, not yet-collected cash.
func (c *ForecastCalculator) projectBilledMonth(bills []Bill, names map[uuid.UUID]string, month time.Time) MonthProjection {
	perProperty := make(map[uuid.UUID]decimal.Decimal)
	total := decimal.Zero

	for i := range bills {
		b := &bills[i]
		if !b.DueInMonth(month) {
			continue
		}
		perProperty[b.PropertyID] = perProperty[b.PropertyID].Add(b.Amount)
		total = total.Add(b.Amount)
	}

	return MonthProjection{
		Month:               monthLabel(month),
		ProjectedCollection: total,
		ByProperty:          expectationsFromMap(perProperty, names),
	}
}

// projectRentBaseline projects a future month as the sum of active tenants'
// rent per property. No seasonality modeling; vacated properties (no active
// tenants) drop out naturally.
func (c *ForecastCalculator) projectRentBaseline(tenants []Tenant, month time.Time) MonthProjection {
	names := propertyNames(tenants)
	perProperty := make(map[uuid.UUID]decimal.Decimal)
	total := decimal.Zero

	for _, tenant := range tenants {
		if tenant.Accommodation == nil {
			continue
		}
		a := tenant.Accommodation
		perProperty[a.PropertyID] = perProperty[a.PropertyID].Add(a.RentAmount)
		total = total.Add(a.RentAmount)
	}

	return MonthProjection{
		Month:               monthLabel(month),
		ProjectedCollection: total,
		ByProperty:          expectationsFromMap(perProperty, names),
	}
}

// PastCollectionEfficiency computes (collected/expected)*100 for each of the
// trailing complete months, oldest first. A month with zero expected billing
// reports zero efficiency rather than dividing by zero.
func (c *ForecastCalculator) PastCollectionEfficiency(bills []Bill, payments []Payment, now time.Time, trailingMonths int) []MonthEfficiency {
	if trailingMonths <= 0 {
		return []MonthEfficiency{}
	}

	current := startOfMonth(now)
	result := make([]MonthEfficiency, 0, trailingMonths)

	for i := trailingMonths; i >= 1; i-- {
		month := current.AddDate(0, -i, 0)

		expected := decimal.Zero
		for j := range bills {
			if bills[j].DueInMonth(month) {
				expected = expected.Add(bills[j].Amount)
			}
		}
		collected := sumPaymentsInMonth(payments, month)

		efficiency := decimal.Zero
		if !expected.IsZero() {
			efficiency = collected.Div(expected).Mul(decimal.NewFromInt(100)).Round(1)
		}

		result = append(result, MonthEfficiency{
			Month:      monthLabel(month),
			Expected:   expected,
			Collected:  collected,
			Efficiency: efficiency,
		})
	}

	return result
}

// ProjectedEfficiency is the simple mean of the trailing efficiencies
func (c *ForecastCalculator) ProjectedEfficiency(trailing []MonthEfficiency) decimal.Decimal {
	if len(trailing) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, m := range trailing {
		sum = sum.Add(m.Efficiency)
	}
	return sum.Div(decimal.NewFromInt(int64(len(trailing)))).Round(1)
}

func propertyNames(tenants []Tenant) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, tenant := range tenants {
		if tenant.Accommodation != nil {
			names[tenant.Accommodation.PropertyID] = tenant.Accommodation.PropertyName
		}
	}
	return names
}

func sumPaymentsInMonth(payments []Payment, month time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range payments {
		if payments[i].ReceivedInMonth(month) {
			total = total.Add(payments[i].Amount)
		}
	}
	return total
}

func expectationsFromMap(perProperty map[uuid.UUID]decimal.Decimal, names map[uuid.UUID]string) []PropertyExpectation {
	result := make([]PropertyExpectation, 0, len(perProperty))
	for propertyID, expected := range perProperty {
		result = append(result, PropertyExpectation{
			PropertyID:   propertyID,
			PropertyName: names[propertyID],
			Expected:     expected,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PropertyName != result[j].PropertyName {
			return result[i].PropertyName < result[j].PropertyName
		}
		return result[i].PropertyID.String() < result[j].PropertyID.String()
	})
	return result
}

func sortBreakdown(entries []CategoryBreakdown) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PropertyName != entries[j].PropertyName {
			return entries[i].PropertyName < entries[j].PropertyName
		}
		return entries[i].PropertyID.String() < entries[j].PropertyID.String()
	})
}
