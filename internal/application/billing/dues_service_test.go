package billing

import (
	"context"
	"testing"
	"time"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/gharzo/engine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBillRepository is a mock implementation of ledger.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Bill, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter ledger.BillFilter) ([]ledger.Bill, error) {
	args := m.Called(ctx, landlordID, filter)
	return args.Get(0).([]ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]ledger.Bill, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]ledger.Bill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *ledger.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of ledger.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]ledger.Payment, error) {
	args := m.Called(ctx, landlordID, from, to)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]ledger.Payment, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Record(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockTenantRepository is a mock implementation of ledger.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]ledger.Tenant, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]ledger.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]ledger.Tenant, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]ledger.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActiveByBed(ctx context.Context, propertyID uuid.UUID, roomID, bedID string) (*ledger.Tenant, error) {
	args := m.Called(ctx, propertyID, roomID, bedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Tenant), args.Error(1)
}

func testBill(t *testing.T, tenantID, landlordID uuid.UUID, amount float64, dueDate time.Time) ledger.Bill {
	t.Helper()
	bill, err := ledger.NewBill(tenantID, uuid.New(), landlordID, ledger.BillCategoryRent,
		valueobject.NewMoneyINRFromFloat(amount), dueDate)
	require.NoError(t, err)
	return *bill
}

func testTenant(name string, landlordID uuid.UUID) ledger.Tenant {
	return ledger.Tenant{
		ID:   uuid.New(),
		Name: name,
		Accommodation: &ledger.Accommodation{
			PropertyID:   uuid.New(),
			PropertyName: "Sunrise PG",
			RoomID:       "R1",
			BedID:        "A",
			LandlordID:   landlordID,
			RentAmount:   decimal.NewFromInt(5000),
			MoveInDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestDuesService_OutstandingForLandlord(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("aggregates per-tenant dues into a grand total", func(t *testing.T) {
		bills := new(MockBillRepository)
		tenants := new(MockTenantRepository)
		svc := NewDuesService(bills, tenants, zap.NewNop())

		landlordID := uuid.New()
		alice := testTenant("Alice", landlordID)
		bob := testTenant("Bob", landlordID)

		tenants.On("FindByLandlord", mock.Anything, landlordID).
			Return([]ledger.Tenant{alice, bob}, nil)
		bills.On("FindByLandlord", mock.Anything, landlordID, mock.AnythingOfType("ledger.BillFilter")).
			Return([]ledger.Bill{
				testBill(t, alice.ID, landlordID, 5000, now.AddDate(0, 0, -10)),
				testBill(t, alice.ID, landlordID, 300, now.AddDate(0, 0, 5)),
				testBill(t, bob.ID, landlordID, 4500, now.AddDate(0, 0, 2)),
			}, nil)

		result, err := svc.OutstandingForLandlord(context.Background(), landlordID, now)

		require.NoError(t, err)
		assert.True(t, result.GrandTotal.Equal(decimal.NewFromInt(9800)))
		require.Len(t, result.Tenants, 2)
		assert.True(t, result.Tenants[0].TotalAmount.Equal(decimal.NewFromInt(5300)))
		assert.True(t, result.Tenants[0].Overdue)
		assert.True(t, result.Tenants[1].TotalAmount.Equal(decimal.NewFromInt(4500)))
		assert.False(t, result.Tenants[1].Overdue)
	})

	t.Run("returns a zero grand total for a landlord without tenants", func(t *testing.T) {
		bills := new(MockBillRepository)
		tenants := new(MockTenantRepository)
		svc := NewDuesService(bills, tenants, zap.NewNop())

		landlordID := uuid.New()
		tenants.On("FindByLandlord", mock.Anything, landlordID).Return([]ledger.Tenant{}, nil)
		bills.On("FindByLandlord", mock.Anything, landlordID, mock.AnythingOfType("ledger.BillFilter")).
			Return([]ledger.Bill{}, nil)

		result, err := svc.OutstandingForLandlord(context.Background(), landlordID, now)

		require.NoError(t, err)
		assert.True(t, result.GrandTotal.IsZero())
		assert.Empty(t, result.Tenants)
	})
}

func TestDuesService_OutstandingForTenant(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("sums only pending bills", func(t *testing.T) {
		bills := new(MockBillRepository)
		tenants := new(MockTenantRepository)
		svc := NewDuesService(bills, tenants, zap.NewNop())

		landlordID := uuid.New()
		tenant := testTenant("Alice", landlordID)
		paid := testBill(t, tenant.ID, landlordID, 300, now.AddDate(0, -1, 0))
		require.NoError(t, paid.MarkPaid(uuid.New(), now.AddDate(0, 0, -20)))

		tenants.On("FindByID", mock.Anything, tenant.ID).Return(&tenant, nil)
		bills.On("FindByTenant", mock.Anything, tenant.ID).Return([]ledger.Bill{
			testBill(t, tenant.ID, landlordID, 5000, now.AddDate(0, 0, -1)),
			paid,
		}, nil)

		result, err := svc.OutstandingForTenant(context.Background(), tenant.ID, now)

		require.NoError(t, err)
		assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(5000)))
		require.Len(t, result.Dues, 1)
		assert.True(t, result.Overdue)
	})
}
