package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/domain/shared/valueobject"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBill(t *testing.T, tenantID, propertyID, landlordID uuid.UUID, amount float64, due time.Time) *ledger.Bill {
	t.Helper()
	b, err := ledger.NewBill(tenantID, propertyID, landlordID, ledger.BillCategoryRent,
		valueobject.NewMoneyINRFromFloat(amount), due)
	require.NoError(t, err)
	return b
}

func seedTenant(t *testing.T, db *gorm.DB, landlordID uuid.UUID, propertyID *uuid.UUID, roomID, bedID string) uuid.UUID {
	t.Helper()
	model := &models.TenantModel{
		ID:         uuid.New(),
		Name:       "Ravi Kumar",
		Contact:    "+91 9000000000",
		LandlordID: landlordID,
	}
	if propertyID != nil {
		rent := decimal.NewFromInt(5000)
		moveIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		model.PropertyID = propertyID
		model.RoomID = &roomID
		model.BedID = &bedID
		model.RentAmount = &rent
		model.MoveInDate = &moveIn
	}
	require.NoError(t, db.Create(model).Error)
	return model.ID
}

func TestGormBillRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := newBill(t, tenantID, uuid.New(), uuid.New(), 5000, due)
	require.NoError(t, repo.Save(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, found.TenantID)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, ledger.BillStatusPending, found.Status)
	assert.True(t, found.DueDate.Equal(due))

	t.Run("persists paid state", func(t *testing.T) {
		paymentID := uuid.New()
		require.NoError(t, found.MarkPaid(paymentID, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.BillStatusPaid, reloaded.Status)
		require.NotNil(t, reloaded.PaymentID)
		assert.Equal(t, paymentID, *reloaded.PaymentID)
	})

	t.Run("reports missing bills", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormBillRepository_FindByLandlord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	landlordID := uuid.New()
	propertyID := uuid.New()
	july := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	august := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	september := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	julyRent := newBill(t, uuid.New(), propertyID, landlordID, 5000, july)
	augustRent := newBill(t, uuid.New(), propertyID, landlordID, 5000, august)
	otherLandlord := newBill(t, uuid.New(), uuid.New(), uuid.New(), 9000, august)
	require.NoError(t, repo.Save(ctx, julyRent))
	require.NoError(t, repo.Save(ctx, augustRent))
	require.NoError(t, repo.Save(ctx, otherLandlord))

	t.Run("scopes to the landlord", func(t *testing.T) {
		list, err := repo.FindByLandlord(ctx, landlordID, ledger.BillFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("due window start is inclusive, end exclusive", func(t *testing.T) {
		list, err := repo.FindByLandlord(ctx, landlordID, ledger.BillFilter{
			DueFrom: &august,
			DueTo:   &september,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, augustRent.ID, list[0].ID)

		list, err = repo.FindByLandlord(ctx, landlordID, ledger.BillFilter{
			DueFrom: &july,
			DueTo:   &august,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, julyRent.ID, list[0].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		require.NoError(t, julyRent.MarkPaid(uuid.New(), july.AddDate(0, 0, 2)))
		require.NoError(t, repo.Save(ctx, julyRent))

		pending := ledger.BillStatusPending
		list, err := repo.FindByLandlord(ctx, landlordID, ledger.BillFilter{Status: &pending})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, augustRent.ID, list[0].ID)
	})
}

func TestGormBillRepository_FindByTenantAndProperty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	propertyID := uuid.New()
	landlordID := uuid.New()
	later := newBill(t, tenantID, propertyID, landlordID, 300,
		time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	earlier := newBill(t, tenantID, propertyID, landlordID, 5000,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, later))
	require.NoError(t, repo.Save(ctx, earlier))

	list, err := repo.FindByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, earlier.ID, list[0].ID, "ordered by due date ascending")

	list, err = repo.FindByProperty(ctx, propertyID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGormPaymentRepository_Windows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()

	landlordID := uuid.New()
	propertyID := uuid.New()
	record := func(receivedAt time.Time) *ledger.Payment {
		p, err := ledger.NewPayment(nil, uuid.New(), propertyID, landlordID,
			valueobject.NewMoneyINRFromFloat(5000), ledger.PaymentSourceCash, receivedAt)
		require.NoError(t, err)
		require.NoError(t, repo.Record(ctx, p))
		return p
	}

	july31 := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	aug1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	aug15 := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	sep1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	record(july31)
	inWindow := record(aug15)
	record(sep1)

	t.Run("landlord window is [from, to)", func(t *testing.T) {
		list, err := repo.FindByLandlord(ctx, landlordID, aug1, sep1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, inWindow.ID, list[0].ID)
	})

	t.Run("property window matches", func(t *testing.T) {
		list, err := repo.FindByProperty(ctx, propertyID, aug1, sep1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].Amount.Equal(decimal.NewFromInt(5000)))
	})
}

func TestGormTenantRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	landlordID := uuid.New()
	propertyID := uuid.New()
	activeID := seedTenant(t, db, landlordID, &propertyID, "R1", "B1")
	movedOutID := seedTenant(t, db, landlordID, nil, "", "")

	t.Run("landlord listing keeps moved-out tenants", func(t *testing.T) {
		list, err := repo.FindByLandlord(ctx, landlordID)
		require.NoError(t, err)
		require.Len(t, list, 2)

		byID := map[uuid.UUID]*ledger.Tenant{}
		for _, tenant := range list {
			byID[tenant.ID] = &tenant
		}
		assert.True(t, byID[activeID].IsActive())
		assert.False(t, byID[movedOutID].IsActive())
	})

	t.Run("property listing excludes moved-out tenants", func(t *testing.T) {
		list, err := repo.FindByProperty(ctx, propertyID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, activeID, list[0].ID)
	})

	t.Run("finds the active occupant of a bed", func(t *testing.T) {
		tenant, err := repo.FindActiveByBed(ctx, propertyID, "R1", "B1")
		require.NoError(t, err)
		assert.Equal(t, activeID, tenant.ID)

		_, err = repo.FindActiveByBed(ctx, propertyID, "R1", "B9")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
