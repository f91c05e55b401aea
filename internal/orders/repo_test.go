package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	"github.com/rajchaudar/HR-Dep/pkg/enums"
	"github.com/rajchaudar/HR-Dep/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  contact TEXT NOT NULL,
  shipping_address TEXT,
  total_amount TEXT NOT NULL,
  payment_intent_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, repo Repository, userID uuid.UUID, createdAt time.Time) *models.Order {
	t.Helper()

	order, err := repo.Create(context.Background(), &models.Order{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    "Buyer",
		Email:   "buyer@example.com",
		Contact: "5551234567",
		ShippingAddress: types.Address{
			Line1:      "1 Main St",
			City:       "Pune",
			State:      "MH",
			PostalCode: "411001",
			Country:    "IN",
		},
		Items: []models.OrderItem{{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Name:      "Medicine A",
			Price:     decimal.RequireFromString("12.50"),
			Quantity:  2,
		}},
		TotalAmount:     decimal.RequireFromString("25.00"),
		PaymentIntentID: "pi_test",
		Status:          enums.OrderStatusPending,
		CreatedAt:       createdAt,
	})
	require.NoError(t, err)
	return order
}

func TestRepositoryCreatePersistsItemsAndAddress(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	created := seedOrder(t, repo, userID, time.Now())

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Medicine A", loaded.Items[0].Name)
	assert.Equal(t, "Pune", loaded.ShippingAddress.City)
	assert.Equal(t, enums.OrderStatusPending, loaded.Status)
	assert.True(t, loaded.TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestRepositoryListByUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	older := seedOrder(t, repo, userID, time.Now().Add(-time.Hour))
	newer := seedOrder(t, repo, userID, time.Now())
	seedOrder(t, repo, uuid.New(), time.Now())

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := seedOrder(t, repo, uuid.New(), time.Now())

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.OrderStatusPaid))
	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, loaded.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusPaid), ErrNotFound)
}
