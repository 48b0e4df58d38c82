package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
)

// newTestDB opens a fresh in-memory database migrated to the full schema.
// The shared-cache DSN keeps the database alive across pooled connections
// within one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db      *gorm.DB
	tenants *TenantService
	catalog *CatalogService
	ledger  *LedgerService
	stats   *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()
	tenants := NewTenantService(db, log)
	return &testEnv{
		db:      db,
		tenants: tenants,
		catalog: NewCatalogService(db, tenants, log),
		ledger:  NewLedgerService(db, tenants, log),
		stats:   NewStatsService(db, tenants, log),
	}
}

func (e *testEnv) seedTenant(t *testing.T, email, name string) *model.Tenant {
	t.Helper()

	require.NoError(t, e.tenants.Ensure(email, name))
	tenant, err := e.tenants.Resolve(email)
	require.NoError(t, err)
	return tenant
}

func (e *testEnv) seedCategory(t *testing.T, email, name string) *model.Category {
	t.Helper()

	category, err := e.catalog.CreateCategory(email, name, "")
	require.NoError(t, err)
	return category
}

func (e *testEnv) seedProduct(t *testing.T, email string, categoryID uint, name string, price float64, quantity int) *model.Product {
	t.Helper()

	product, err := e.catalog.CreateProduct(email, ProductInput{
		Name:       name,
		Price:      price,
		Unit:       "pcs",
		CategoryID: categoryID,
	})
	require.NoError(t, err)

	if quantity > 0 {
		// Seed the starting stock directly so fixtures do not depend on the
		// ledger under test.
		require.NoError(t, e.db.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("quantity", quantity).Error)
		product.Quantity = quantity
	}
	return product
}

func (e *testEnv) productQuantity(t *testing.T, id uint) int {
	t.Helper()

	var product model.Product
	require.NoError(t, e.db.First(&product, id).Error)
	return product.Quantity
}

func (e *testEnv) transactionCount(t *testing.T, productID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&model.StockTransaction{}).
		Where("product_id = ?", productID).
		Count(&count).Error)
	return count
}
