package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	drinks := env.seedCategory(t, "acme@example.com", "Drinks")
	snacks := env.seedCategory(t, "acme@example.com", "Snacks")
	// An empty category: no product references it.
	env.seedCategory(t, "acme@example.com", "Cleaning")

	env.seedProduct(t, "acme@example.com", drinks.ID, "Cola", 2, 10)
	env.seedProduct(t, "acme@example.com", drinks.ID, "Water", 1.5, 4)
	product := env.seedProduct(t, "acme@example.com", snacks.ID, "Chips", 3, 0)

	_, err := env.ledger.Replenish("acme@example.com", product.ID, 2)
	require.NoError(t, err)

	overview, err := env.stats.GetOverview("acme@example.com")
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalProducts)
	// Only category names actually used by products are counted; the empty
	// category does not appear.
	assert.Equal(t, 2, overview.TotalCategories)
	assert.Equal(t, 1, overview.TotalTransactions)
	// 2*10 + 1.5*4 + 3*2
	assert.InDelta(t, 32.0, overview.StockValue, 0.001)
}

func TestCategoryDistributionTopFive(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")

	// Six categories with product counts 12, 8, 8, 3, 1, 0.
	counts := []int{12, 8, 8, 3, 1, 0}
	for i, n := range counts {
		category := env.seedCategory(t, "acme@example.com", fmt.Sprintf("cat-%d", i))
		for j := 0; j < n; j++ {
			env.seedProduct(t, "acme@example.com", category.ID, fmt.Sprintf("p-%d-%d", i, j), 1, 0)
		}
	}

	distribution, err := env.stats.GetCategoryDistribution("acme@example.com", 0)
	require.NoError(t, err)

	require.Len(t, distribution, 5)
	got := make([]int, len(distribution))
	for i, entry := range distribution {
		got[i] = entry.Count
	}
	assert.Equal(t, []int{12, 8, 8, 3, 1}, got)
	// Ties keep insertion order: cat-1 before cat-2.
	assert.Equal(t, "cat-1", distribution[1].Name)
	assert.Equal(t, "cat-2", distribution[2].Name)
}

func TestCategoryDistributionIsTenantScoped(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "a@example.com", "Tenant A")
	env.seedTenant(t, "b@example.com", "Tenant B")
	categoryA := env.seedCategory(t, "a@example.com", "Drinks")
	env.seedProduct(t, "a@example.com", categoryA.ID, "Cola", 2, 1)

	distribution, err := env.stats.GetCategoryDistribution("b@example.com", 0)
	require.NoError(t, err)
	assert.Empty(t, distribution)
}

func TestStockLevelsPartition(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	category := env.seedCategory(t, "acme@example.com", "Drinks")

	quantities := []int{0, 0, 1, 2, 3, 10}
	for i, q := range quantities {
		env.seedProduct(t, "acme@example.com", category.ID, fmt.Sprintf("p-%d", i), 1, q)
	}

	levels, err := env.stats.GetStockLevels("acme@example.com")
	require.NoError(t, err)

	assert.Equal(t, 2, levels.OutOfStock)
	assert.Equal(t, 2, levels.Low)
	assert.Equal(t, 2, levels.Normal)
	// The partition is total: the buckets sum to the product count.
	assert.Equal(t, len(quantities), levels.OutOfStock+levels.Low+levels.Normal)
}

func TestCriticalProductsAscending(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	category := env.seedCategory(t, "acme@example.com", "Drinks")
	env.seedProduct(t, "acme@example.com", category.ID, "Plenty", 1, 50)
	env.seedProduct(t, "acme@example.com", category.ID, "Two", 1, 2)
	env.seedProduct(t, "acme@example.com", category.ID, "Empty", 1, 0)
	env.seedProduct(t, "acme@example.com", category.ID, "One", 1, 1)

	critical, err := env.stats.GetCriticalProducts("acme@example.com")
	require.NoError(t, err)

	require.Len(t, critical, 3)
	assert.Equal(t, "Empty", critical[0].Name)
	assert.Equal(t, "One", critical[1].Name)
	assert.Equal(t, "Two", critical[2].Name)
}

func TestTransactionHistoryEnrichment(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	category := env.seedCategory(t, "acme@example.com", "Drinks")
	product := env.seedProduct(t, "acme@example.com", category.ID, "Cola", 2.5, 10)

	_, err := env.ledger.Replenish("acme@example.com", product.ID, 5)
	require.NoError(t, err)
	result, err := env.ledger.WithdrawBatch("acme@example.com", []OrderItem{
		{ProductID: product.ID, Quantity: 3},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	history, err := env.stats.GetTransactionHistory("acme@example.com", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	for _, view := range history {
		assert.Equal(t, "Cola", view.ProductName)
		assert.Equal(t, "Drinks", view.CategoryName)
		assert.Equal(t, "pcs", view.Unit)
		assert.InDelta(t, 2.5, view.Price, 0.001)
	}

	limited, err := env.stats.GetTransactionHistory("acme@example.com", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	// Newest first: the withdrawal came after the replenishment.
	assert.EqualValues(t, "OUT", limited[0].Type)
}

func TestStatsRequireTenant(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stats.GetOverview("nobody@example.com")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = env.stats.GetTransactionHistory("nobody@example.com", 0)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
