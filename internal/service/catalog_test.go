package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestCreateCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")

	_, err := env.catalog.CreateCategory("acme@example.com", "", "no name")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.catalog.CreateCategory("stranger@example.com", "Drinks", "")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestCategoryTenantScoping(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "a@example.com", "Tenant A")
	env.seedTenant(t, "b@example.com", "Tenant B")
	category := env.seedCategory(t, "a@example.com", "Drinks")

	// Tenant B sees A's category as absent, for every operation.
	err := env.catalog.UpdateCategory("b@example.com", category.ID, "Hijacked", "")
	assert.ErrorIs(t, err, ErrNotFound)

	err = env.catalog.DeleteCategory("b@example.com", category.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	categories, err := env.catalog.ListCategories("b@example.com")
	require.NoError(t, err)
	assert.Empty(t, categories)

	// A's category is untouched.
	var stored model.Category
	require.NoError(t, env.db.First(&stored, category.ID).Error)
	assert.Equal(t, "Drinks", stored.Name)
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	category := env.seedCategory(t, "acme@example.com", "Drinks")

	require.NoError(t, env.catalog.UpdateCategory("acme@example.com", category.ID, "Beverages", "cold and hot"))

	var stored model.Category
	require.NoError(t, env.db.First(&stored, category.ID).Error)
	assert.Equal(t, "Beverages", stored.Name)
	assert.Equal(t, "cold and hot", stored.Description)

	require.NoError(t, env.catalog.DeleteCategory("acme@example.com", category.ID))
	err := env.catalog.DeleteCategory("acme@example.com", category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "a@example.com", "Tenant A")
	env.seedTenant(t, "b@example.com", "Tenant B")
	category := env.seedCategory(t, "a@example.com", "Drinks")

	_, err := env.catalog.CreateProduct("a@example.com", ProductInput{Price: 2, CategoryID: category.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.catalog.CreateProduct("a@example.com", ProductInput{Name: "Cola", Price: 0, CategoryID: category.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.catalog.CreateProduct("a@example.com", ProductInput{Name: "Cola", Price: 2, CategoryID: 9999})
	assert.ErrorIs(t, err, ErrValidation)

	// A category belonging to another tenant is invalid, not just missing.
	_, err = env.catalog.CreateProduct("b@example.com", ProductInput{Name: "Cola", Price: 2, CategoryID: category.ID})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListProductsEnrichedWithCategoryName(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	drinks := env.seedCategory(t, "acme@example.com", "Drinks")
	snacks := env.seedCategory(t, "acme@example.com", "Snacks")
	env.seedProduct(t, "acme@example.com", drinks.ID, "Cola", 2, 10)
	env.seedProduct(t, "acme@example.com", snacks.ID, "Chips", 3, 4)

	products, err := env.catalog.ListProducts("acme@example.com")
	require.NoError(t, err)
	require.Len(t, products, 2)

	byName := map[string]string{}
	for _, p := range products {
		byName[p.Name] = p.CategoryName
	}
	assert.Equal(t, "Drinks", byName["Cola"])
	assert.Equal(t, "Snacks", byName["Chips"])
}

func TestGetProductTenantScoping(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "a@example.com", "Tenant A")
	env.seedTenant(t, "b@example.com", "Tenant B")
	category := env.seedCategory(t, "a@example.com", "Drinks")
	product := env.seedProduct(t, "a@example.com", category.ID, "Cola", 2, 10)

	got, err := env.catalog.GetProduct("a@example.com", product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cola", got.Name)
	assert.Equal(t, "Drinks", got.CategoryName)

	_, err = env.catalog.GetProduct("b@example.com", product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductQuantityBypassesLedger(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	category := env.seedCategory(t, "acme@example.com", "Drinks")
	product := env.seedProduct(t, "acme@example.com", category.ID, "Cola", 2, 10)

	err := env.catalog.UpdateProduct("acme@example.com", product.ID, ProductInput{
		Name:       "Cola Zero",
		Price:      2.5,
		Quantity:   42,
		Unit:       "cans",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, env.productQuantity(t, product.ID))
	// The direct overwrite is the unaudited correction path.
	assert.EqualValues(t, 0, env.transactionCount(t, product.ID))
}

func TestDeleteProductPropagatesScopeMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "a@example.com", "Tenant A")
	env.seedTenant(t, "b@example.com", "Tenant B")
	category := env.seedCategory(t, "a@example.com", "Drinks")
	product := env.seedProduct(t, "a@example.com", category.ID, "Cola", 2, 10)

	err := env.catalog.DeleteProduct("b@example.com", product.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.catalog.DeleteProduct("a@example.com", product.ID))
	_, err = env.catalog.GetProduct("a@example.com", product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductKeepsLedgerRows(t *testing.T) {
	env := newTestEnv(t)
	env.seedTenant(t, "acme@example.com", "Acme")
	category := env.seedCategory(t, "acme@example.com", "Drinks")
	product := env.seedProduct(t, "acme@example.com", category.ID, "Cola", 2, 10)

	_, err := env.ledger.Replenish("acme@example.com", product.ID, 5)
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteProduct("acme@example.com", product.ID))

	// The audit trail survives the product.
	assert.EqualValues(t, 1, env.transactionCount(t, product.ID))
}
