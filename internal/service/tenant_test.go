package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestResolveUnknownTenant(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tenants.Resolve("nobody@example.com")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	_, err = env.tenants.Resolve("")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestEnsureIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.tenants.Ensure("acme@example.com", "Acme"))
	require.NoError(t, env.tenants.Ensure("acme@example.com", "Acme"))
	require.NoError(t, env.tenants.Ensure("acme@example.com", "Other Name"))

	var count int64
	require.NoError(t, env.db.Model(&model.Tenant{}).
		Where("email = ?", "acme@example.com").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	tenant, err := env.tenants.Resolve("acme@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme", tenant.Name)
}

func TestEnsureWithoutNameIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.tenants.Ensure("acme@example.com", ""))

	_, err := env.tenants.Resolve("acme@example.com")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
