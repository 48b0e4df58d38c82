package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// TenantService resolves caller identities (emails) to tenant records.
// Every other service resolves the tenant first and fails fast with
// ErrTenantNotFound before touching any catalog or ledger state.
type TenantService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTenantService creates a tenant service backed by the given database handle.
func NewTenantService(db *gorm.DB, log *zap.Logger) *TenantService {
	return &TenantService{db: db, log: log}
}

// Resolve looks up the tenant for an email. Exact match, no side effects.
func (s *TenantService) Resolve(email string) (*model.Tenant, error) {
	if email == "" {
		return nil, ErrTenantNotFound
	}

	var tenant model.Tenant
	result := s.db.Where("email = ?", email).First(&tenant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, result.Error
	}
	return &tenant, nil
}

// Ensure creates a tenant for the email if none exists yet. Idempotent:
// calling it twice leaves exactly one tenant for the email. A missing name
// makes the call a no-op so that onboarding cannot create half-filled tenants.
func (s *TenantService) Ensure(email, name string) error {
	if email == "" {
		return nil
	}

	_, err := s.Resolve(email)
	if err == nil {
		// Already onboarded.
		return nil
	}
	if !errors.Is(err, ErrTenantNotFound) {
		return err
	}
	if name == "" {
		return nil
	}

	tenant := model.Tenant{Email: email, Name: name}
	if result := s.db.Create(&tenant); result.Error != nil {
		return result.Error
	}

	s.log.Info("Tenant created",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("email", tenant.Email),
		zap.String("name", tenant.Name))
	return nil
}
