package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// LedgerService is the stock mutation engine. All quantity changes go through
// it so that every change is paired with exactly one ledger row, and a
// product's quantity can never drop below zero even under concurrent
// withdrawals.
type LedgerService struct {
	db      *gorm.DB
	tenants *TenantService
	log     *zap.Logger
}

// NewLedgerService creates a ledger service backed by the given database handle.
func NewLedgerService(db *gorm.DB, tenants *TenantService, log *zap.Logger) *LedgerService {
	return &LedgerService{db: db, tenants: tenants, log: log}
}

// OrderItem is one line of a withdrawal batch. It only lives for the duration
// of a single WithdrawBatch call and is never persisted.
type OrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// WithdrawResult is the structured outcome of a withdrawal batch. Domain
// failures never surface as Go errors: the caller always gets the offending
// product and the violated constraint so the operator can be told exactly
// what went wrong.
type WithdrawResult struct {
	Success   bool   `json:"success"`
	Reason    string `json:"reason,omitempty"`
	ProductID uint   `json:"product_id,omitempty"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

// Replenish increases a product's stock and appends one IN ledger row. The
// increment and the ledger insert are a single atomic unit: if either fails,
// neither is visible.
func (s *LedgerService) Replenish(email string, productID uint, quantity int) (*model.StockTransaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: replenish quantity must be greater than zero", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	entry := model.StockTransaction{
		Type:      model.TransactionIn,
		Quantity:  quantity,
		ProductID: productID,
		TenantID:  tenant.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// The tenant scope predicate lives in the same statement as the
		// increment, so a foreign product id can never be written to.
		result := tx.Model(&model.Product{}).
			Where("id = ? AND tenant_id = ?", productID, tenant.ID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Stock replenished",
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Uint("tenant_id", tenant.ID))
	return &entry, nil
}

// WithdrawBatch deducts stock for a set of order items as one all-or-nothing
// unit. A validation pass checks every item before anything is written; the
// commit pass then applies every decrement with a conditional update that
// re-verifies availability, so a concurrent withdrawal that invalidated the
// earlier read makes the whole batch roll back instead of driving stock
// negative. On failure no product is decremented and no ledger row exists.
func (s *LedgerService) WithdrawBatch(email string, items []OrderItem) (WithdrawResult, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return WithdrawResult{}, err
	}

	// Validation pass: read-only, aborts the whole batch on the first bad item.
	for _, item := range items {
		var product model.Product
		result := s.db.Where("id = ? AND tenant_id = ?", item.ProductID, tenant.ID).
			First(&product)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return WithdrawResult{
					Reason:    fmt.Sprintf("product %d not found", item.ProductID),
					ProductID: item.ProductID,
				}, nil
			}
			return WithdrawResult{}, result.Error
		}

		if item.Quantity <= 0 {
			return WithdrawResult{
				Reason:    fmt.Sprintf("requested quantity for %q must be greater than zero", product.Name),
				ProductID: product.ID,
				Requested: item.Quantity,
				Available: product.Quantity,
			}, nil
		}

		if product.Quantity < item.Quantity {
			stockErr := &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Unit:        product.Unit,
				Requested:   item.Quantity,
				Available:   product.Quantity,
			}
			return WithdrawResult{
				Reason:    stockErr.Error(),
				ProductID: product.ID,
				Requested: item.Quantity,
				Available: product.Quantity,
			}, nil
		}
	}

	// Commit pass: one database transaction for every decrement and every
	// ledger row. Returning an error from the closure rolls back everything.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(&model.Product{}).
				Where("id = ? AND tenant_id = ? AND quantity >= ?",
					item.ProductID, tenant.ID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Stock changed between validation and commit. Re-read to
				// report the current availability.
				var product model.Product
				if read := tx.Where("id = ? AND tenant_id = ?", item.ProductID, tenant.ID).
					First(&product); read.Error != nil {
					return ErrNotFound
				}
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Unit:        product.Unit,
					Requested:   item.Quantity,
					Available:   product.Quantity,
				}
			}

			entry := model.StockTransaction{
				Type:      model.TransactionOut,
				Quantity:  item.Quantity,
				ProductID: item.ProductID,
				TenantID:  tenant.ID,
			}
			if createErr := tx.Create(&entry).Error; createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			s.log.Warn("Withdrawal batch rolled back",
				zap.Uint("product_id", stockErr.ProductID),
				zap.Int("requested", stockErr.Requested),
				zap.Int("available", stockErr.Available),
				zap.Uint("tenant_id", tenant.ID))
			return WithdrawResult{
				Reason:    stockErr.Error(),
				ProductID: stockErr.ProductID,
				Requested: stockErr.Requested,
				Available: stockErr.Available,
			}, nil
		}
		if errors.Is(err, ErrNotFound) {
			return WithdrawResult{Reason: "product no longer exists"}, nil
		}
		return WithdrawResult{}, err
	}

	s.log.Info("Withdrawal batch committed",
		zap.Int("items", len(items)),
		zap.Uint("tenant_id", tenant.ID))
	return WithdrawResult{Success: true}, nil
}
