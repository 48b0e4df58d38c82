package model

import (
	"time"
)

// TransactionType marks the direction of a stock movement.
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"  // replenishment
	TransactionOut TransactionType = "OUT" // withdrawal
)

// StockTransaction is an immutable ledger entry. One row is appended for every
// quantity change applied through the stock ledger; rows are never updated or
// deleted, so the ledger is a complete audit trail of stock movements.
type StockTransaction struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	Type      TransactionType `json:"type" gorm:"type:varchar(10);index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Product   Product         `json:"-" gorm:"foreignKey:ProductID"`
	TenantID  uint            `json:"tenant_id" gorm:"index;not null"`
	CreatedAt time.Time       `json:"created_at"`
}
