package model

import (
	"time"
)

// Product represents an inventory item owned by a tenant.
// Quantity is only ever changed through the stock ledger so that every change
// leaves a matching StockTransaction row; the one exception is the product
// update endpoint, which may overwrite quantity directly as an unaudited
// correction.
type Product struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	Unit        string    `json:"unit" gorm:"type:varchar(50)"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(512)"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	Category    Category  `json:"-" gorm:"foreignKey:CategoryID"`
	TenantID    uint      `json:"tenant_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
