package model

import (
	"time"
)

// Tenant represents an isolated organization scope.
// Every category, product and stock transaction belongs to exactly one tenant,
// and all queries are partitioned by tenant ID.
type Tenant struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
