package model

import "time"

// StockAdjustment is an append-only audit row. Negative
// QuantityAdjusted removes stock, positive adds. Rows are never updated
// or deleted.
type StockAdjustment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductID        uint      `gorm:"not null;index" json:"product_id" validate:"required"`
	Product          *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	QuantityAdjusted int       `gorm:"not null" json:"quantity_adjusted" validate:"required"`
	Reason           string    `gorm:"type:varchar(100);not null" json:"reason" validate:"required"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}
