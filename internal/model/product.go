package model

import "time"

// Product is a catalog row. A (name, batch) pair identifies one stock
// line; the same medicine with a different batch is a separate row with
// its own expiry and rates.
type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_products_name_batch" json:"name" validate:"required"`
	HSN               string    `gorm:"column:hsn;type:varchar(20)" json:"hsn"`
	Batch             string    `gorm:"type:varchar(50);uniqueIndex:idx_products_name_batch" json:"batch"`
	Packaging         string    `gorm:"type:varchar(50)" json:"packaging"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity"`
	MRP               float64   `gorm:"column:mrp;default:0" json:"mrp"`
	PurchaseRate      float64   `gorm:"default:0" json:"purchase_rate"`
	SaleRate          float64   `gorm:"default:0" json:"sale_rate"`
	SaleRateInclusive bool      `gorm:"default:false" json:"sale_rate_inclusive"`
	Expiry            string    `gorm:"type:varchar(7)" json:"expiry" validate:"omitempty,expiry_month"` // YYYY-MM
	CGST              float64   `gorm:"column:cgst;default:0" json:"cgst"`
	SGST              float64   `gorm:"column:sgst;default:0" json:"sgst"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
