package model

import "time"

type BillStatus string

const (
	BillCompleted BillStatus = "Completed"
	BillHeld      BillStatus = "Held"
)

// Bill is a sale document. Monetary totals are always recomputed
// server-side from the items; a Held bill has no stock impact until it
// transitions to Completed.
type Bill struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	BillNumber             string     `gorm:"type:varchar(30);uniqueIndex" json:"bill_number"`
	BillDate               time.Time  `gorm:"type:date;not null;index" json:"bill_date"`
	PatientName            string     `gorm:"type:varchar(255)" json:"patient_name"`
	PatientMobile          string     `gorm:"type:varchar(20)" json:"patient_mobile"`
	DoctorName             string     `gorm:"type:varchar(255)" json:"doctor_name"`
	CustomerID             *uint      `gorm:"index" json:"customer_id,omitempty"`
	Customer               *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status                 BillStatus `gorm:"type:varchar(10);not null;default:'Completed';index" json:"status"`
	Subtotal               float64    `gorm:"default:0" json:"subtotal"`
	TotalDiscount          float64    `gorm:"default:0" json:"total_discount"`
	TotalCGST              float64    `gorm:"column:total_cgst;default:0" json:"total_cgst"`
	TotalSGST              float64    `gorm:"column:total_sgst;default:0" json:"total_sgst"`
	OverallDiscountPercent float64    `gorm:"default:0" json:"overall_discount_percent"`
	GrandTotal             float64    `gorm:"default:0" json:"grand_total"`
	Items                  []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// BillItem is a denormalized snapshot of the product at sale time.
// Later product edits never change a stored bill. ProductID is nil for
// free-text lines, which never touch stock.
type BillItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	BillID      uint    `gorm:"not null;index" json:"bill_id"`
	ProductID   *uint   `gorm:"index" json:"product_id,omitempty"`
	ProductName string  `gorm:"type:varchar(255)" json:"product_name"`
	Batch       string  `gorm:"type:varchar(50)" json:"batch"`
	MRP         float64 `gorm:"column:mrp;default:0" json:"mrp"`
	Rate        float64 `gorm:"default:0" json:"rate"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	Expiry      string  `gorm:"type:varchar(7)" json:"expiry"`
	Discount    float64 `gorm:"default:0" json:"discount"`
	CGST        float64 `gorm:"column:cgst;default:0" json:"cgst"`
	SGST        float64 `gorm:"column:sgst;default:0" json:"sgst"`
}
