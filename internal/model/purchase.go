package model

import "time"

type TaxType string

const (
	TaxIntraState TaxType = "CGST_SGST"
	TaxInterState TaxType = "IGST"
)

// PurchaseBill is a supplier intake document. Creating one adds each
// item's quantity (plus free units) to the matching product, creating
// the product row if the (name, batch) key is new.
type PurchaseBill struct {
	ID                     uint               `gorm:"primaryKey" json:"id"`
	SupplierID             uint               `gorm:"not null;index" json:"supplier_id"`
	Supplier               *Supplier          `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	SupplierName           string             `gorm:"type:varchar(255);not null" json:"supplier_name"`
	BillNumber             string             `gorm:"type:varchar(50);not null" json:"bill_number"`
	BillDate               time.Time          `gorm:"type:date;not null;index" json:"bill_date"`
	TaxType                TaxType            `gorm:"type:varchar(10);default:'CGST_SGST'" json:"tax_type"`
	TotalPreTax            float64            `gorm:"default:0" json:"total_pre_tax"`
	OverallDiscountPercent float64            `gorm:"default:0" json:"overall_discount_percent"`
	OverallDiscountAmount  float64            `gorm:"default:0" json:"overall_discount_amount"`
	TaxableAmount          float64            `gorm:"default:0" json:"taxable_amount"`
	TotalGSTAmount         float64            `gorm:"column:total_gst_amount;default:0" json:"total_gst_amount"`
	Rounding               float64            `gorm:"default:0" json:"rounding"`
	GrandTotal             float64            `gorm:"default:0" json:"grand_total"`
	Items                  []PurchaseBillItem `gorm:"foreignKey:PurchaseBillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
}

type PurchaseBillItem struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	PurchaseBillID    uint    `gorm:"not null;index" json:"purchase_bill_id"`
	ProductName       string  `gorm:"type:varchar(255);not null" json:"product_name"`
	HSN               string  `gorm:"column:hsn;type:varchar(20)" json:"hsn"`
	Batch             string  `gorm:"type:varchar(50)" json:"batch"`
	Packaging         string  `gorm:"type:varchar(50)" json:"packaging"`
	Quantity          int     `gorm:"not null;default:0" json:"quantity"`
	FreeQuantity      int     `gorm:"default:0" json:"free_quantity"`
	MRP               float64 `gorm:"column:mrp;default:0" json:"mrp"`
	PurchaseRate      float64 `gorm:"default:0" json:"purchase_rate"`
	SaleRate          float64 `gorm:"default:0" json:"sale_rate"`
	SaleRateInclusive bool    `gorm:"default:false" json:"sale_rate_inclusive"`
	Discount          float64 `gorm:"default:0" json:"discount"`
	Expiry            string  `gorm:"type:varchar(7)" json:"expiry"`
	CGST              float64 `gorm:"column:cgst;default:0" json:"cgst"`
	SGST              float64 `gorm:"column:sgst;default:0" json:"sgst"`
	IGST              float64 `gorm:"column:igst;default:0" json:"igst"`
	Amount            float64 `gorm:"default:0" json:"amount"` // line taxable + line GST, computed server-side
}
