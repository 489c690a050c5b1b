package repository

import (
	"time"

	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

// Row types for the fixed report templates. Each report is one
// aggregation query over completed bills or purchase intakes.

type SalesReportRow struct {
	Date          string  `json:"date"`
	BillCount     int64   `json:"bill_count"`
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"total_discount"`
	TotalCGST     float64 `json:"total_cgst"`
	TotalSGST     float64 `json:"total_sgst"`
	GrandTotal    float64 `json:"grand_total"`
}

type GSTReportRow struct {
	Date          string  `json:"date"`
	TaxableAmount float64 `json:"taxable_amount"`
	TotalCGST     float64 `json:"total_cgst"`
	TotalSGST     float64 `json:"total_sgst"`
}

type InventoryReportRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Batch        string  `json:"batch"`
	HSN          string  `json:"hsn"`
	Quantity     int     `json:"quantity"`
	Expiry       string  `json:"expiry"`
	PurchaseRate float64 `json:"purchase_rate"`
	StockValue   float64 `json:"stock_value"`
}

type PurchaseReportRow struct {
	Date          string  `json:"date"`
	PurchaseCount int64   `json:"purchase_count"`
	TaxableAmount float64 `json:"taxable_amount"`
	TotalGST      float64 `json:"total_gst"`
	GrandTotal    float64 `json:"grand_total"`
}

type SupplierPurchaseRow struct {
	SupplierName  string  `json:"supplier_name"`
	PurchaseCount int64   `json:"purchase_count"`
	GrandTotal    float64 `json:"grand_total"`
}

type ExpiryReportRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Batch    string `json:"batch"`
	Quantity int    `json:"quantity"`
	Expiry   string `json:"expiry"`
}

type ProfitabilityRow struct {
	ProductName  string  `json:"product_name"`
	QuantitySold int64   `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
}

type MovementRow struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Batch     string `json:"batch"`
	Sold      int64  `json:"sold"`
	Purchased int64  `json:"purchased"`
}

type HSNSaleRow struct {
	HSN           string  `json:"hsn"`
	QuantitySold  int64   `json:"quantity_sold"`
	TaxableAmount float64 `json:"taxable_amount"`
	TotalCGST     float64 `json:"total_cgst"`
	TotalSGST     float64 `json:"total_sgst"`
}

type DashboardStats struct {
	TodaySales     float64 `json:"today_sales"`
	TodayBillCount int64   `json:"today_bill_count"`
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	ExpiringCount  int64   `json:"expiring_count"`
	HeldBillCount  int64   `json:"held_bill_count"`
}

type ReportRepository interface {
	Sales(from, to time.Time) ([]SalesReportRow, error)
	GST(from, to time.Time) ([]GSTReportRow, error)
	Inventory() ([]InventoryReportRow, error)
	Purchases(from, to time.Time) ([]PurchaseReportRow, error)
	SupplierPurchases(from, to time.Time) ([]SupplierPurchaseRow, error)
	Expiry(toMonth string) ([]ExpiryReportRow, error)
	Profitability(from, to time.Time) ([]ProfitabilityRow, error)
	Movement(from, to time.Time) ([]MovementRow, error)
	HSNSales(from, to time.Time) ([]HSNSaleRow, error)
	GetDashboardStats(today time.Time, lowStockThreshold int, expiryCutoff string) (*DashboardStats, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) Sales(from, to time.Time) ([]SalesReportRow, error) {
	var rows []SalesReportRow
	err := r.db.Raw(`
		SELECT DATE(bill_date) AS date,
		       COUNT(*) AS bill_count,
		       COALESCE(SUM(subtotal), 0) AS subtotal,
		       COALESCE(SUM(total_discount), 0) AS total_discount,
		       COALESCE(SUM(total_cgst), 0) AS total_cgst,
		       COALESCE(SUM(total_sgst), 0) AS total_sgst,
		       COALESCE(SUM(grand_total), 0) AS grand_total
		FROM bills
		WHERE status = ? AND bill_date BETWEEN ? AND ?
		GROUP BY DATE(bill_date)
		ORDER BY date ASC`,
		model.BillCompleted, from, to,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) GST(from, to time.Time) ([]GSTReportRow, error) {
	var rows []GSTReportRow
	err := r.db.Raw(`
		SELECT DATE(bill_date) AS date,
		       COALESCE(SUM(subtotal - total_discount), 0) AS taxable_amount,
		       COALESCE(SUM(total_cgst), 0) AS total_cgst,
		       COALESCE(SUM(total_sgst), 0) AS total_sgst
		FROM bills
		WHERE status = ? AND bill_date BETWEEN ? AND ?
		GROUP BY DATE(bill_date)
		ORDER BY date ASC`,
		model.BillCompleted, from, to,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Inventory() ([]InventoryReportRow, error) {
	var rows []InventoryReportRow
	err := r.db.Raw(`
		SELECT id, name, batch, hsn, quantity, expiry, purchase_rate,
		       quantity * purchase_rate AS stock_value
		FROM products
		ORDER BY name ASC, batch ASC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Purchases(from, to time.Time) ([]PurchaseReportRow, error) {
	var rows []PurchaseReportRow
	err := r.db.Raw(`
		SELECT DATE(bill_date) AS date,
		       COUNT(*) AS purchase_count,
		       COALESCE(SUM(taxable_amount), 0) AS taxable_amount,
		       COALESCE(SUM(total_gst_amount), 0) AS total_gst,
		       COALESCE(SUM(grand_total), 0) AS grand_total
		FROM purchase_bills
		WHERE bill_date BETWEEN ? AND ?
		GROUP BY DATE(bill_date)
		ORDER BY date ASC`,
		from, to,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) SupplierPurchases(from, to time.Time) ([]SupplierPurchaseRow, error) {
	var rows []SupplierPurchaseRow
	err := r.db.Raw(`
		SELECT supplier_name,
		       COUNT(*) AS purchase_count,
		       COALESCE(SUM(grand_total), 0) AS grand_total
		FROM purchase_bills
		WHERE bill_date BETWEEN ? AND ?
		GROUP BY supplier_name
		ORDER BY grand_total DESC`,
		from, to,
	).Scan(&rows).Error
	return rows, err
}

// Expiry lists stocked products whose year-month expiry falls on or
// before the cutoff. The lexicographic comparison is valid because
// expiry is stored as "YYYY-MM".
func (r *reportRepo) Expiry(toMonth string) ([]ExpiryReportRow, error) {
	var rows []ExpiryReportRow
	err := r.db.Raw(`
		SELECT id, name, batch, quantity, expiry
		FROM products
		WHERE expiry <> '' AND expiry <= ? AND quantity > 0
		ORDER BY expiry ASC`,
		toMonth,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Profitability(from, to time.Time) ([]ProfitabilityRow, error) {
	var rows []ProfitabilityRow
	err := r.db.Raw(`
		SELECT bi.product_name,
		       COALESCE(SUM(bi.quantity), 0) AS quantity_sold,
		       COALESCE(SUM(bi.rate * bi.quantity * (1 - bi.discount / 100)), 0) AS revenue,
		       COALESCE(SUM(p.purchase_rate * bi.quantity), 0) AS cost,
		       COALESCE(SUM(bi.rate * bi.quantity * (1 - bi.discount / 100)), 0)
		         - COALESCE(SUM(p.purchase_rate * bi.quantity), 0) AS profit
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		LEFT JOIN products p ON p.id = bi.product_id
		WHERE b.status = ? AND b.bill_date BETWEEN ? AND ?
		GROUP BY bi.product_name
		ORDER BY profit DESC`,
		model.BillCompleted, from, to,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Movement(from, to time.Time) ([]MovementRow, error) {
	var rows []MovementRow
	err := r.db.Raw(`
		SELECT p.id AS product_id, p.name, p.batch,
		       COALESCE((
		           SELECT SUM(bi.quantity) FROM bill_items bi
		           JOIN bills b ON b.id = bi.bill_id
		           WHERE bi.product_id = p.id AND b.status = ?
		             AND b.bill_date BETWEEN ? AND ?
		       ), 0) AS sold,
		       COALESCE((
		           SELECT SUM(pi.quantity + pi.free_quantity) FROM purchase_bill_items pi
		           JOIN purchase_bills pb ON pb.id = pi.purchase_bill_id
		           WHERE pi.product_name = p.name AND pi.batch = p.batch
		             AND pb.bill_date BETWEEN ? AND ?
		       ), 0) AS purchased
		FROM products p
		ORDER BY sold DESC`,
		model.BillCompleted, from, to, from, to,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) HSNSales(from, to time.Time) ([]HSNSaleRow, error) {
	var rows []HSNSaleRow
	err := r.db.Raw(`
		SELECT COALESCE(p.hsn, '') AS hsn,
		       COALESCE(SUM(bi.quantity), 0) AS quantity_sold,
		       COALESCE(SUM(bi.rate * bi.quantity * (1 - bi.discount / 100)), 0) AS taxable_amount,
		       COALESCE(SUM(bi.rate * bi.quantity * (1 - bi.discount / 100) * bi.cgst / 100), 0) AS total_cgst,
		       COALESCE(SUM(bi.rate * bi.quantity * (1 - bi.discount / 100) * bi.sgst / 100), 0) AS total_sgst
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		LEFT JOIN products p ON p.id = bi.product_id
		WHERE b.status = ? AND b.bill_date BETWEEN ? AND ?
		GROUP BY COALESCE(p.hsn, '')
		ORDER BY taxable_amount DESC`,
		model.BillCompleted, from, to,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) GetDashboardStats(today time.Time, lowStockThreshold int, expiryCutoff string) (*DashboardStats, error) {
	var stats DashboardStats

	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	r.db.Model(&model.Bill{}).
		Where("status = ? AND bill_date >= ? AND bill_date < ?", model.BillCompleted, dayStart, dayEnd).
		Count(&stats.TodayBillCount)
	r.db.Model(&model.Bill{}).
		Where("status = ? AND bill_date >= ? AND bill_date < ?", model.BillCompleted, dayStart, dayEnd).
		Select("COALESCE(SUM(grand_total), 0)").Scan(&stats.TodaySales)
	r.db.Model(&model.Bill{}).Where("status = ?", model.BillHeld).Count(&stats.HeldBillCount)
	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Product{}).Where("quantity < ?", lowStockThreshold).Count(&stats.LowStockCount)
	r.db.Model(&model.Product{}).
		Where("expiry <> '' AND expiry <= ? AND quantity > 0", expiryCutoff).
		Count(&stats.ExpiringCount)

	return &stats, nil
}
