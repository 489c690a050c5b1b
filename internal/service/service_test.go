package service

import (
	"math"
	"path/filepath"
	"testing"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.Supplier{},
		&model.Setting{},
		&model.Bill{},
		&model.BillItem{},
		&model.PurchaseBill{},
		&model.PurchaseBillItem{},
		&model.StockAdjustment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db        *gorm.DB
	billing   BillingService
	purchases PurchaseService
	catalog   CatalogService
	directory DirectoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	billRepo := repository.NewBillRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	adjustmentRepo := repository.NewStockAdjustmentRepo(db)

	return &fixture{
		db:        db,
		billing:   NewBillingService(billRepo, productRepo, customerRepo, db, nil),
		purchases: NewPurchaseService(purchaseRepo, productRepo, supplierRepo, db, nil),
		catalog:   NewCatalogService(productRepo, adjustmentRepo, settingRepo, db, nil),
		directory: NewDirectoryService(customerRepo, supplierRepo, billRepo),
	}
}

func (f *fixture) seedProduct(t *testing.T, name, batch string, quantity int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:         name,
		Batch:        batch,
		Quantity:     quantity,
		MRP:          50,
		PurchaseRate: 30,
		SaleRate:     40,
		CGST:         6,
		SGST:         6,
		Expiry:       "2027-06",
	}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func (f *fixture) productQuantity(t *testing.T, id uint) int {
	t.Helper()
	var p model.Product
	if err := f.db.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product %d: %v", id, err)
	}
	return p.Quantity
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
