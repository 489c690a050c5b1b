package service

import (
	"errors"
	"fmt"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/ws"
	"go-pharmacy-pos/pkg/validator"

	"gorm.io/gorm"
)

var ErrPurchaseNotFound = errors.New("purchase bill not found")

type PurchaseItemInput struct {
	ProductName       string  `json:"product_name" validate:"required"`
	HSN               string  `json:"hsn"`
	Batch             string  `json:"batch"`
	Packaging         string  `json:"packaging"`
	Quantity          int     `json:"quantity" validate:"required,gt=0"`
	FreeQuantity      int     `json:"free_quantity" validate:"gte=0"`
	MRP               float64 `json:"mrp" validate:"gte=0"`
	PurchaseRate      float64 `json:"purchase_rate" validate:"gte=0"`
	SaleRate          float64 `json:"sale_rate" validate:"gte=0"`
	SaleRateInclusive bool    `json:"sale_rate_inclusive"`
	Discount          float64 `json:"discount" validate:"gte=0,lte=100"`
	Expiry            string  `json:"expiry" validate:"omitempty,expiry_month"`
	CGST              float64 `json:"cgst" validate:"gte=0"`
	SGST              float64 `json:"sgst" validate:"gte=0"`
	IGST              float64 `json:"igst" validate:"gte=0"`
}

type PurchaseInput struct {
	SupplierName    string              `json:"supplier_name" validate:"required"`
	BillNumber      string              `json:"bill_number" validate:"required"`
	BillDate        string              `json:"bill_date" validate:"omitempty,datetime=2006-01-02"`
	OverallDiscount float64             `json:"overall_discount" validate:"gte=0,lte=100"`
	Items           []PurchaseItemInput `json:"items" validate:"required,min=1,dive"`
}

type PurchaseService interface {
	ListPurchases() ([]model.PurchaseBill, error)
	GetPurchase(id uint) (*model.PurchaseBill, error)
	CreatePurchase(in *PurchaseInput) (*model.PurchaseBill, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	db           *gorm.DB
	hub          *ws.Hub
}

func NewPurchaseService(pRepo repository.PurchaseRepository, prodRepo repository.ProductRepository, sRepo repository.SupplierRepository, db *gorm.DB, hub *ws.Hub) PurchaseService {
	return &purchaseService{
		purchaseRepo: pRepo,
		productRepo:  prodRepo,
		supplierRepo: sRepo,
		db:           db,
		hub:          hub,
	}
}

func (s *purchaseService) ListPurchases() ([]model.PurchaseBill, error) {
	return s.purchaseRepo.FindAll()
}

func (s *purchaseService) GetPurchase(id uint) (*model.PurchaseBill, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *purchaseService) CreatePurchase(in *PurchaseInput) (*model.PurchaseBill, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	totals := CalculatePurchaseTotals(in.purchaseLines(), in.OverallDiscount)
	taxType := model.TaxIntraState
	for _, it := range in.Items {
		if it.IGST > 0 {
			taxType = model.TaxInterState
			break
		}
	}

	var purchase model.PurchaseBill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		supplier, err := s.resolveSupplier(tx, in.SupplierName)
		if err != nil {
			return err
		}

		purchase = model.PurchaseBill{
			SupplierID:             supplier.ID,
			SupplierName:           supplier.Name,
			BillNumber:             in.BillNumber,
			BillDate:               parseBillDate(in.BillDate),
			TaxType:                taxType,
			TotalPreTax:            totals.TotalPreTax,
			OverallDiscountPercent: in.OverallDiscount,
			OverallDiscountAmount:  totals.OverallDiscountAmount,
			TaxableAmount:          totals.TaxableAmount,
			TotalGSTAmount:         totals.TotalGST,
			Rounding:               totals.Rounding,
			GrandTotal:             totals.GrandTotal,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		items := make([]model.PurchaseBillItem, len(in.Items))
		for i, it := range in.Items {
			items[i] = model.PurchaseBillItem{
				PurchaseBillID:    purchase.ID,
				ProductName:       it.ProductName,
				HSN:               it.HSN,
				Batch:             it.Batch,
				Packaging:         it.Packaging,
				Quantity:          it.Quantity,
				FreeQuantity:      it.FreeQuantity,
				MRP:               it.MRP,
				PurchaseRate:      it.PurchaseRate,
				SaleRate:          it.SaleRate,
				SaleRateInclusive: it.SaleRateInclusive,
				Discount:          it.Discount,
				Expiry:            it.Expiry,
				CGST:              it.CGST,
				SGST:              it.SGST,
				IGST:              it.IGST,
				Amount:            totals.LineAmounts[i],
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		purchase.Items = items

		for _, it := range in.Items {
			if err := s.upsertProduct(tx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "purchase_created",
		Payload: map[string]interface{}{"id": purchase.ID, "supplier": purchase.SupplierName},
		Message: fmt.Sprintf("Purchase %s from %s received", purchase.BillNumber, purchase.SupplierName),
	})
	return &purchase, nil
}

func (s *purchaseService) resolveSupplier(tx *gorm.DB, name string) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByName(tx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	supplier := &model.Supplier{Name: name}
	if err := s.supplierRepo.Create(tx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// upsertProduct matches the intake line to a product by (name, batch).
// An existing row gains quantity + free_quantity and has its master
// fields overwritten with the line's values; a new key creates the
// row. Last purchase wins.
func (s *purchaseService) upsertProduct(tx *gorm.DB, it PurchaseItemInput) error {
	incoming := it.Quantity + it.FreeQuantity

	existing, err := s.productRepo.FindByNameBatch(tx, it.ProductName, it.Batch)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		product := model.Product{
			Name:              it.ProductName,
			HSN:               it.HSN,
			Batch:             it.Batch,
			Packaging:         it.Packaging,
			Quantity:          incoming,
			MRP:               it.MRP,
			PurchaseRate:      it.PurchaseRate,
			SaleRate:          it.SaleRate,
			SaleRateInclusive: it.SaleRateInclusive,
			Expiry:            it.Expiry,
			CGST:              it.CGST,
			SGST:              it.SGST,
		}
		return tx.Create(&product).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"hsn":                 it.HSN,
		"packaging":           it.Packaging,
		"mrp":                 it.MRP,
		"purchase_rate":       it.PurchaseRate,
		"sale_rate":           it.SaleRate,
		"sale_rate_inclusive": it.SaleRateInclusive,
		"expiry":              it.Expiry,
		"cgst":                it.CGST,
		"sgst":                it.SGST,
	}
	if err := tx.Model(&model.Product{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	return s.productRepo.AdjustQuantity(tx, existing.ID, incoming)
}

func (in *PurchaseInput) purchaseLines() []PurchaseLine {
	lines := make([]PurchaseLine, len(in.Items))
	for i, it := range in.Items {
		lines[i] = PurchaseLine{
			PurchaseRate: it.PurchaseRate,
			Quantity:     it.Quantity,
			FreeQuantity: it.FreeQuantity,
			Discount:     it.Discount,
			CGST:         it.CGST,
			SGST:         it.SGST,
			IGST:         it.IGST,
		}
	}
	return lines
}
