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

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product with same name & batch already exists")
)

type StockAdjustmentInput struct {
	ProductID        uint   `json:"product_id" validate:"required"`
	QuantityAdjusted int    `json:"quantity_adjusted" validate:"required"`
	Reason           string `json:"reason" validate:"required"`
	Notes            string `json:"notes"`
}

// CatalogService covers the product master, the append-only stock
// adjustment log, and the settings key/value store.
type CatalogService interface {
	ListProducts() ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id uint, product *model.Product) (*model.Product, error)
	DeleteProduct(id uint) error

	AdjustStock(in *StockAdjustmentInput) (*model.StockAdjustment, error)
	ListAdjustments() ([]model.StockAdjustment, error)

	GetSettings() (map[string]interface{}, error)
	SaveSettings(settings map[string]string) error
}

type catalogService struct {
	productRepo    repository.ProductRepository
	adjustmentRepo repository.StockAdjustmentRepository
	settingRepo    repository.SettingRepository
	db             *gorm.DB
	hub            *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, aRepo repository.StockAdjustmentRepository, sRepo repository.SettingRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:    pRepo,
		adjustmentRepo: aRepo,
		settingRepo:    sRepo,
		db:             db,
		hub:            hub,
	}
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	return s.productRepo.Search(query, 50)
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	existing, err := s.productRepo.FindByNameBatch(nil, product.Name, product.Batch)
	if err == nil && existing.ID != 0 {
		return ErrDuplicateProduct
	}
	if product.Quantity < 0 {
		product.Quantity = 0
	}
	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(id uint, req *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	// Direct edits may move the (name, batch) key onto another row.
	if req.Name != existing.Name || req.Batch != existing.Batch {
		if dup, err := s.productRepo.FindByNameBatch(nil, req.Name, req.Batch); err == nil && dup.ID != id {
			return nil, ErrDuplicateProduct
		}
	}

	existing.Name = req.Name
	existing.HSN = req.HSN
	existing.Batch = req.Batch
	existing.Packaging = req.Packaging
	existing.Quantity = req.Quantity
	if existing.Quantity < 0 {
		existing.Quantity = 0
	}
	existing.MRP = req.MRP
	existing.PurchaseRate = req.PurchaseRate
	existing.SaleRate = req.SaleRate
	existing.SaleRateInclusive = req.SaleRateInclusive
	existing.Expiry = req.Expiry
	existing.CGST = req.CGST
	existing.SGST = req.SGST

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "product_updated",
		Payload: map[string]interface{}{"id": existing.ID, "name": existing.Name, "quantity": existing.Quantity},
	})
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// AdjustStock appends an audit row and applies the signed delta to the
// product in one transaction. The log is never updated or deleted.
func (s *catalogService) AdjustStock(in *StockAdjustmentInput) (*model.StockAdjustment, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	adj := model.StockAdjustment{
		ProductID:        in.ProductID,
		QuantityAdjusted: in.QuantityAdjusted,
		Reason:           in.Reason,
		Notes:            in.Notes,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", in.ProductID).Error; err != nil {
			return ErrProductNotFound
		}
		if err := s.adjustmentRepo.Create(tx, &adj); err != nil {
			return err
		}
		return s.productRepo.AdjustQuantity(tx, in.ProductID, in.QuantityAdjusted)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "stock_adjusted",
		Payload: map[string]interface{}{"product_id": adj.ProductID, "quantity_adjusted": adj.QuantityAdjusted, "reason": adj.Reason},
	})
	return &adj, nil
}

func (s *catalogService) ListAdjustments() ([]model.StockAdjustment, error) {
	return s.adjustmentRepo.FindAll()
}

// GetSettings returns the flat settings object. lowStockThreshold is
// the one key surfaced as a number.
func (s *catalogService) GetSettings() (map[string]interface{}, error) {
	raw, err := s.settingRepo.All()
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	if _, ok := raw["lowStockThreshold"]; ok {
		out["lowStockThreshold"] = s.settingRepo.LowStockThreshold()
	}
	return out, nil
}

func (s *catalogService) SaveSettings(settings map[string]string) error {
	for key, value := range settings {
		if err := s.settingRepo.Upsert(key, value); err != nil {
			return err
		}
	}
	return nil
}
