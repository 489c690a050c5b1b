package repository

import (
	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	FindAll() ([]model.Supplier, error)
	FindByName(tx *gorm.DB, name string) (*model.Supplier, error)
	Create(tx *gorm.DB, supplier *model.Supplier) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByName(tx *gorm.DB, name string) (*model.Supplier, error) {
	if tx == nil {
		tx = r.db
	}
	var supplier model.Supplier
	err := tx.First(&supplier, "name = ?", name).Error
	return &supplier, err
}

func (r *supplierRepo) Create(tx *gorm.DB, supplier *model.Supplier) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(supplier).Error
}
