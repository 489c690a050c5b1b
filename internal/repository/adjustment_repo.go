package repository

import (
	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type StockAdjustmentRepository interface {
	Create(tx *gorm.DB, adj *model.StockAdjustment) error
	FindAll() ([]model.StockAdjustment, error)
}

type stockAdjustmentRepo struct {
	db *gorm.DB
}

func NewStockAdjustmentRepo(db *gorm.DB) StockAdjustmentRepository {
	return &stockAdjustmentRepo{db}
}

func (r *stockAdjustmentRepo) Create(tx *gorm.DB, adj *model.StockAdjustment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(adj).Error
}

func (r *stockAdjustmentRepo) FindAll() ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.Preload("Product").Order("id DESC").Find(&adjustments).Error
	return adjustments, err
}
