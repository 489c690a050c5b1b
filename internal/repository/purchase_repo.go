package repository

import (
	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	FindAll() ([]model.PurchaseBill, error)
	FindByID(id uint) (*model.PurchaseBill, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) FindAll() ([]model.PurchaseBill, error) {
	var purchases []model.PurchaseBill
	err := r.db.Order("id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uint) (*model.PurchaseBill, error) {
	var purchase model.PurchaseBill
	err := r.db.Preload("Items").First(&purchase, "id = ?", id).Error
	return &purchase, err
}
