package repository

import (
	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type BillRepository interface {
	FindByStatus(status model.BillStatus) ([]model.Bill, error)
	FindByID(id uint) (*model.Bill, error)
	FindByCustomer(customerID uint) ([]model.Bill, error)
}

type billRepo struct {
	db *gorm.DB
}

func NewBillRepo(db *gorm.DB) BillRepository {
	return &billRepo{db}
}

func (r *billRepo) FindByStatus(status model.BillStatus) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.Where("status = ?", status).Order("id DESC").Find(&bills).Error
	return bills, err
}

func (r *billRepo) FindByID(id uint) (*model.Bill, error) {
	var bill model.Bill
	err := r.db.Preload("Items").First(&bill, "id = ?", id).Error
	return &bill, err
}

func (r *billRepo) FindByCustomer(customerID uint) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.Preload("Items").
		Where("customer_id = ? AND status = ?", customerID, model.BillCompleted).
		Order("id DESC").Find(&bills).Error
	return bills, err
}
