package repository

import (
	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uint) (*model.Customer, error)
	FindByMobile(tx *gorm.DB, mobile string) (*model.Customer, error)
	Search(query string, limit int) ([]model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uint) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	return &customer, err
}

func (r *customerRepo) FindByMobile(tx *gorm.DB, mobile string) (*model.Customer, error) {
	if tx == nil {
		tx = r.db
	}
	var customer model.Customer
	err := tx.First(&customer, "mobile = ?", mobile).Error
	return &customer, err
}

func (r *customerRepo) Search(query string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.Order("name ASC").Limit(limit)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR mobile LIKE ?", like, like)
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id uint) error {
	return r.db.Delete(&model.Customer{}, id).Error
}
