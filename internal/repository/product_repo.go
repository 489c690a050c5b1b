package repository

import (
	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByNameBatch(tx *gorm.DB, name, batch string) (*model.Product, error)
	Search(query string, limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	AdjustQuantity(tx *gorm.DB, id uint, delta int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("id DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByNameBatch(tx *gorm.DB, name, batch string) (*model.Product, error) {
	if tx == nil {
		tx = r.db
	}
	var product model.Product
	err := tx.First(&product, "name = ? AND batch = ?", name, batch).Error
	return &product, err
}

func (r *productRepo) Search(query string, limit int) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Order("id DESC").Limit(limit)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR batch LIKE ? OR hsn LIKE ?", like, like, like)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uint) error {
	return r.db.Delete(&model.Product{}, id).Error
}

// AdjustQuantity applies a signed stock delta in the caller's
// transaction. The quantity is clamped at zero in the UPDATE itself so
// a decrement can never drive it negative, whatever the row held.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr(
			"CASE WHEN quantity + ? < 0 THEN 0 ELSE quantity + ? END", delta, delta,
		)).Error
}
