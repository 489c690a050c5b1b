package repository

import (
	"strconv"

	"go-pharmacy-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	All() (map[string]string, error)
	Upsert(key, value string) error
	LowStockThreshold() int
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) All() (map[string]string, error) {
	var rows []model.Setting
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *settingRepo) Upsert(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}

func (r *settingRepo) LowStockThreshold() int {
	var row model.Setting
	if err := r.db.First(&row, "setting_key = ?", "lowStockThreshold").Error; err != nil {
		return model.DefaultLowStockThreshold
	}
	n, err := strconv.Atoi(row.Value)
	if err != nil || n < 0 {
		return model.DefaultLowStockThreshold
	}
	return n
}
