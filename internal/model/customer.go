package model

import "time"

// Customer is created lazily the first time a sale references a mobile
// number not yet on file. Mobile is the natural key.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Mobile     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile" validate:"required"`
	DoctorName string    `gorm:"type:varchar(255)" json:"doctor_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Supplier is created lazily on the first purchase bill referencing it.
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
