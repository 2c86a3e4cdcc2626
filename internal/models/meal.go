package models

import "time"

// Meal is a single recorded meal. Date is the caller-supplied "when eaten"
// instant stored as epoch milliseconds, distinct from the record timestamps.
type Meal struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:varchar(500);not null"`
	InDiet      bool      `json:"in_diet" gorm:"not null"`
	Date        int64     `json:"date" gorm:"not null;index"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	User        *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
