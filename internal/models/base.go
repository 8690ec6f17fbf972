package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model: string uuid keys and hard deletes, so a removed
// user's email and username become available again.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// All lists every persisted entity in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Meal{},
		&Goal{},
		&Exercise{},
		&Workout{},
		&ExerciseLog{},
	}
}
