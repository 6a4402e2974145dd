package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single todo item owned by exactly one user. CompletedAt is an
// epoch-millisecond timestamp present if and only if Completed is true.
type Todo struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Text        string    `json:"text" gorm:"size:1024;not null"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CompletedAt *int64    `json:"completed_at,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:char(36);index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
