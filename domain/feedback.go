package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;index;not null" json:"student_id"`
	ProgramID uuid.UUID `gorm:"column:program_id;type:uuid;not null" json:"program_id"`
	Clicked   bool      `gorm:"column:clicked;default:false" json:"clicked"`
	Accepted  bool      `gorm:"column:accepted;default:false" json:"accepted"`
	Rating    *int      `gorm:"column:rating" json:"rating,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
