package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CREATE TABLE public.programs (
//     id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//     name        TEXT NOT NULL,
//     description TEXT,
//     tags        JSONB DEFAULT '[]',
//     skills      JSONB DEFAULT '[]',
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Program struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                      `gorm:"column:name;type:text;not null" json:"name"`
	Description string                      `gorm:"column:description;type:text" json:"description"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb" json:"tags"`
	Skills      datatypes.JSONSlice[string] `gorm:"column:skills;type:jsonb" json:"skills"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Program) TableName() string {
	return "programs"
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
