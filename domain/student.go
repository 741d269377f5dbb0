package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Grades = map[string]float64

type Student struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                      `gorm:"column:name;type:text;not null" json:"name"`
	Email     string                      `gorm:"column:email;type:text;unique;not null" json:"email"`
	Interests datatypes.JSONSlice[string] `gorm:"column:interests;type:jsonb" json:"interests"`
	Grades    datatypes.JSONType[Grades]  `gorm:"column:grades;type:jsonb" json:"grades"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StudentUpdate is a partial update; nil fields are left untouched.
type StudentUpdate struct {
	Name      *string
	Interests []string
	Grades    Grades
}

func (u StudentUpdate) IsEmpty() bool {
	return u.Name == nil && u.Interests == nil && u.Grades == nil
}
