package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const AlgorithmContentBased = "content-based"

// Recommendation is one served result kept as history.
type Recommendation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"column:student_id;type:uuid;index;not null" json:"student_id"`
	ProgramID   uuid.UUID `gorm:"column:program_id;type:uuid;not null" json:"program_id"`
	Score       float64   `gorm:"column:score;not null" json:"score"`
	Explanation string    `gorm:"column:explanation;type:text" json:"explanation"`
	Algorithm   string    `gorm:"column:algorithm;type:text;not null" json:"algorithm"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`

	Program *Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ProgramRecommendation is a ranked program as returned to clients.
type ProgramRecommendation struct {
	ProgramID          uuid.UUID `json:"program_id"`
	ProgramName        string    `json:"program_name"`
	ProgramDescription string    `json:"program_description"`
	Score              float64   `json:"score"`
	Explanation        string    `json:"explanation"`
	Matches            []string  `json:"matches"`
	Tags               []string  `json:"tags"`
	Skills             []string  `json:"skills"`
}
