package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studyRecommender/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{
		DB: db,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	if err := r.DB.WithContext(ctx).Create(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailExists
		}
		return err
	}

	return nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	var student domain.Student

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Student{}, domain.ErrStudentNotFound
		}
		return domain.Student{}, err
	}

	return student, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (domain.Student, error) {
	var student domain.Student

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Student{}, domain.ErrStudentNotFound
		}
		return domain.Student{}, err
	}

	return student, nil
}

// Update writes only the fields set on update.
func (r *StudentRepository) Update(ctx context.Context, id uuid.UUID, update domain.StudentUpdate) error {
	updateData := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.Name != nil {
		updateData["name"] = *update.Name
	}
	if update.Interests != nil {
		updateData["interests"] = datatypes.JSONSlice[string](update.Interests)
	}
	if update.Grades != nil {
		updateData["grades"] = datatypes.NewJSONType(update.Grades)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Student{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}
