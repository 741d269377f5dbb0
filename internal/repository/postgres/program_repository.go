package postgres

import (
	"context"
	"errors"
	"fmt"

	"studyRecommender/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramRepository struct {
	DB *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{
		DB: db,
	}
}

func (r *ProgramRepository) Create(ctx context.Context, program *domain.Program) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(program).Error; err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}

	return nil
}

func (r *ProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return domain.Program{}, fmt.Errorf("context error: %w", err)
	}

	var program domain.Program

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&program).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Program{}, domain.ErrProgramNotFound
		}
		return domain.Program{}, fmt.Errorf("failed to find program: %w", err)
	}

	return program, nil
}

func (r *ProgramRepository) FindAll(ctx context.Context) ([]domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var programs []domain.Program
	err := r.DB.WithContext(ctx).Order("created_at, id").Find(&programs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find programs: %w", err)
	}

	return programs, nil
}

func (r *ProgramRepository) Update(ctx context.Context, program *domain.Program) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Program{}).Where("id = ?", program.ID).
		Select("name", "description", "tags", "skills", "updated_at").
		Updates(program)
	if result.Error != nil {
		return fmt.Errorf("failed to update program: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProgramNotFound
	}

	return nil
}

func (r *ProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Program{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete program: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProgramNotFound
	}

	return nil
}
