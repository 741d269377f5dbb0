package program

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyRecommender/domain"
	"studyRecommender/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidProgramID = errors.New("invalid program id")
	ErrNameRequired     = errors.New("program name is required")
)

// ProgramRepository contract interface
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Program, error)
	FindAll(ctx context.Context) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type programService struct {
	programRepo ProgramRepository
}

func NewProgramService(programRepo ProgramRepository) *programService {
	return &programService{
		programRepo: programRepo,
	}
}

func (s *programService) GetAllPrograms(ctx context.Context) ([]domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	programs, err := s.programRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all programs", "error", err)
		return nil, err
	}

	return programs, nil
}

func (s *programService) GetProgramByID(ctx context.Context, id uuid.UUID) (domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return domain.Program{}, fmt.Errorf("context error: %w", err)
	}

	if id == uuid.Nil {
		return domain.Program{}, ErrInvalidProgramID
	}

	program, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find program", "program_id", id, "error", err)
		return domain.Program{}, err
	}

	return program, nil
}

func (s *programService) CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	program.Name = strings.TrimSpace(program.Name)
	if program.Name == "" {
		return nil, ErrNameRequired
	}
	program.Tags = cleanList(program.Tags)
	program.Skills = cleanList(program.Skills)

	if err := s.programRepo.Create(ctx, program); err != nil {
		logger.Error("failed to create program", "error", err)
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	logger.Info("program created", "program_id", program.ID)

	return program, nil
}

func (s *programService) UpdateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if program.ID == uuid.Nil {
		return nil, ErrInvalidProgramID
	}

	program.Name = strings.TrimSpace(program.Name)
	if program.Name == "" {
		return nil, ErrNameRequired
	}
	program.Tags = cleanList(program.Tags)
	program.Skills = cleanList(program.Skills)

	// Verify program exists
	if _, err := s.programRepo.FindByID(ctx, program.ID); err != nil {
		return nil, err
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		logger.Error("failed to update program", "program_id", program.ID, "error", err)
		return nil, fmt.Errorf("failed to update program: %w", err)
	}

	updated, err := s.programRepo.FindByID(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated program: %w", err)
	}

	logger.Info("program updated", "program_id", program.ID)

	return &updated, nil
}

func (s *programService) DeleteProgram(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidProgramID
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.programRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete program", "program_id", id, "error", err)
		return err
	}

	logger.Info("program deleted", "program_id", id)

	return nil
}

// cleanList trims entries and drops blanks and case-insensitive duplicates.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
