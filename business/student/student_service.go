package student

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"studyRecommender/domain"
	"studyRecommender/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrNameRequired   = errors.New("student name is required")
	ErrInvalidGrade   = errors.New("grades must be finite numbers with a subject name")
	ErrInvalidStudent = errors.New("invalid student id")
)

// StudentRepository contract interface
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Student, error)
	FindByEmail(ctx context.Context, email string) (domain.Student, error)
	Update(ctx context.Context, id uuid.UUID, update domain.StudentUpdate) error
}

type studentService struct {
	studentRepo StudentRepository
	validate    *validator.Validate
}

func NewStudentService(studentRepo StudentRepository, validate *validator.Validate) *studentService {
	return &studentService{
		studentRepo: studentRepo,
		validate:    validate,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, student *domain.Student) (domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return domain.Student{}, fmt.Errorf("context error: %w", err)
	}

	student.Name = strings.TrimSpace(student.Name)
	if student.Name == "" {
		return domain.Student{}, ErrNameRequired
	}

	student.Email = strings.ToLower(strings.TrimSpace(student.Email))
	if err := s.validate.Var(student.Email, "required,email"); err != nil {
		logger.Warn("Invalid email format", "email", student.Email)
		return domain.Student{}, ErrInvalidEmail
	}

	if err := checkGrades(student.Grades.Data()); err != nil {
		return domain.Student{}, err
	}

	existing, err := s.studentRepo.FindByEmail(ctx, student.Email)
	if err == nil && existing.ID != uuid.Nil {
		return domain.Student{}, domain.ErrEmailExists
	}
	if err != nil && !errors.Is(err, domain.ErrStudentNotFound) {
		return domain.Student{}, fmt.Errorf("failed to check email: %w", err)
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		logger.Error("Failed to create student", "error", err)
		return domain.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	logger.Info("student created", "student_id", student.ID)

	return *student, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return domain.Student{}, fmt.Errorf("context error: %w", err)
	}

	if id == uuid.Nil {
		return domain.Student{}, ErrInvalidStudent
	}

	return s.studentRepo.FindByID(ctx, id)
}

func (s *studentService) UpdateStudent(ctx context.Context, id uuid.UUID, update domain.StudentUpdate) (domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return domain.Student{}, fmt.Errorf("context error: %w", err)
	}

	if id == uuid.Nil {
		return domain.Student{}, ErrInvalidStudent
	}

	if update.IsEmpty() {
		return domain.Student{}, domain.ErrNoFieldsToUpdate
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.Student{}, ErrNameRequired
		}
		update.Name = &name
	}

	if err := checkGrades(update.Grades); err != nil {
		return domain.Student{}, err
	}

	if err := s.studentRepo.Update(ctx, id, update); err != nil {
		if !errors.Is(err, domain.ErrStudentNotFound) {
			logger.Error("Failed to update student", "student_id", id, "error", err)
		}
		return domain.Student{}, err
	}

	logger.Info("student updated", "student_id", id)

	return s.studentRepo.FindByID(ctx, id)
}

func checkGrades(grades domain.Grades) error {
	for subject, grade := range grades {
		if strings.TrimSpace(subject) == "" || math.IsNaN(grade) || math.IsInf(grade, 0) {
			return ErrInvalidGrade
		}
	}
	return nil
}
