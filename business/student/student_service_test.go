package student

import (
	"context"
	"math"
	"testing"

	"studyRecommender/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type memoryRepo struct {
	students map[uuid.UUID]domain.Student
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{students: make(map[uuid.UUID]domain.Student)}
}

func (r *memoryRepo) Create(ctx context.Context, s *domain.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.students[s.ID] = *s
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return domain.Student{}, domain.ErrStudentNotFound
	}
	return s, nil
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (domain.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			return s, nil
		}
	}
	return domain.Student{}, domain.ErrStudentNotFound
}

func (r *memoryRepo) Update(ctx context.Context, id uuid.UUID, u domain.StudentUpdate) error {
	s, ok := r.students[id]
	if !ok {
		return domain.ErrStudentNotFound
	}
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Interests != nil {
		s.Interests = u.Interests
	}
	if u.Grades != nil {
		s.Grades = datatypes.NewJSONType(u.Grades)
	}
	r.students[id] = s
	return nil
}

func newService() *studentService {
	return NewStudentService(newMemoryRepo(), validator.New())
}

func TestCreateStudent(t *testing.T) {
	svc := newService()

	s, err := svc.CreateStudent(context.Background(), &domain.Student{
		Name:      "Ana",
		Email:     " Ana@Example.com ",
		Interests: datatypes.JSONSlice[string]{"data"},
		Grades:    datatypes.NewJSONType(domain.Grades{"math": 91}),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "ana@example.com", s.Email)
	assert.Equal(t, 91.0, s.Grades.Data()["math"])
}

func TestCreateStudent_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &domain.Student{Name: " ", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.CreateStudent(ctx, &domain.Student{Name: "Ana", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.CreateStudent(ctx, &domain.Student{
		Name:   "Ana",
		Email:  "ana@example.com",
		Grades: datatypes.NewJSONType(domain.Grades{"math": math.NaN()}),
	})
	assert.ErrorIs(t, err, ErrInvalidGrade)

	_, err = svc.CreateStudent(ctx, &domain.Student{
		Name:   "Ana",
		Email:  "ana@example.com",
		Grades: datatypes.NewJSONType(domain.Grades{" ": 70}),
	})
	assert.ErrorIs(t, err, ErrInvalidGrade)
}

func TestCreateStudent_DuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &domain.Student{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, &domain.Student{Name: "Other", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestGetStudentByID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.GetStudentByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)

	_, err = svc.GetStudentByID(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidStudent)
}

func TestUpdateStudent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &domain.Student{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.UpdateStudent(ctx, created.ID, domain.StudentUpdate{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)

	name := "Ana Maria"
	updated, err := svc.UpdateStudent(ctx, created.ID, domain.StudentUpdate{
		Name:      &name,
		Interests: []string{"art"},
		Grades:    domain.Grades{"drawing": 88},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, []string{"art"}, []string(updated.Interests))
	assert.Equal(t, domain.Grades{"drawing": 88}, updated.Grades.Data())

	_, err = svc.UpdateStudent(ctx, uuid.New(), domain.StudentUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)

	blank := "  "
	_, err = svc.UpdateStudent(ctx, created.ID, domain.StudentUpdate{Name: &blank})
	assert.ErrorIs(t, err, ErrNameRequired)
}
