package recommender

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProgramRecord is one catalog entry as supplied by the caller. The engine
// never mutates it.
type ProgramRecord struct {
	ID          string `validate:"required"`
	Name        string
	Description string
	Tags        []string
	Skills      []string
}

// StudentProfile is the static profile a recommendation is computed for.
type StudentProfile struct {
	ID        string `validate:"required"`
	Interests []string
	Grades    map[string]float64 `validate:"dive,keys,required,endkeys"`
}

// RankedResult is one scored program. Program carries the display fields so
// callers need not re-query the catalog.
type RankedResult struct {
	Program     ProgramRecord
	Score       float64
	Matches     []string
	Explanation string
}

func (p ProgramRecord) Validate() error {
	if err := validate.Struct(p); err != nil {
		return toValidationError("program", err)
	}
	if strings.TrimSpace(p.ID) == "" {
		return &ValidationError{Record: "program", Field: "id", Message: "is required"}
	}
	return nil
}

func (s StudentProfile) Validate() error {
	if err := validate.Struct(s); err != nil {
		return toValidationError("student", err)
	}
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Record: "student", Field: "id", Message: "is required"}
	}
	for subject, grade := range s.Grades {
		if math.IsNaN(grade) || math.IsInf(grade, 0) {
			return &ValidationError{Record: "student", Field: "grades", Message: "grade for " + subject + " is not a finite number"}
		}
	}
	return nil
}

func toValidationError(record string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		if strings.HasPrefix(field, "grades") {
			field = "grades"
		}
		msg := "is required"
		if fe.Tag() != "required" {
			msg = "failed " + fe.Tag() + " check"
		}
		return &ValidationError{Record: record, Field: field, Message: msg}
	}
	return &ValidationError{Record: record, Message: err.Error()}
}
