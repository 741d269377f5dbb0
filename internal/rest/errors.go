package rest

import (
	"errors"
	"net/http"

	"studyRecommender/business/feedback"
	"studyRecommender/business/program"
	"studyRecommender/business/recommendation"
	"studyRecommender/business/recommender"
	"studyRecommender/business/student"
	"studyRecommender/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

var badRequestErrors = []error{
	domain.ErrEmailExists,
	domain.ErrNoFieldsToUpdate,
	domain.ErrInvalidRating,
	program.ErrInvalidProgramID,
	program.ErrNameRequired,
	student.ErrInvalidEmail,
	student.ErrNameRequired,
	student.ErrInvalidGrade,
	student.ErrInvalidStudent,
	feedback.ErrIDsRequired,
	recommendation.ErrInvalidSettings,
}

// statusFor maps service and engine errors to an HTTP status.
func statusFor(err error) int {
	var (
		validationErr *recommender.ValidationError
		argumentErr   *recommender.InvalidArgumentError
		conflictErr   *recommender.ConflictError
	)

	switch {
	case errors.Is(err, domain.ErrProgramNotFound), errors.Is(err, domain.ErrStudentNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &validationErr), errors.As(err, &argumentErr):
		return http.StatusBadRequest
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}
