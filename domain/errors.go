package domain

import "errors"

var (
	ErrProgramNotFound  = errors.New("program not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrEmailExists      = errors.New("student with this email already exists")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)
