package service

import "errors"

// Domain errors surfaced to controllers for status mapping. Wrong-order
// operations are conflicts, not validation failures.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")

	ErrUnknownStandard = errors.New("unknown standard")
	ErrNoStandard      = errors.New("no standard selected for this session")
	ErrNoMemo          = errors.New("no memo has been generated for this session")
	ErrNotPDF          = errors.New("uploaded file is not a valid PDF")
)
