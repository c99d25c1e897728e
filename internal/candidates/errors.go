package candidates

import "errors"

var (
	// ErrNotFound indicates the candidate does not exist.
	ErrNotFound = errors.New("candidate not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotPDF rejects resume uploads that are not PDF files.
	ErrNotPDF = errors.New("only PDF files are allowed")
	// ErrGuideNotReady is returned when the interview guide has not been
	// generated yet.
	ErrGuideNotReady = errors.New("interview guide not yet generated")
)
