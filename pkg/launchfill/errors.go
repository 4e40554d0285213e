package launchfill

import (
	"errors"
	"fmt"

	"github.com/ukaji3/launchfill-go/pkg/launchfill/parser"
)

// ErrFileNotFound indicates an input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidLayout indicates the layout configuration is unusable.
var ErrInvalidLayout = errors.New("invalid layout")

// ErrSheetNotFound indicates a required sheet is missing.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrColumnNotFound indicates a required stock column is missing.
var ErrColumnNotFound = parser.ErrColumnNotFound

// ProcessingError represents a fatal error while filling a launch sheet.
type ProcessingError struct {
	Document string // "stock", "launch"
	Stage    string // "open", "read", "resolve", "write", "save"
	Err      error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing error in %s workbook (%s): %v", e.Document, e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError.
func NewProcessingError(document, stage string, err error) *ProcessingError {
	return &ProcessingError{
		Document: document,
		Stage:    stage,
		Err:      err,
	}
}
