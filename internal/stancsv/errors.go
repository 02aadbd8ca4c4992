package stancsv

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrMissingField  = errors.New("missing required configuration field")
	ErrInvalidFormat = errors.New("invalid sampler output format")
)

// FormatError reports a structural problem in one output file, identifying
// the metadata block and line number involved when known.
type FormatError struct {
	Path   string // file being parsed
	Block  string // metadata block ("configuration", "adaptation", "timing") or ""
	Line   int    // 1-based line number, 0 if not applicable
	Detail string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	switch {
	case e.Block != "" && e.Line > 0:
		return fmt.Sprintf("%s: line %d: expected %s block: %s", e.Path, e.Line, e.Block, e.Detail)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", e.Path, e.Line, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Detail)
	}
}

// Unwrap makes FormatError match ErrInvalidFormat.
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}
