package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrMissingFile = errors.New("dataset file missing")
)

// MissingColumnsError is returned by loaders when required headers are absent.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}
