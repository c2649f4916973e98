package paceline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNegativePosition = errors.New("position must be non-negative")
	ErrEmptyPowerTable  = errors.New("power by position table is empty")
	ErrNonPositiveFTP   = errors.New("FTP must be greater than zero to calculate intensity")
)

// ValidationError describes one invalid roster or engine input
type ValidationError struct {
	Rider   string // Rider name, empty for roster-wide problems
	Field   string // e.g. "pull_duration", "rotations"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	if e.Rider == "" {
		return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("rider %q %s: %s (got: %v)", e.Rider, e.Field, e.Message, e.Value)
}

// ValidationErrors collects every violation found in one input
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
