package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Title and description limits, counted in runes after trimming.
const (
	MinTitleLength       = 3
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Form validation errors. The messages are shown to users as-is.
var (
	ErrTitleRequired      = errors.New("Title is required")
	ErrTitleTooShort      = fmt.Errorf("Title must be at least %d characters", MinTitleLength)
	ErrTitleTooLong       = fmt.Errorf("Title must be %d characters or less", MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("Description must be %d characters or less", MaxDescriptionLength)
	ErrInvalidStatus      = errors.New("Status must be one of: pending, in-progress, completed")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateTitle checks a task title.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return ErrTitleRequired
	case n < MinTitleLength:
		return ErrTitleTooShort
	case n > MaxTitleLength:
		return ErrTitleTooLong
	}
	return nil
}

// ValidateDescription checks an optional task description.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateInput checks every field of a create/edit form and returns one
// error per failing field.
func ValidateInput(in Input) []*ValidationError {
	var errs []*ValidationError
	if err := ValidateTitle(in.Title); err != nil {
		errs = append(errs, &ValidationError{Path: "title", Err: err})
	}
	if err := ValidateDescription(in.Description); err != nil {
		errs = append(errs, &ValidationError{Path: "description", Err: err})
	}
	if in.Status != "" && !in.Status.Valid() {
		errs = append(errs, &ValidationError{Path: "status", Err: ErrInvalidStatus})
	}
	return errs
}

// Normalize trims the title and description of an input and defaults the
// status to pending.
func (in Input) Normalize() Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = StatusPending
	}
	return in
}
