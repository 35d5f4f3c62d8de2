package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced by the try-on workflow.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConfig     Kind = "config"
	KindGeneration Kind = "generation"
	KindUnexpected Kind = "unexpected"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrNoImage           = errors.New("no image returned")
)

// Error carries a user-facing message together with its Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewConfigError(message string) error {
	return &Error{Kind: KindConfig, Message: message, Err: ErrMissingCredential}
}

// NewGenerationError reports that a scene produced no usable image.
func NewGenerationError(sceneID string) error {
	return &Error{
		Kind:    KindGeneration,
		Message: fmt.Sprintf("No image returned for scene '%s'.", sceneID),
		Err:     ErrNoImage,
	}
}

func NewUnexpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindUnexpected, Err: err}
}

// KindOf returns the Kind of err. Errors outside the taxonomy are unexpected.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
