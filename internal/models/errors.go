package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for failure kinds that carry no extra payload
var (
	// ErrSkipped marks a decision below the dispatch confidence threshold.
	// Not a real failure; callers treat it as a no-op signal.
	ErrSkipped = errors.New("confidence below dispatch threshold")
	// ErrUnknownAgent marks a decision naming none of the four handlers
	ErrUnknownAgent = errors.New("unknown agent")
)

// UnsupportedFormatError is returned by the extractor for file extensions
// it does not recognize.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

// MalformedClassificationError is returned when the classifier's response
// cannot be parsed as a routing decision, even after repair.
type MalformedClassificationError struct {
	Raw string
	Err error
}

func (e *MalformedClassificationError) Error() string {
	return fmt.Sprintf("malformed classification response: %v", e.Err)
}

func (e *MalformedClassificationError) Unwrap() error { return e.Err }

// GenerationError is an upstream model failure, carrying the upstream
// status and message when known.
type GenerationError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed (%s, status %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation failed (%s): %s", e.Operation, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// AuthError is a credential or consent failure against an external API
type AuthError struct {
	Service string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%s): %s", e.Service, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// InsertError means the downstream store rejected the write
type InsertError struct {
	Store   string
	Message string
	Err     error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert into %s failed: %s", e.Store, e.Message)
}

func (e *InsertError) Unwrap() error { return e.Err }

// FileNotFoundError is returned when an input artifact path does not exist
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}
