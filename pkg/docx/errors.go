package docx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPackage is returned when a part that needs its package has none
	ErrNoPackage = errors.New("part has no owning package")
	// ErrNotDocx is returned when a zip archive lacks the parts of a word-processing package
	ErrNotDocx = errors.New("not a valid DOCX package")
	// ErrPartNotFound is returned when a partname or relationship target does not exist
	ErrPartNotFound = errors.New("part not found")
	// ErrStyleNotFound is returned when no style matches a name
	ErrStyleNotFound = errors.New("style not found")
	// ErrStyleTypeMismatch is returned when a style is used where another type is required
	ErrStyleTypeMismatch = errors.New("style type mismatch")
	// ErrUnsupportedImage is returned for image data in a format that cannot be embedded
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// PackageError represents an error during package operations
type PackageError struct {
	Op    string
	Path  string
	Cause error
}

func (e *PackageError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("package error during %s of '%s': %v", e.Op, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("package error during %s of '%s'", e.Op, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("package error during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("package error during %s", e.Op)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// NewPackageError creates a new package error
func NewPackageError(op, path string, cause error) error {
	return &PackageError{
		Op:    op,
		Path:  path,
		Cause: cause,
	}
}

// StyleError reports a style that could not be used for the requested style type
type StyleError struct {
	Name  string
	Want  StyleType
	Got   StyleType
	Cause error
}

func (e *StyleError) Error() string {
	if errors.Is(e.Cause, ErrStyleTypeMismatch) {
		return fmt.Sprintf("assigned style '%s' is type %s, need type %s", e.Name, e.Got, e.Want)
	}
	return fmt.Sprintf("style '%s': %v", e.Name, e.Cause)
}

func (e *StyleError) Unwrap() error {
	return e.Cause
}

// ImageError reports an image that could not be read or identified
type ImageError struct {
	Path  string
	Cause error
}

func (e *ImageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("image error: %v", e.Cause)
	}
	return fmt.Sprintf("image error for '%s': %v", e.Path, e.Cause)
}

func (e *ImageError) Unwrap() error {
	return e.Cause
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsPackageError checks if an error is or wraps a package error
func IsPackageError(err error) bool {
	var pe *PackageError
	return errors.As(err, &pe)
}

// IsStyleError checks if an error is or wraps a style error
func IsStyleError(err error) bool {
	var se *StyleError
	return errors.As(err, &se)
}

// IsImageError checks if an error is or wraps an image error
func IsImageError(err error) bool {
	var ie *ImageError
	return errors.As(err, &ie)
}
