// Package errors provides custom error types for the wilayah system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
//
// Most conditions met during a reconciliation run are not failures: an
// unresolved name or province scope is an expected outcome and is reported
// through results rather than returned. The sentinels ErrUnresolved and
// ErrScopeUnresolved exist so that reports can be classified with errors.Is.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are aliases for the standard library helpers so callers
// importing this package under the errors name keep access to them.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the wilayah system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataQuality indicates a defect in the reference data, such as two
	// region names that normalize to the same key
	ErrDataQuality = errors.New("data quality issue")

	// ErrUnresolved indicates that no candidate met any matching tier
	ErrUnresolved = errors.New("unresolved")

	// ErrScopeUnresolved indicates that a province identifier could not be
	// mapped to any reference province
	ErrScopeUnresolved = errors.New("scope unresolved")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// DataQualityError reports normalized-key collisions in the reference table.
type DataQualityError struct {
	Scope string   // province the collision occurred in
	Key   string   // normalized key shared by the names
	Names []string // the colliding canonical names, in table order
}

// Error implements the error interface
func (e *DataQualityError) Error() string {
	return fmt.Sprintf("duplicate key %q in %s: %s", e.Key, e.Scope, strings.Join(e.Names, ", "))
}

// Is implements errors.Is support
func (e *DataQualityError) Is(target error) bool {
	return target == ErrDataQuality
}

// NewDataQualityError creates a new DataQualityError
func NewDataQualityError(scope, key string, names ...string) *DataQualityError {
	return &DataQualityError{Scope: scope, Key: key, Names: names}
}

// UnresolvedError describes a name that no matching tier could place.
// It is a reporting value; reconciliation never fails because of it.
type UnresolvedError struct {
	Kind  string // "province", "regency", "city"
	ID    string
	Name  string
	Scope string
}

// Error implements the error interface
func (e *UnresolvedError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s %s %q unresolved in %s", e.Kind, e.ID, e.Name, e.Scope)
	}
	return fmt.Sprintf("%s %s %q unresolved", e.Kind, e.ID, e.Name)
}

// Is implements errors.Is support
func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}

// ScopeError describes a province identifier without a reference province.
type ScopeError struct {
	ProvinceID string
	Name       string
}

// Error implements the error interface
func (e *ScopeError) Error() string {
	return fmt.Sprintf("province %s %q has no reference scope", e.ProvinceID, e.Name)
}

// Is implements errors.Is support
func (e *ScopeError) Is(target error) bool {
	return target == ErrScopeUnresolved
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDataQuality checks if an error reports a reference data defect
func IsDataQuality(err error) bool {
	return errors.Is(err, ErrDataQuality)
}

// IsUnresolved checks if an error reports an unresolved name
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolved)
}

// IsScopeUnresolved checks if an error reports an unresolved province scope
func IsScopeUnresolved(err error) bool {
	return errors.Is(err, ErrScopeUnresolved)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "csv", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "list"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "build", "save"
	Resource  string // "config", "index", "store"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
