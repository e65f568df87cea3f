package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// InvalidDataError maps an offending field path to a human readable reason.
type InvalidDataError struct {
	Fields map[string]string
}

func NewInvalidData(field, reason string) *InvalidDataError {
	return &InvalidDataError{Fields: map[string]string{field: reason}}
}

// Reason returns the reason recorded for field, if any.
func (e *InvalidDataError) Reason(field string) (string, bool) {
	r, ok := e.Fields[field]
	return r, ok
}

// Error renders fields sorted by key so messages are stable.
func (e *InvalidDataError) Error() string {
	return "invalid data: " + FormatFields(e.Fields)
}

// FormatFields renders a field map as "[a: x, b: y]" in key order.
func FormatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return "[" + strings.Join(entries, ", ") + "]"
}

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Msg
}

// OtherError wraps a collaborator failure, ex: storage I/O.
type OtherError struct {
	Err error
}

func (e *OtherError) Error() string {
	return e.Err.Error()
}

func (e *OtherError) Unwrap() error {
	return e.Err
}

func wrapOther(format string, err error) error {
	return &OtherError{Err: fmt.Errorf(format+": %w", err)}
}

func IsInvalidData(err error) bool {
	var target *InvalidDataError
	return errors.As(err, &target)
}

// AsInvalidData extracts the field map of an InvalidDataError.
func AsInvalidData(err error) (*InvalidDataError, bool) {
	var target *InvalidDataError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
