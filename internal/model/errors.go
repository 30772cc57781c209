package model

import (
	"errors"
	"fmt"
	"strings"
)

// DatasetUnavailableError reports that no storage source yielded parseable
// data for an endpoint key. Fatal for the request; names every attempted
// source so operators can tell a missing snapshot from a broken one.
type DatasetUnavailableError struct {
	Key       string
	Attempted []string
}

func (e *DatasetUnavailableError) Error() string {
	return fmt.Sprintf("no cached data for %q (tried: %s)", e.Key, strings.Join(e.Attempted, ", "))
}

// SchemaValidationError reports that a processor rejected the raw dataset
// shape before transformation. Fatal for the request.
type SchemaValidationError struct {
	Endpoint  string
	Processor string
	Reason    string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("endpoint %s: processor %s rejected dataset: %s", e.Endpoint, e.Processor, e.Reason)
}

// ProcessingError wraps a failure during raw-to-canonical transformation.
// The pipeline never downgrades this to a partial result.
type ProcessingError struct {
	Endpoint  string
	Processor string
	Err       error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("endpoint %s: processor %s failed: %v", e.Endpoint, e.Processor, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// EmptyResultError signals that a geographic selection legitimately matched
// zero records. Not fatal: callers render an empty state, not an error.
type EmptyResultError struct {
	Entities []string
}

func (e *EmptyResultError) Error() string {
	if len(e.Entities) == 0 {
		return "no records matched the selection"
	}
	return fmt.Sprintf("no records matched: %s", strings.Join(e.Entities, ", "))
}

// IsEmptyResult reports whether err (or its chain) is an EmptyResultError.
func IsEmptyResult(err error) bool {
	var ere *EmptyResultError
	return errors.As(err, &ere)
}

// IsDatasetUnavailable reports whether err (or its chain) is a
// DatasetUnavailableError.
func IsDatasetUnavailable(err error) bool {
	var due *DatasetUnavailableError
	return errors.As(err, &due)
}
