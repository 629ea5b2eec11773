package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIdentity means the submission carried no response id.
	// The record is rejected: without an id the upsert has no natural key.
	ErrMissingIdentity = errors.New("missing response id")

	// ErrUndeterminedVariant means the submission could not be classified
	// as a starting or ending survey. The bulk channel treats this as a
	// row error; the webhook channel skips the delivery without persisting.
	ErrUndeterminedVariant = errors.New("cannot determine survey type")
)

// FieldTransformError reports a required field whose raw value could not
// be coerced. The record is rejected as one unit.
type FieldTransformError struct {
	Field string
	Err   error
}

func (e *FieldTransformError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldTransformError) Unwrap() error {
	return e.Err
}
