package db

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ReadError means a list/get against the store failed. Callers must treat
// the report set as unknown, not empty.
type ReadError struct {
	Collection string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store read failed for %s: %v", e.Collection, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError means a create/delete was rejected by the store. Callers must
// not apply the mutation to local state.
type WriteError struct {
	Collection string
	DocID      string
	Err        error
}

func (e *WriteError) Error() string {
	if e.DocID != "" {
		return fmt.Sprintf("store write failed for %s/%s: %v", e.Collection, e.DocID, e.Err)
	}
	return fmt.Sprintf("store write failed for %s: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsNotFound reports whether the underlying Firestore error was a missing
// document.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// IsPermissionDenied reports whether the store rejected the caller outright.
func IsPermissionDenied(err error) bool {
	return status.Code(err) == codes.PermissionDenied
}
