package repositories

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

type repository struct {
	db *mongo.Database
}

// StorageError wraps a driver failure with the operation that hit it. Callers
// treat any storage error as a non-fatal per-request failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
