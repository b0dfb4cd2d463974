package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a referenced order, shop or meal does not exist.
	ErrNotFound = errors.New("orders: not found")
	// ErrPermissionDenied reports that the requester does not own the resource.
	ErrPermissionDenied = errors.New("orders: permission denied")
	// ErrInfrastructure reports an unexpected entity store failure.
	ErrInfrastructure = errors.New("orders: store failure")
	// ErrInvalidInput reports malformed caller input such as an unknown status or month.
	ErrInvalidInput = errors.New("orders: invalid input")
	// ErrInvalidTransition reports a status change the lifecycle does not accept.
	ErrInvalidTransition = errors.New("orders: invalid status transition")
	// ErrUpdateFailed reports that a validated status change could not be persisted.
	ErrUpdateFailed = errors.New("orders: status update failed")
)

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
