package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an operation requires a logged-in
	// user with a verified email and none is present. Terminal, never retried.
	ErrNotAuthenticated = errors.New("billing: not authenticated")

	// ErrUnknownPlan is returned when a plan id has no catalog entry. This is
	// a deployment/configuration bug, not a user-retryable condition.
	ErrUnknownPlan = errors.New("billing: unknown plan")

	// ErrNoCustomer is returned when the customer portal is requested for a
	// user that has never become a billing customer.
	ErrNoCustomer = errors.New("billing: no customer found")
)

// ProviderError wraps a failed call to the billing provider. Transient: the
// whole operation may be retried since every step is idempotent by lookup.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("billing provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func wrapProviderErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Op: op, Err: err}
}
