package service

import (
	"errors"
	"fmt"

	"github.com/mkarpenko/zkvault/internal/adapter"
)

// mapAdapterError folds transport-level sentinels into the service
// taxonomy. 401 means the server rejected our credential; everything else
// is a transport problem from the caller's point of view.
func mapAdapterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrCredential, err)
	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %v", ErrPolicyViolation, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}
