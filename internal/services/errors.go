package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors returned by the service layer. Handlers translate them
// to HTTP codes with errors.Is; anything not in this taxonomy surfaces as
// ErrTransient and is safe to retry.
var (
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrSelfFollow = errors.New("cannot follow yourself")
	ErrValidation = errors.New("invalid input")
	ErrTransient  = errors.New("temporary failure")
)

// wrapTx normalizes an error coming out of a transaction: domain errors
// pass through untouched, duplicate-key failures from racing toggles and
// every other storage failure become retryable ErrTransient.
func wrapTx(err error) error {
	if err == nil {
		return nil
	}
	for _, domain := range []error{ErrNotFound, ErrPermission, ErrSelfFollow, ErrValidation} {
		if errors.Is(err, domain) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: concurrent update, retry", ErrTransient)
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
