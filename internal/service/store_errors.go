package service

import (
	"errors"

	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

// storeFailure keeps typed store errors (not configured, pagination limit) and
// wraps anything else as an upstream failure carrying message.
func storeFailure(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
}

func validationFailure(message string) error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}
