package services

import (
	"errors"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/store"
)

// storeError converts an error from the store layer into an AppError.
func storeError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, store.ErrNoIdentity):
		return apperrors.Wrap(apperrors.ErrUnauthorized, err)
	case errors.Is(err, store.ErrUnknownColumn):
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
}
