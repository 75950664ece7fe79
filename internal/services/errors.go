package services

import (
	"errors"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/store"
)

// storeErr translates a store error into an AppError. Errors that already
// are AppErrors pass through untouched.
func storeErr(err error, notFound *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, store.ErrNotFound) && notFound != nil {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func invalid(message string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, message)
}
