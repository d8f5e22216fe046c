package handler

import (
	"errors"
	"net/http"

	"patientor/internal/domain/repository"
	"patientor/internal/form"
)

// statusFor maps usecase errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrPatientNotFound):
		return http.StatusNotFound
	case errors.Is(err, form.ErrIncomplete), errors.Is(err, form.ErrInvalidRating),
		errors.Is(err, form.ErrUnknownAction), errors.Is(err, form.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrSubmissionInFlight), errors.Is(err, form.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, form.ErrRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
