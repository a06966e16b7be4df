package handler

import (
	"errors"
	"net/http"

	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/service"
)

// Helper to map errors to HTTP status and body. Forbidden responses are
// deliberately uniform: the failed requirement and deny reason stay in
// the audit trail, never in the response body.
func httpError(err error) (int, interface{}) {
	var detail *model.ErrorDetail
	if errors.As(err, &detail) {
		return http.StatusBadRequest, model.ErrorResponse{Error: *detail}
	}

	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		code = "forbidden"
		msg = "You do not have permission to perform this action"
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Unauthorized"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
		msg = "Assignment or grant already exists"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		msg = "Record not found"
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
		code = "bad_request"
		msg = "Invalid input"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = "Internal error"
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}
