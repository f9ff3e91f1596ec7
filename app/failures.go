package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/httperror"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(req any, code, message string) error {
	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return httperror.BadRequest(code+".validation_failed", message, ve.Error())
		}

		return httperror.InternalServerError(
			code+".validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}
	return nil
}

// upstreamFailure turns a gateway error into the handler error. Client errors
// from the backend keep their status, everything else is reported as 502.
func upstreamFailure(code, message string, err error) *httperror.Error {
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := http.StatusBadGateway
		if upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode < 500 {
			status = upstreamErr.StatusCode
		}

		var details any
		if upstreamErr.Message != "" {
			details = upstreamErr.Message
		}
		return httperror.New(status, code, message, details)
	}

	return httperror.BadGateway(code, message, nil)
}

// upstreamMessage is the backend's own explanation of a failure, if any.
func upstreamMessage(err error) string {
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
		return upstreamErr.Message
	}
	return "catalog service unavailable"
}
