package apierr

import (
	"errors"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	Message string `json:"message"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

var (
	InternalServerErr = ErrorResponse{
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}

	// BadRequest answers requests that match no route or method.
	BadRequest = ErrorResponse{
		Message:    "Bad request",
		StatusCode: http.StatusBadRequest,
	}
)

// New maps err to the response its ZError status calls for.
func New(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Message:    zErr.Msg(),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	return InternalServerErr
}

// Query maps an error of a read route: not found stays 404, anything else is a bad request.
func Query(err error) ErrorResponse {
	res := New(err)
	if res.StatusCode != http.StatusNotFound {
		res.StatusCode = http.StatusBadRequest
	}
	return res
}

// Mutation maps an error of a write route: every failure is a bad request.
func Mutation(err error) ErrorResponse {
	res := New(err)
	res.StatusCode = http.StatusBadRequest
	return res
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest:
		return http.StatusBadRequest
	case zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
