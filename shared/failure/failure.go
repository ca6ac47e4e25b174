package failure

import (
	"errors"
	"net/http"
	"vista/shared/constant"

	"github.com/lib/pq"
)

// Failure is an error that carries the HTTP status it should be reported with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest wraps a validation error. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

// Conflict reports a request that is valid but clashes with the current state, such as checking
// in a booking that is not reserved.
func Conflict(msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg}
}

// FromPostgres turns constraint violations into client errors naming the entity. A malformed
// uuid reads as a missing row. Anything else is returned unchanged.
func FromPostgres(err error, entity string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return &Failure{Code: http.StatusConflict, Message: entity + " already exists"}
	case constant.PqErrorCodeFkViolation:
		return &Failure{Code: http.StatusBadRequest, Message: entity + " references a record that does not exist"}
	case constant.PqErrorCodeInvalidTextRepresentation:
		return &Failure{Code: http.StatusNotFound, Message: entity + " not found"}
	default:
		return err
	}
}

// IsInvalidInput reports whether postgres rejected the text form of a parameter, such as a
// malformed uuid in a path.
func IsInvalidInput(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeInvalidTextRepresentation
}

// GetCode returns the status carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
