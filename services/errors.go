package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service failure. Format and plain upstream failures are
// kept apart so operators can alert on them separately, even though the HTTP
// surface reports both the same way.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindConfiguration   Kind = "configuration"
	KindUpstream        Kind = "upstream"
	KindUpstreamFormat  Kind = "upstream_format"
	KindUpstreamTimeout Kind = "upstream_timeout"
	KindCanceled        Kind = "canceled"
)

// ServiceError carries a user-safe message; the underlying cause is only for
// operator logs and is never rendered to callers.
type ServiceError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newValidation(message string) error {
	return &ServiceError{Kind: KindValidation, Message: message}
}

func newConfiguration(message string) error {
	return &ServiceError{Kind: KindConfiguration, Message: message}
}

func newUpstream(message string, cause error) error {
	return &ServiceError{Kind: KindUpstream, Message: message, Cause: cause}
}

func newUpstreamFormat(message string, cause error) error {
	return &ServiceError{Kind: KindUpstreamFormat, Message: message, Cause: cause}
}

func newUpstreamTimeout(message string, cause error) error {
	return &ServiceError{Kind: KindUpstreamTimeout, Message: message, Cause: cause}
}

func newCanceled(message string, cause error) error {
	return &ServiceError{Kind: KindCanceled, Message: message, Cause: cause}
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// UserMessage returns the user-safe message for err, falling back to a
// generic line for anything untyped.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "something went wrong"
}

// HTTPStatus maps a service error to the status its handler should answer
// with. Format errors and service failures both map to 500 on purpose; the
// distinction lives in the Kind, for logs.
func HTTPStatus(err error) int {
	var se *ServiceError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	case KindCanceled:
		// nginx convention for client-closed-request
		return 499
	default:
		return http.StatusInternalServerError
	}
}
