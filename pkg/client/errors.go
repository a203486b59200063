package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/programari/backend/pkg/contract"
)

// ErrServiceNotFound is returned by GetService for an unknown slug.
var ErrServiceNotFound = errors.New("client: service not found")

// APIError is a non-success response whose body matched its declared shape.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
	// Field is the failing input field of a 400, if any.
	Field string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: status %d: %s (%s)", e.Endpoint, e.Status, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
}

// ContractViolationError means the server answered with a body that does not
// match the shape the endpoint declares for that status. Client and server
// disagree on the contract.
type ContractViolationError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s: contract violation on status %d: %v", e.Endpoint, e.Status, e.Err)
}

func (e *ContractViolationError) Unwrap() error { return e.Err }

// TransportError means no usable response was received.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

var genericFailure = map[string]string{
	contract.API.Services.List.Name:   "Could not load the services.",
	contract.API.Services.Get.Name:    "Could not load the service.",
	contract.API.Bookings.Create.Name: "Could not create the booking.",
	contract.API.Messages.Create.Name: "Could not send the message.",
}

// UserMessage turns err into text fit for an end user. Input problems keep
// their field-specific message; everything else becomes a generic failure
// the user can retry.
func UserMessage(err error) string {
	var (
		verr     *contract.ValidationError
		apiErr   *APIError
		violErr  *ContractViolationError
		transErr *TransportError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrServiceNotFound):
		return "Service not found."
	case errors.As(err, &verr):
		return verr.First().Message
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusBadRequest {
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "Invalid data."
		}
		return failureFor(apiErr.Endpoint)
	case errors.As(err, &violErr):
		return failureFor(violErr.Endpoint)
	case errors.As(err, &transErr):
		return failureFor(transErr.Endpoint)
	default:
		return "Something went wrong."
	}
}

func failureFor(endpoint string) string {
	if msg, ok := genericFailure[endpoint]; ok {
		return msg
	}
	return "Something went wrong."
}
