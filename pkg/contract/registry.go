// Package contract is the wire contract shared by the API server and its
// clients: one descriptor per endpoint and the shapes that validate every
// request and response body. Both sides validate with these same values.
package contract

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Endpoint describes one API operation.
type Endpoint struct {
	Name   string
	Method string
	// Path is a template; ":name" segments are parameters.
	Path string
	// Input validates the request body. Nil for endpoints without a body.
	Input     Validator
	responses map[int]Validator
}

// Response returns the shape declared for status.
func (e Endpoint) Response(status int) (Validator, bool) {
	v, ok := e.responses[status]
	return v, ok
}

// Statuses returns the declared response statuses in ascending order.
func (e Endpoint) Statuses() []int {
	out := make([]int, 0, len(e.responses))
	for status := range e.responses {
		out = append(out, status)
	}
	sort.Ints(out)
	return out
}

// SuccessStatus returns the single 2xx status the endpoint declares.
func (e Endpoint) SuccessStatus() int {
	for _, status := range e.Statuses() {
		if status >= 200 && status < 300 {
			return status
		}
	}
	return http.StatusOK
}

// Pattern returns the http.ServeMux pattern, e.g. "GET /api/services/{slug}".
func (e Endpoint) Pattern() string {
	segs := strings.Split(e.Path, "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = "{" + seg[1:] + "}"
		}
	}
	return e.Method + " " + strings.Join(segs, "/")
}

// URL fills the endpoint's path template.
func (e Endpoint) URL(params map[string]string) (string, error) {
	return BuildURL(e.Path, params)
}

// BuildURL substitutes ":name" segments of template with path-escaped
// values from params. A missing or empty value is a *MalformedPathError.
func BuildURL(template string, params map[string]string) (string, error) {
	segs := strings.Split(template, "/")
	for i, seg := range segs {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		v, ok := params[name]
		if !ok || v == "" {
			return "", &MalformedPathError{Path: template, Param: name}
		}
		segs[i] = url.PathEscape(v)
	}
	return strings.Join(segs, "/"), nil
}

type ServicesAPI struct {
	List Endpoint
	Get  Endpoint
}

type BookingsAPI struct {
	Create Endpoint
}

type MessagesAPI struct {
	Create Endpoint
}

// API is the registry. It is built once at package initialisation and must
// be treated as read-only.
var API = struct {
	Services ServicesAPI
	Bookings BookingsAPI
	Messages MessagesAPI
}{
	Services: ServicesAPI{
		List: Endpoint{
			Name:   "services.list",
			Method: http.MethodGet,
			Path:   "/api/services",
			responses: map[int]Validator{
				http.StatusOK: ServiceListSchema,
			},
		},
		Get: Endpoint{
			Name:   "services.get",
			Method: http.MethodGet,
			Path:   "/api/services/:slug",
			responses: map[int]Validator{
				http.StatusOK:       ServiceSchema,
				http.StatusNotFound: ErrorSchema,
			},
		},
	},
	Bookings: BookingsAPI{
		Create: Endpoint{
			Name:   "bookings.create",
			Method: http.MethodPost,
			Path:   "/api/bookings",
			Input:  InsertBookingSchema,
			responses: map[int]Validator{
				http.StatusCreated:    CreatedSchema,
				http.StatusBadRequest: ValidationFailureSchema,
			},
		},
	},
	Messages: MessagesAPI{
		Create: Endpoint{
			Name:   "messages.create",
			Method: http.MethodPost,
			Path:   "/api/messages",
			Input:  InsertMessageSchema,
			responses: map[int]Validator{
				http.StatusCreated:    CreatedSchema,
				http.StatusBadRequest: ValidationFailureSchema,
			},
		},
	},
}

// Endpoints returns every descriptor in a stable order.
func Endpoints() []Endpoint {
	return []Endpoint{
		API.Services.List,
		API.Services.Get,
		API.Bookings.Create,
		API.Messages.Create,
	}
}

// Decode runs raw through v and asserts the canonical value is a T.
func Decode[T any](v Validator, raw []byte) (T, error) {
	var zero T
	if v == nil {
		return zero, fmt.Errorf("contract: no shape declared")
	}
	out, err := v.Validate(raw)
	if err != nil {
		return zero, err
	}
	t, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("contract: shape produced %T, want %T", out, zero)
	}
	return t, nil
}
