package gewe

import "fmt"

// ValidationError is returned when a string is not a well-formed Wxid.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid wxid format: %q", e.Input)
}

// ConfigurationError is returned when a request cannot be dispatched as
// configured, before any network activity takes place.
type ConfigurationError struct {
	Route string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("empty body not permitted for route %s", e.Route)
}

// TransportError wraps failures of the HTTP round trip or of decoding the
// response body as JSON.
type TransportError struct {
	Route string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("post %s: %v", e.Route, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ArgumentError is returned when arguments do not match an endpoint's fields.
type ArgumentError struct {
	Endpoint string
	Field    string
	Reason   string
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Reason)
	}
	return fmt.Sprintf("%s: field %s: %s", e.Endpoint, e.Field, e.Reason)
}
