package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoToken means login succeeded on the wire but no token came back.
	ErrNoToken = errors.New("login response without token")
)

// CodeMissing is reported in a BusinessError when the response parsed but
// carried no code field.
const CodeMissing = -1

// TransportError means no usable response was obtained.
type TransportError struct {
	Endpoint  string
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Endpoint, e.RequestID, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// BusinessError is a well-formed response whose code is not zero.
type BusinessError struct {
	Endpoint string
	Code     int
}

func (e *BusinessError) Error() string {
	if e.Code == CodeMissing {
		return fmt.Sprintf("%s: response without code", e.Endpoint)
	}
	return fmt.Sprintf("%s: code %d", e.Endpoint, e.Code)
}

// BusinessCode extracts the code from a *BusinessError in err's chain.
func BusinessCode(err error) (int, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return 0, false
}

func IsBusinessError(err error) bool {
	_, ok := BusinessCode(err)
	return ok
}
