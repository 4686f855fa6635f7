package fogis

import (
	"errors"
	"fmt"
)

// LoginError reports a failed authentication: unrecognized login form,
// rejected credentials, an expired session, or no usable credential source.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// RequestError reports a transport failure or a non-success response that
// prevented a call from completing. No retries are performed; a single failed
// call is a single reported failure.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fogis request %s failed (status=%d)", e.Endpoint, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fogis request %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("fogis request %s failed", e.Endpoint)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DataError reports a response that decoded but did not match the operation's
// declared shape: wrong container type, a null payload, or a malformed envelope.
type DataError struct {
	Endpoint string
	Message  string
}

func (e *DataError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("fogis response %s: %s", e.Endpoint, e.Message)
	}
	return e.Message
}

// AsLoginError attempts to unwrap an error into a LoginError.
func AsLoginError(err error) (*LoginError, bool) {
	var loginErr *LoginError
	if errors.As(err, &loginErr) {
		return loginErr, true
	}
	return nil, false
}

// AsRequestError attempts to unwrap an error into a RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// AsDataError attempts to unwrap an error into a DataError.
func AsDataError(err error) (*DataError, bool) {
	var dataErr *DataError
	if errors.As(err, &dataErr) {
		return dataErr, true
	}
	return nil, false
}
