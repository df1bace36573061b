/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRemote is matched by every failure of a call to the task backend,
	// whether the transport failed or the server answered non-2xx.
	ErrRemote = errors.New("remote operation failed")
	// ErrNotFound is matched when the backend answers 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned before any remote call when input fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// RemoteError describes a failed call to the task backend.
type RemoteError struct {
	Op         string `json:"op"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode,omitempty"` // 0 when the request never got a response
	Body       string `json:"body,omitempty"`
	Err        error  `json:"-"`
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: %s %s returned %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Body)
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s %s returned %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s %s returned %d %s", e.Op, e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: %s %s failed", e.Op, e.Method, e.URL)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is makes every RemoteError match ErrRemote, and 404s match ErrNotFound.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemote:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// NewRemoteError creates a RemoteError for a request that got a response.
func NewRemoteError(op, method, url string, status int, body string) *RemoteError {
	return &RemoteError{Op: op, Method: method, URL: url, StatusCode: status, Body: body}
}
