package api

import (
	"fmt"
	"net/http"
	"strings"
)

// TransportError means no envelope was obtained: the request failed on the
// wire or the body could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a decoded envelope with success != true.
type ApplicationError struct {
	Op      string
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg())
}

// Msg is the backend's message, or the HTTP status text when it sent none.
func (e *ApplicationError) Msg() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	if t := http.StatusText(e.Status); t != "" {
		return t
	}
	return "request failed"
}
