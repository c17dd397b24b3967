// Package ai wraps the remote inference service behind a single request/response call.
package ai

import (
	"context"
	"fmt"
)

// Role of a turn in a conversation history.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in a conversation history.
type Turn struct {
	Role Role
	Text string
}

// Image is an inline image payload.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is a single outbound inference call.
type Request struct {
	SystemPrompt string
	Prompt       string
	Temperature  float64
	History      []Turn
	Image        *Image
}

// Gateway sends a request and returns the reply text. Every failure is an *Error.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Error is a gateway failure carrying a human-readable message.
type Error struct {
	Message string
	Status  int // HTTP status from the service, 0 when no response arrived
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(status int, err error, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: status, Err: err}
}

// Unconfigured is the gateway used when no API key is set.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, Request) (string, error) {
	return "", &Error{Message: "AI service is not configured"}
}
