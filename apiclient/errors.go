package apiclient

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// FallbackMessage is shown when a failure carries no usable message.
const FallbackMessage = "Something went wrong"

// ValidationError is a 422 response: one or more messages per form field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// AuthError is a 401 response. The session guard deals with the session
// itself; callers only surface the message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// GenericError covers every other failure, transport errors included.
type GenericError struct {
	Message    string
	StatusCode int
}

func (e *GenericError) Error() string {
	return e.Message
}

// ResError returns msg, or the fallback message when msg is blank.
func ResError(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return FallbackMessage
	}
	return msg
}
