package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Response struct {
	StatusCode int
	Success    bool
	Message    string
	Error      string
	Data       json.RawMessage
	Body       []byte
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newResponse(status int, body []byte) *Response {
	resp := &Response{StatusCode: status, Body: body}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		resp.Success = env.Success
		resp.Message = env.Message
		resp.Error = env.Error
		resp.Data = env.Data
	}
	return resp
}

// Decode unmarshals the envelope's data field into v. A missing or null data
// field leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// DecodeBody unmarshals the whole response body into v, for endpoints that
// put fields next to data.
func (r *Response) DecodeBody(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Classify maps a response onto the error taxonomy, checked in this order:
// status 422, status 401, success flag, anything else. A nil result means
// success.
func Classify(r *Response) error {
	switch {
	case r.StatusCode == http.StatusUnprocessableEntity:
		return &ValidationError{Fields: validationFields(r.Body)}
	case r.StatusCode == http.StatusUnauthorized:
		msg := r.Error
		if msg == "" {
			msg = r.Message
		}
		return &AuthError{Message: ResError(msg)}
	case r.Success:
		return nil
	default:
		return &GenericError{Message: ResError(r.Message), StatusCode: r.StatusCode}
	}
}

// validationFields accepts both a bare field map and a body that nests the
// map under "errors". Values may be a list of messages or a single message.
func validationFields(body []byte) map[string][]string {
	fields := map[string][]string{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fields
	}
	if nested, ok := raw["errors"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			raw = inner
		}
	} else {
		delete(raw, "message")
	}

	for key, value := range raw {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			fields[key] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fields[key] = []string{single}
		}
	}
	return fields
}
