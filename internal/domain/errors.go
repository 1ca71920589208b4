package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldError is one violated constraint on one argument.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string {
	if f.Path == "" {
		return f.Reason
	}
	return f.Path + ": " + f.Reason
}

// ValidationError reports malformed tool arguments. It never reaches the network.
type ValidationError struct {
	Operation string
	Fields    []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "Invalid arguments: " + strings.Join(parts, ", ")
}

// RemoteError is a non-2xx answer from the Raindrop API.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string          // status text, e.g. "Not Found"
	Body       json.RawMessage // structured error payload, if the service sent JSON
	Message    string          // the service's errorMessage field, if any
}

func (e *RemoteError) Error() string {
	msg := "Raindrop API error: " + e.Status
	if e.Message != "" && e.Message != e.Status {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// ConfigurationError is a missing or unusable credential or setting.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration error: %s is not set", e.Key)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// UnknownOperationError names a tool that is not in the catalog.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}
