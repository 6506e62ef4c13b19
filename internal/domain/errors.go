package domain

import (
	"fmt"
	"strings"
)

// TransportError reports a non-success HTTP response from the data API.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("youtube api error %d: %s", e.StatusCode, e.Status)
	if e.Endpoint != "" {
		msg = fmt.Sprintf("youtube api %s error %d: %s", e.Endpoint, e.StatusCode, e.Status)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += " " + body
	}
	return msg
}

// NotFoundError reports a required cross-reference that could not be resolved.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %s", e.Resource, e.ID)
}

// ConfigurationError reports missing or inconsistent settings.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}
