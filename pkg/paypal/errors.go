package paypal

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrTimeout = errors.New("TIMEOUT")

type ErrorDetail struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

// APIError is the processor's structured failure payload for a non-2xx
// response.
type APIError struct {
	StatusCode int           `json:"-"`
	Name       string        `json:"name"`
	Message    string        `json:"message"`
	DebugID    string        `json:"debug_id"`
	Details    []ErrorDetail `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal: %s (%s): %s", e.Name, e.DebugID, e.Message)
}

// UserMessage builds the admin-facing description of a gateway failure: the
// first detail's description when one is present, otherwise a templated
// message carrying the serialized payload for support diagnosis.
func (e *APIError) UserMessage() string {
	for _, detail := range e.Details {
		if detail.Description != "" {
			return fmt.Sprintf("%s: %s", detail.Issue, detail.Description)
		}
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("The payment processor rejected the request (%s).", e.Name)
	}

	return fmt.Sprintf("The payment processor rejected the request. Details: %s", payload)
}
