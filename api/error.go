// Package api holds the wire types shared by the server and its clients.
package api

import "fmt"

// Error is the body of every non-2xx response.
type Error struct {
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
	Status  int           `json:"status"`
}

type ErrorDetail struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

func (e Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Details)
}
