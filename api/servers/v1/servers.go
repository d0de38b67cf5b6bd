package v1

import (
	"net/http"
	"time"

	"github.com/jdholdren/pagelinks/api"
	"github.com/jdholdren/pagelinks/pagination"
)

const maxNameLength = 64

type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
}

// ServerList is one page of servers and the links to its neighbours.
type ServerList struct {
	Data  []Server           `json:"data"`
	Links pagination.LinkSet `json:"links"`
}

type CreateServerRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Validate checks that the body (minus logic checks) is valid.
//
// Returns an api.Error if the request is invalid.
func (r CreateServerRequest) Validate() error {
	errs := []api.ErrorDetail{}
	if r.Name == "" {
		errs = append(errs, api.ErrorDetail{
			Field: "name",
			Error: "name is required",
		})
	}
	if len(r.Name) > maxNameLength {
		errs = append(errs, api.ErrorDetail{
			Field: "name",
			Error: "name must be at most 64 characters",
		})
	}
	if r.Region == "" {
		errs = append(errs, api.ErrorDetail{
			Field: "region",
			Error: "region is required",
		})
	}
	if len(errs) > 0 {
		return api.Error{
			Message: "request was invalid",
			Details: errs,
			Status:  http.StatusBadRequest,
		}
	}

	return nil
}
