package server

import (
	"net/http"

	"github.com/mockhotels/brandaudit/internal/audit"
	"github.com/mockhotels/brandaudit/internal/extract"
	"github.com/mockhotels/brandaudit/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Validation failures are the client's fault; provider call failures are a
// bad gateway; anything else is internal.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *pipeline.ValidationError:
		return http.StatusBadRequest
	case *extract.ServiceError, *audit.ServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
