package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/backend"
	"github.com/supercuration/supercon/pkg/models"
)

var log = internal.GetLogger()

// BoolFromQuery extracts a query string value and converts it to a bool
func BoolFromQuery(r *http.Request, param string) (bool, error) {
	p := r.URL.Query().Get(param)
	if p != "" {
		return strconv.ParseBool(p)
	}
	return false, nil
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// StatusFor maps an error of the viewer pipeline to an HTTP status. Failures of the
// annotation backend are reported as 502, except a 404 which is passed on.
func StatusFor(err error) int {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrStaleRequest):
		return http.StatusConflict
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.Is(err, models.ErrEmptyResponse),
		errors.Is(err, backend.ErrBusy),
		errors.Is(err, backend.ErrUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError renders an error response.
func RenderError(w http.ResponseWriter, err error, status int) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		status = http.StatusRequestEntityTooLarge
		err = fmt.Errorf("request body too large, documents are limited to %d bytes", maxBytesErr.Limit)
	}

	if status != http.StatusNotFound {
		// Don't log not found errors
		log.Error(err)
	}

	if errors.Is(err, models.ErrBadRequest) {
		status = http.StatusBadRequest
	}

	http.Error(w, err.Error(), status)
}

// RenderPipelineError renders err with the status given by StatusFor.
func RenderPipelineError(w http.ResponseWriter, err error) {
	RenderError(w, err, StatusFor(err))
}
