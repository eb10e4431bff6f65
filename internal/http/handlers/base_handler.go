// README: Handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/ai"
	"wayfarer/internal/prefs"
	"wayfarer/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePipelineError maps pipeline failures to HTTP statuses. Transport
// and model-output failures deliberately collapse into one generic
// message; the client retries manually.
func writePipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prefs.ErrUnknownProvider), errors.Is(err, ai.ErrUnknownProvider):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, prefs.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ai.ErrMissingKey):
		writeError(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrNoDraft):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "generation failed")
	}
}
