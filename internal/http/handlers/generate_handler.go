// README: Raw streaming endpoint; mirrors the original plain-text wire format.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/plan"
	"wayfarer/internal/prefs"
	"wayfarer/internal/prompt"
	"wayfarer/internal/trip"
)

type generateRequest struct {
	Prefs    prefs.Preferences `json:"prefs"`
	Language prompt.Language   `json:"language"`
	Feedback string            `json:"feedback,omitempty"`
}

func (r *generateRequest) toTripRequest() trip.Request {
	lang := r.Language
	if lang == "" {
		lang = prompt.LanguageZH
	}
	return trip.Request{Prefs: r.Prefs, Language: lang, Feedback: r.Feedback}
}

type GenerateHandler struct {
	planner *trip.Planner
}

func NewGenerateHandler(planner *trip.Planner) *GenerateHandler {
	return &GenerateHandler{planner: planner}
}

// Generate handles POST /api/generate. The response body is plain text:
// model chunks in arrival order, then the sentinel-delimited sources
// array (always appended, "[]" when the provider grounds nothing).
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("Cache-Control", "no-cache")

	wroteAny := false
	res, err := h.planner.GenerateRaw(c.Request.Context(), req.toTripRequest(), func(chunk string) error {
		if !wroteAny {
			c.Writer.WriteHeader(http.StatusOK)
			wroteAny = true
		}
		if _, werr := c.Writer.WriteString(chunk); werr != nil {
			return werr
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		if wroteAny {
			// Headers are gone; all we can do is cut the stream short.
			log.Printf("generate: stream aborted mid-flight: %v", err)
			return
		}
		writePipelineError(c, err)
		return
	}

	sources := res.Sources
	if sources == nil {
		sources = []plan.SearchSource{}
	}
	suffix, merr := json.Marshal(sources)
	if merr != nil {
		suffix = []byte("[]")
	}
	if !wroteAny {
		c.Writer.WriteHeader(http.StatusOK)
	}
	_, _ = c.Writer.WriteString(plan.SourcesSentinel + string(suffix))
	c.Writer.Flush()
}
