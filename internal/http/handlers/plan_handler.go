// README: Normalized-plan endpoints with the session edit/save/cancel cycle.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/plan"
	"wayfarer/internal/session"
	"wayfarer/internal/trip"
)

type PlanHandler struct {
	planner  *trip.Planner
	sessions *session.Service
}

func NewPlanHandler(planner *trip.Planner, sessions *session.Service) *PlanHandler {
	return &PlanHandler{planner: planner, sessions: sessions}
}

type planResponse struct {
	SessionID string           `json:"session_id"`
	Plan      *plan.TravelPlan `json:"plan"`
	Draft     *plan.TravelPlan `json:"draft,omitempty"`
}

func toPlanResponse(sess *session.Session) planResponse {
	return planResponse{SessionID: sess.ID, Plan: sess.Plan, Draft: sess.Draft}
}

// Create handles POST /api/plan: full pipeline, then a fresh session.
func (h *PlanHandler) Create(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	treq := req.toTripRequest()
	tp, err := h.planner.Generate(c.Request.Context(), treq)
	if err != nil {
		writePipelineError(c, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), treq.Prefs, treq.Language, tp)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

// Get handles GET /api/plan/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

// BeginEdit handles POST /api/plan/:id/edit.
func (h *PlanHandler) BeginEdit(c *gin.Context) {
	sess, err := h.sessions.BeginEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

// UpdateDraft handles PUT /api/plan/:id/draft.
func (h *PlanHandler) UpdateDraft(c *gin.Context) {
	var draft plan.TravelPlan
	if err := c.ShouldBindJSON(&draft); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := h.sessions.UpdateDraft(c.Request.Context(), c.Param("id"), &draft)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

// SaveEdit handles POST /api/plan/:id/save.
func (h *PlanHandler) SaveEdit(c *gin.Context) {
	sess, err := h.sessions.SaveEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

// CancelEdit handles POST /api/plan/:id/cancel.
func (h *PlanHandler) CancelEdit(c *gin.Context) {
	sess, err := h.sessions.CancelEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

type regenerateRequest struct {
	Feedback string `json:"feedback"`
}

// Regenerate handles POST /api/plan/:id/regenerate: the whole pipeline
// runs again with the feedback layered onto the stored preferences, and
// the result replaces the session's plan.
func (h *PlanHandler) Regenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePipelineError(c, err)
		return
	}

	tp, err := h.planner.Generate(c.Request.Context(), trip.Request{
		Prefs:    sess.Prefs,
		Language: sess.Language,
		Feedback: req.Feedback,
	})
	if err != nil {
		writePipelineError(c, err)
		return
	}

	sess, err = h.sessions.ReplacePlan(c.Request.Context(), sess.ID, tp)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResponse(sess))
}

// Export handles GET /api/plan/:id/export with a plain-text rendering.
func (h *PlanHandler) Export(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sess.Plan.ExportText(string(sess.Language))))
}
