// README: Session aggregate owning the committed plan / edit draft pair.
package session

import (
	"errors"
	"time"

	"wayfarer/internal/plan"
	"wayfarer/internal/prefs"
	"wayfarer/internal/prompt"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrNoDraft  = errors.New("session has no open draft")
)

// Session is the single owner of a generated plan for one user visit.
// Plan is the committed itinerary; Draft is non-nil only while an edit is
// open. Nothing outlives the store TTL.
type Session struct {
	ID        string            `json:"id"`
	Language  prompt.Language   `json:"language"`
	Prefs     prefs.Preferences `json:"prefs"`
	Plan      *plan.TravelPlan  `json:"plan"`
	Draft     *plan.TravelPlan  `json:"draft,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
