// README: Preference normalization and server-side validation.
package prefs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBadRequest      = errors.New("invalid preferences")
	ErrUnknownProvider = errors.New("unknown provider")
)

// MinDays and MaxDays bound the trip length the planner accepts.
const (
	MinDays = 1
	MaxDays = 14
)

// customAvoidSeparators splits free-text exclusions the way the form does:
// ASCII comma, fullwidth comma, and the ideographic enumeration comma.
func splitCustomAvoid(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize recomputes derived fields before validation: the day count is
// always taken from the date range rather than the submitted value, blank
// waypoints are dropped, and custom exclusion text is merged into Avoid.
// The merged exclusion list intentionally preserves duplicates.
func (p *Preferences) Normalize() {
	p.Destination = strings.TrimSpace(p.Destination)
	p.CustomKeywords = strings.TrimSpace(p.CustomKeywords)

	var wps []string
	for _, w := range p.Waypoints {
		w = strings.TrimSpace(w)
		if w != "" {
			wps = append(wps, w)
		}
	}
	p.Waypoints = wps

	p.Days = Days(p.StartDate, p.EndDate)

	if p.CustomAvoid != "" {
		p.Avoid = append(p.Avoid, splitCustomAvoid(p.CustomAvoid)...)
		p.CustomAvoid = ""
	}
}

// Validate checks a normalized preference set. Call Normalize first.
func (p *Preferences) Validate() error {
	if p.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrBadRequest)
	}
	if len(p.Styles) == 0 {
		return fmt.Errorf("%w: at least one travel style is required", ErrBadRequest)
	}
	if p.Travelers < 1 {
		return fmt.Errorf("%w: travelers must be at least 1", ErrBadRequest)
	}
	s, err := time.Parse(dateLayout, p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: bad start date %q", ErrBadRequest, p.StartDate)
	}
	e, err := time.Parse(dateLayout, p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: bad end date %q", ErrBadRequest, p.EndDate)
	}
	if e.Before(s) {
		return fmt.Errorf("%w: end date before start date", ErrBadRequest)
	}
	if p.Days < MinDays || p.Days > MaxDays {
		return fmt.Errorf("%w: trip length must be %d-%d days, got %d", ErrBadRequest, MinDays, MaxDays, p.Days)
	}
	switch p.Provider {
	case ProviderGemini, ProviderSiliconFlow:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, p.Provider)
	}
	return nil
}
