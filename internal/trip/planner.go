// README: Generation pipeline; orders waypoints, prompts a provider, normalizes the result.
package trip

import (
	"context"
	"log"
	"time"

	"wayfarer/internal/ai"
	"wayfarer/internal/maps"
	"wayfarer/internal/plan"
	"wayfarer/internal/prefs"
	"wayfarer/internal/prompt"
)

// ProviderResolver maps a provider selector to an adapter. Satisfied by
// *ai.Registry; tests substitute stubs.
type ProviderResolver interface {
	ForID(id prefs.Provider) (ai.Provider, error)
}

// Request is one generation request. Feedback is non-empty only on
// regeneration; it overrides conflicting original preferences.
type Request struct {
	Prefs    prefs.Preferences
	Language prompt.Language
	Feedback string
}

// Planner orchestrates the full pipeline. Each request's accumulation
// state is local to the call; the Planner itself holds no mutable state,
// so concurrent requests need no coordination.
type Planner struct {
	providers ProviderResolver
	routes    *maps.RouteService // nil when no Maps key is configured
	now       func() time.Time
}

func NewPlanner(providers ProviderResolver, routes *maps.RouteService) *Planner {
	return &Planner{providers: providers, routes: routes, now: time.Now}
}

// prepare validates the request and builds the prompt string.
func (pl *Planner) prepare(ctx context.Context, req *Request) (string, error) {
	req.Prefs.Normalize()
	if err := req.Prefs.Validate(); err != nil {
		return "", err
	}

	if pl.routes != nil && len(req.Prefs.Waypoints) >= 2 {
		ordered, err := pl.routes.OrderWaypoints(ctx, req.Prefs.Destination, req.Prefs.Waypoints)
		if err != nil {
			// Routing is best-effort; the user's order stands.
			log.Printf("trip: waypoint ordering failed, keeping user order: %v", err)
		} else {
			req.Prefs.Waypoints = ordered
		}
	}

	currentDate := pl.now().UTC().Format("2006-01-02")
	return prompt.Build(req.Prefs, req.Language, req.Feedback, currentDate), nil
}

// Generate runs the whole pipeline and returns a normalized plan. Exactly
// one provider round trip happens per call (two when Gemini falls back
// from search to no-search internally).
func (pl *Planner) Generate(ctx context.Context, req Request) (*plan.TravelPlan, error) {
	built, err := pl.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}
	provider, err := pl.providers.ForID(req.Prefs.Provider)
	if err != nil {
		return nil, err
	}

	var buf []byte
	highestDay := 0
	res, err := provider.GenerateStream(ctx, built, func(chunk string) error {
		buf = append(buf, chunk...)
		if d := plan.ScanProgress(string(buf)); d > highestDay {
			highestDay = d
			log.Printf("trip: drafting day %d/%d", d, req.Prefs.Days)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return plan.Assemble(res.Text, req.Prefs.Days, res.Sources)
}

// GenerateRaw runs the pipeline up to (and including) the provider call
// and hands raw chunks to onChunk without normalizing. The streaming
// endpoint uses it to reproduce the plain-text wire format.
func (pl *Planner) GenerateRaw(ctx context.Context, req Request, onChunk func(string) error) (ai.Result, error) {
	built, err := pl.prepare(ctx, &req)
	if err != nil {
		return ai.Result{}, err
	}
	provider, err := pl.providers.ForID(req.Prefs.Provider)
	if err != nil {
		return ai.Result{}, err
	}
	return provider.GenerateStream(ctx, built, onChunk)
}
