// README: Optional waypoint pre-ordering via the Google Maps Directions API.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// RouteService reorders a trip's required stopovers into a geographically
// sensible sequence before the prompt is built, so the "minimize
// backtracking" planning rule starts from real routing data instead of
// the model's guess. The service is optional: without a Maps API key the
// planner passes waypoints through in user order.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// OrderWaypoints returns the stopovers reordered along an optimized route
// that starts and ends at origin. With fewer than two waypoints there is
// nothing to reorder.
func (s *RouteService) OrderWaypoints(ctx context.Context, origin string, waypoints []string) ([]string, error) {
	if len(waypoints) < 2 {
		return waypoints, nil
	}

	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: origin,
		Waypoints:   waypoints,
		Optimize:    true,
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].WaypointOrder) != len(waypoints) {
		return nil, fmt.Errorf("no usable route found")
	}

	ordered := make([]string, len(waypoints))
	for i, idx := range routes[0].WaypointOrder {
		ordered[i] = waypoints[idx]
	}
	return ordered, nil
}
