// README: Normalized travel plan model.
package plan

// SearchSource is a grounding citation attached to a generated plan.
type SearchSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TripOverview summarizes the whole trip.
type TripOverview struct {
	TripTheme string   `json:"trip_theme"`
	TotalDays int      `json:"total_days"`
	Cities    []string `json:"cities"`
	Pace      string   `json:"pace"`
	BestFor   []string `json:"best_for"`
}

// WeatherInfo carries free-text weather guidance; none of it is parsed
// into structured units.
type WeatherInfo struct {
	TemperatureRange string `json:"temperature_range"`
	WeatherCondition string `json:"weather_condition"`
	Humidity         string `json:"humidity"`
	ClothingAdvice   string `json:"clothing_advice"`
}

// DayPlan is one day of the itinerary. Days are 1-indexed and contiguous
// in a well-formed plan; the normalizer does not reorder or renumber them.
type DayPlan struct {
	Day       int    `json:"day"`
	City      string `json:"city"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
	Notes     string `json:"notes"`
	PlanB     string `json:"plan_b"`
}

// TravelPlan is the fully-typed output of normalization. Every field is
// always present: strings default to "", slices to empty non-nil slices.
// SearchSources is the one exception; it is attached only when non-empty.
type TravelPlan struct {
	Overview          TripOverview   `json:"overview"`
	WeatherInfo       WeatherInfo    `json:"weather_info"`
	DailyPlan         []DayPlan      `json:"daily_plan"`
	MustBookInAdvance []string       `json:"must_book_in_advance"`
	AccommodationTips string         `json:"accommodation_tips"`
	TransportTips     string         `json:"transport_tips"`
	FinalAdvice       string         `json:"final_advice"`
	SearchSources     []SearchSource `json:"search_sources,omitempty"`
}

// Clone returns a deep copy, used when an edit draft is opened so that
// draft mutations never leak into the committed plan.
func (p *TravelPlan) Clone() *TravelPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Overview.Cities = append([]string(nil), p.Overview.Cities...)
	out.Overview.BestFor = append([]string(nil), p.Overview.BestFor...)
	out.DailyPlan = append([]DayPlan(nil), p.DailyPlan...)
	out.MustBookInAdvance = append([]string(nil), p.MustBookInAdvance...)
	out.SearchSources = append([]SearchSource(nil), p.SearchSources...)
	return &out
}
