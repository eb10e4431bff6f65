// README: Trip preference model and form option ids.
package prefs

import "time"

// Provider identifies which text-generation backend serves a request.
type Provider string

const (
	ProviderGemini      Provider = "gemini"
	ProviderSiliconFlow Provider = "siliconflow"
)

// Option ids mirror the client form. Values double as the English labels
// embedded into the prompt, so they stay human-readable.
var (
	StyleOptions = []string{
		"Relaxing",
		"Food-focused",
		"Photography",
		"Culture & history",
		"Outdoor / hiking",
		"Long-distance Camping",
	}
	AvoidOptions = []string{
		"Crowds",
		"Museums",
		"Shopping",
		"Nightlife",
		"Hiking",
		"Tourist Traps",
	}
	PaceOptions      = []string{"Slow", "Balanced", "Intensive"}
	TransportOptions = []string{"Public Transit", "Self-driving", "Private Charter"}
	CompanionOptions = []string{"Solo", "Couple", "Friends", "Family (kids)", "Elderly"}
	BudgetOptions    = []string{"Budget", "Mid-range", "Premium"}
)

// StyleCamping gets special planning rules in the prompt.
const StyleCamping = "Long-distance Camping"

// Preferences describes one trip request as submitted by the form.
type Preferences struct {
	Destination    string   `json:"destination"`
	Waypoints      []string `json:"waypoints"`
	Days           int      `json:"days"`
	Travelers      int      `json:"travelers"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Styles         []string `json:"styles"`
	Avoid          []string `json:"avoid"`
	CustomAvoid    string   `json:"customAvoid,omitempty"`
	Pace           string   `json:"pace"`
	Transportation string   `json:"transportation"`
	Companions     string   `json:"companions"`
	Budget         string   `json:"budget"`
	CustomKeywords string   `json:"customKeywords"`
	Provider       Provider `json:"provider"`
}

const dateLayout = "2006-01-02"

// Days returns the inclusive day count of the range, or 0 when either date
// does not parse. A one-day trip has equal start and end dates.
func Days(start, end string) int {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0
	}
	diff := e.Sub(s)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours()/24) + 1
}
