// README: Deterministic prompt construction for itinerary generation.
package prompt

import (
	"fmt"
	"strings"

	"wayfarer/internal/prefs"
)

// Language selects the output language for plan values. JSON keys always
// stay in English regardless.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
)

func (l Language) Name() string {
	if l == LanguageZH {
		return "Chinese (Simplified)"
	}
	return "English"
}

// planSchema is the literal JSON shape the model must return. Embedded
// verbatim into every prompt.
const planSchema = `{
      "overview": {
        "trip_theme": "string",
        "total_days": number,
        "cities": ["string"],
        "pace": "string",
        "best_for": ["string"]
      },
      "weather_info": {
        "temperature_range": "string",
        "weather_condition": "string",
        "humidity": "string",
        "clothing_advice": "string"
      },
      "daily_plan": [
        {
          "day": number,
          "city": "string",
          "morning": "string",
          "afternoon": "string",
          "evening": "string",
          "notes": "string",
          "plan_b": "string"
        }
      ],
      "must_book_in_advance": ["string"],
      "accommodation_tips": "string",
      "transport_tips": "string",
      "final_advice": "string"
    }`

// SystemInstruction is the system prompt for search-grounded providers.
const SystemInstruction = "You are a world-class travel agent AI. You prioritize realistic, enjoyable itineraries over packed checklists. You MUST use Google Search to get accurate weather information. Always return valid JSON."

// FallbackSystemInstruction replaces SystemInstruction when the
// search-grounded call failed and the request is retried without tools.
const FallbackSystemInstruction = "You are a world-class travel agent AI. You prioritize realistic, enjoyable itineraries over packed checklists. Provide your best estimate for weather information based on your knowledge. Always return valid JSON."

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// Build renders the instruction string for one generation request. It is a
// pure string template: identical inputs produce byte-identical prompts.
// currentDate is a parameter (ISO date) so that callers control time.
// feedback, when non-empty, is injected as a priority instruction that
// overrides conflicting original preferences.
func Build(p prefs.Preferences, lang Language, feedback, currentDate string) string {
	stopovers := orNone(strings.Join(p.Waypoints, ", "))
	avoidList := orNone(strings.Join(p.Avoid, ", "))

	var b strings.Builder

	fmt.Fprintf(&b, "Act as a senior travel planner. Create a %d-day trip to %s for a %s trip (%d people).\n\n",
		p.Days, p.Destination, p.Companions, p.Travelers)

	if feedback != "" {
		fmt.Fprintf(&b, `*** IMPORTANT REGENERATION INSTRUCTION ***
The user wants to REGENERATE the itinerary based on the following feedback:
"%s"

You must ADJUST the itinerary to strictly address this feedback.
If the feedback contradicts the original preferences below, prioritize the feedback.
******************************************

`, feedback)
	}

	fmt.Fprintf(&b, `Context:
- Current Date: %s
- Trip Start Date: %s
- Trip End Date: %s
- Main Destination: %s
- Required Stopovers/Waypoints: %s

Preferences:
- Style: %s
- Avoid/Dislike: %s
- Pace: %s
- Transport Mode: %s
- Budget: %s
- Special requests: %s

Language Requirement:
- Output the content strictly in %s.
- IMPORTANT: The JSON keys (e.g., "overview", "daily_plan", "weather_info") MUST remain in English. Only the values should be in %s.

`, currentDate, p.StartDate, p.EndDate, p.Destination, stopovers,
		strings.Join(p.Styles, ", "), avoidList, p.Pace, p.Transportation, p.Budget,
		orNone(p.CustomKeywords), lang.Name(), lang.Name())

	fmt.Fprintf(&b, `Planning Logic (STRICT):
1. Travel Philosophy: One main activity per morning, one flexible activity per afternoon. Evenings are low-effort. Max 2 must-do items/day.
2. City & Route:
   - Start from the arrival point (usually %s or a major hub).
   - You MUST include visits to the following required stopovers: %s.
   - Ensure the "overview.cities" list includes the main destination AND all visited stopovers.
   - Organize these stops in a logical geographical order to minimize travel time and backtracking.
   - Minimize hotel changes where possible, but stay overnight in stopovers if it makes sense for the schedule.
3. Plan B: Always provide a backup plan (indoor/low energy) for bad weather or fatigue.
4. Reality Check: Assume day 1 and day %d are partial travel days if > 2 days.
5. Group Size Considerations: Since there are %d people, ensure activities and transport are appropriate for this group size.
6. Weather & Clothing:
   - Find the historical weather average or forecast (if dates are close) for %s during the trip dates (%s).
   - Provide SPECIFIC temperature ranges (e.g., 20-25°C), general weather conditions (e.g., Sunny, Rainy, Cloudy), humidity levels (e.g., Low, High, 80%%), and clothing advice based on this.
7. Transport Mode: The user plans to use %s.
   - If "Self-driving", include parking tips and scenic driving routes where applicable.
   - If "Public Transit", ensure activities are accessible by metro/bus/train and mention key routes.
   - If "Private Charter", assume door-to-door convenience but suggest worthwhile stops.
8. Exclusions: STRICTLY AVOID suggesting activities, locations, or areas related to: %s.
9. TIME & LOGISTICS (MANDATORY):
   - For every major activity in 'morning', 'afternoon', and 'evening', strictly START with the suggested **Start Time** and **Duration**.
   - Format: "**09:00 (2h)** Activity Name..." (Use bolding markers ** for the time/duration).
   - If moving between cities, explicitly state the **Departure Time** and **Travel Duration** (e.g., "**08:00 (1.5h travel)** Take Shinkansen to Kyoto").
`, p.Destination, stopovers, p.Days, p.Travelers, p.Destination, p.StartDate,
		p.Transportation, avoidList)

	if hasStyle(p.Styles, prefs.StyleCamping) {
		b.WriteString(`10. CAMPING & HIKING SPECIAL INSTRUCTIONS (CRITICAL):
   - Since the user selected "Long-distance Camping", the itinerary MUST focus on hiking trails and camping.
   - Daily Plan: Explicitly mention hiking distances (km/miles) and elevation gain/loss for each day where applicable.
   - Accommodation: You MUST suggest specific campsites (official or wild camping spots) instead of hotels for the nights on the trail.
   - Logistics: Mention water sources, resupply points for food, and permit requirements if any.
   - Safety: Highlight terrain difficulties and mandatory gear for this specific route.
`)
	}

	fmt.Fprintf(&b, `
OUTPUT FORMAT:
You must return a valid JSON object. Do not wrap it in markdown code blocks. The JSON must match this schema:
%s
`, planSchema)

	return b.String()
}

func hasStyle(styles []string, want string) bool {
	for _, s := range styles {
		if s == want {
			return true
		}
	}
	return false
}
