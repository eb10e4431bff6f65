// README: Stream assembly and normalization of model output into a typed plan.
package plan

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// SourcesSentinel separates the main JSON payload from the appended
// grounding-source array inside one plain-text stream. The marker is not
// expected to occur in normal JSON or prose.
const SourcesSentinel = "\n\n__SOURCES__:"

var (
	fenceOpenRe  = regexp.MustCompile("```json\\s*")
	fenceCloseRe = regexp.MustCompile("```\\s*$")
	dayNumberRe  = regexp.MustCompile(`"day"\s*:\s*"?(\d+)`)
)

// SplitSources splits an accumulated buffer at the last sentinel
// occurrence. A parse failure on the source suffix degrades to an empty
// source list; the main payload is unaffected.
func SplitSources(buf string) (string, []SearchSource) {
	idx := strings.LastIndex(buf, SourcesSentinel)
	if idx < 0 {
		return buf, nil
	}
	text := buf[:idx]
	var sources []SearchSource
	if err := json.Unmarshal([]byte(buf[idx+len(SourcesSentinel):]), &sources); err != nil {
		log.Printf("plan: dropping unparsable sources suffix: %v", err)
		return text, nil
	}
	return text, sources
}

// ExtractJSON strips markdown code fences and slices the text to the span
// between the first '{' and the last '}'. When either brace is absent the
// text passes through untouched and the parse step fails loudly instead.
//
// The first-brace rule is deliberately naive: prose containing a literal
// '{' ahead of the real JSON corrupts the slice. Kept for compatibility
// with the upstream contract; see DESIGN.md.
func ExtractJSON(text string) string {
	text = fenceOpenRe.ReplaceAllString(text, "")
	text = fenceCloseRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last >= 0 {
		text = text[first : last+1]
	}
	return text
}

// ScanProgress reports the highest day number visible in a partially
// accumulated buffer. It is a landmark scan for progress display only and
// tolerates arbitrarily truncated JSON.
func ScanProgress(buf string) int {
	max := 0
	for _, m := range dayNumberRe.FindAllStringSubmatch(buf, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

// dedupeSources keeps one entry per URL. Order follows the first
// occurrence of each URL; the entry itself is the last one seen.
func dedupeSources(sources []SearchSource) []SearchSource {
	var out []SearchSource
	index := make(map[string]int)
	for _, s := range sources {
		if i, ok := index[s.URL]; ok {
			out[i] = s
			continue
		}
		index[s.URL] = len(out)
		out = append(out, s)
	}
	return out
}

// Normalize parses cleaned JSON text and coerces it field by field into a
// TravelPlan. Parse failure is fatal for the whole generation request;
// coercion never fails, it only degrades missing or mistyped fields to
// their zero shapes. requestedDays backfills overview.total_days when the
// model's stated total is missing, non-numeric, or zero.
func Normalize(text string, requestedDays int, sources []SearchSource) (*TravelPlan, error) {
	root, err := parseRaw([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("plan: parse model output: %w", err)
	}

	overview, _ := root.field("overview")
	weather, _ := root.field("weather_info")

	result := &TravelPlan{
		Overview: TripOverview{
			TripTheme: asString(fieldOf(overview, "trip_theme")),
			TotalDays: requestedDays,
			Cities:    asStringList(fieldOf(overview, "cities")),
			Pace:      asString(fieldOf(overview, "pace")),
			BestFor:   asStringList(fieldOf(overview, "best_for")),
		},
		WeatherInfo: WeatherInfo{
			TemperatureRange: asString(fieldOf(weather, "temperature_range")),
			WeatherCondition: asString(fieldOf(weather, "weather_condition")),
			Humidity:         asString(fieldOf(weather, "humidity")),
			ClothingAdvice:   asString(fieldOf(weather, "clothing_advice")),
		},
		DailyPlan:         []DayPlan{},
		MustBookInAdvance: asStringList(fieldOf(root, "must_book_in_advance")),
		AccommodationTips: asString(fieldOf(root, "accommodation_tips")),
		TransportTips:     asString(fieldOf(root, "transport_tips")),
		FinalAdvice:       asString(fieldOf(root, "final_advice")),
	}

	if n, ok := asNumber(fieldOf(overview, "total_days")); ok && n != 0 {
		result.Overview.TotalDays = int(n)
	}

	if daily, ok := root.field("daily_plan"); ok && daily.kind == kindArray {
		for _, entry := range daily.arr {
			day := DayPlan{
				City:      asString(fieldOf(entry, "city")),
				Morning:   asString(fieldOf(entry, "morning")),
				Afternoon: asString(fieldOf(entry, "afternoon")),
				Evening:   asString(fieldOf(entry, "evening")),
				Notes:     asString(fieldOf(entry, "notes")),
				PlanB:     asString(fieldOf(entry, "plan_b")),
			}
			// Numeric strings still count; anything unparsable lands on 0.
			if n, ok := asNumber(fieldOf(entry, "day")); ok {
				day.Day = int(n)
			}
			result.DailyPlan = append(result.DailyPlan, day)
		}
	}

	if deduped := dedupeSources(sources); len(deduped) > 0 {
		result.SearchSources = deduped
	}

	return result, nil
}

func fieldOf(v rawValue, key string) rawValue {
	f, _ := v.field(key)
	return f
}

// Assemble runs the full pipeline over one accumulated buffer: sentinel
// split, fence stripping, boundary extraction, parse, and coercion.
// extra carries provider-native sources (e.g. Gemini grounding metadata);
// they merge with sentinel-delimited ones before deduplication.
// Assembling the same buffer twice yields identical output.
func Assemble(buf string, requestedDays int, extra []SearchSource) (*TravelPlan, error) {
	text, sources := SplitSources(buf)
	sources = append(sources, extra...)
	return Normalize(ExtractJSON(text), requestedDays, sources)
}
