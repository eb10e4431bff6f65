// README: Plain-text export of a normalized plan.
package plan

import (
	"fmt"
	"strings"
)

type exportLabels struct {
	overview, weather, day, morning, afternoon, evening string
	notes, planB, mustBook, accommodation, transport    string
	finalAdvice, sources                                string
}

var exportLabelsByLang = map[string]exportLabels{
	"en": {
		overview: "Overview", weather: "Weather", day: "Day",
		morning: "Morning", afternoon: "Afternoon", evening: "Evening",
		notes: "Notes", planB: "Plan B", mustBook: "Book in advance",
		accommodation: "Accommodation", transport: "Transport",
		finalAdvice: "Final advice", sources: "Sources",
	},
	"zh": {
		overview: "行程总览", weather: "天气", day: "第",
		morning: "上午", afternoon: "下午", evening: "晚上",
		notes: "备注", planB: "备选方案", mustBook: "需提前预订",
		accommodation: "住宿建议", transport: "交通建议",
		finalAdvice: "最后提醒", sources: "参考来源",
	},
}

// ExportText renders the plan as printable plain text. lang falls back to
// English for unknown codes.
func (p *TravelPlan) ExportText(lang string) string {
	l, ok := exportLabelsByLang[lang]
	if !ok {
		l = exportLabelsByLang["en"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Overview.TripTheme)
	fmt.Fprintf(&b, "%s: %d days | %s | %s\n", l.overview, p.Overview.TotalDays,
		strings.Join(p.Overview.Cities, " → "), p.Overview.Pace)
	if len(p.Overview.BestFor) > 0 {
		fmt.Fprintf(&b, "%s\n", strings.Join(p.Overview.BestFor, ", "))
	}

	fmt.Fprintf(&b, "\n%s: %s, %s, %s\n%s\n", l.weather,
		p.WeatherInfo.TemperatureRange, p.WeatherInfo.WeatherCondition,
		p.WeatherInfo.Humidity, p.WeatherInfo.ClothingAdvice)

	for _, d := range p.DailyPlan {
		if lang == "zh" {
			fmt.Fprintf(&b, "\n%s%d天 · %s\n", l.day, d.Day, d.City)
		} else {
			fmt.Fprintf(&b, "\n%s %d · %s\n", l.day, d.Day, d.City)
		}
		fmt.Fprintf(&b, "  %s: %s\n", l.morning, d.Morning)
		fmt.Fprintf(&b, "  %s: %s\n", l.afternoon, d.Afternoon)
		fmt.Fprintf(&b, "  %s: %s\n", l.evening, d.Evening)
		if d.Notes != "" {
			fmt.Fprintf(&b, "  %s: %s\n", l.notes, d.Notes)
		}
		if d.PlanB != "" {
			fmt.Fprintf(&b, "  %s: %s\n", l.planB, d.PlanB)
		}
	}

	if len(p.MustBookInAdvance) > 0 {
		fmt.Fprintf(&b, "\n%s:\n", l.mustBook)
		for _, item := range p.MustBookInAdvance {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	if p.AccommodationTips != "" {
		fmt.Fprintf(&b, "\n%s: %s\n", l.accommodation, p.AccommodationTips)
	}
	if p.TransportTips != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.transport, p.TransportTips)
	}
	if p.FinalAdvice != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.finalAdvice, p.FinalAdvice)
	}
	if len(p.SearchSources) > 0 {
		fmt.Fprintf(&b, "\n%s:\n", l.sources)
		for _, s := range p.SearchSources {
			fmt.Fprintf(&b, "  - %s (%s)\n", s.Title, s.URL)
		}
	}
	return b.String()
}
