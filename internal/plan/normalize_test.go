// README: Normalizer tests (round trip, coercion, sentinel split, boundaries).
package plan

import (
	"reflect"
	"strings"
	"testing"
)

const canonicalJSON = `{
  "overview": {"trip_theme": "Kyoto in Autumn", "total_days": 3, "cities": ["Kyoto", "Nara"], "pace": "Balanced", "best_for": ["Couples"]},
  "weather_info": {"temperature_range": "10-18°C", "weather_condition": "Sunny", "humidity": "Medium", "clothing_advice": "Layers and a light coat"},
  "daily_plan": [
    {"day": 1, "city": "Kyoto", "morning": "M1", "afternoon": "A1", "evening": "E1", "notes": "N1", "plan_b": "B1"},
    {"day": 2, "city": "Kyoto", "morning": "M2", "afternoon": "A2", "evening": "E2", "notes": "", "plan_b": ""},
    {"day": 3, "city": "Nara", "morning": "M3", "afternoon": "A3", "evening": "E3", "notes": "N3", "plan_b": "B3"}
  ],
  "must_book_in_advance": ["Teahouse dinner"],
  "accommodation_tips": "Stay near Gion",
  "transport_tips": "Get an IC card",
  "final_advice": "Book early"
}`

func canonicalPlan() *TravelPlan {
	return &TravelPlan{
		Overview: TripOverview{
			TripTheme: "Kyoto in Autumn",
			TotalDays: 3,
			Cities:    []string{"Kyoto", "Nara"},
			Pace:      "Balanced",
			BestFor:   []string{"Couples"},
		},
		WeatherInfo: WeatherInfo{
			TemperatureRange: "10-18°C",
			WeatherCondition: "Sunny",
			Humidity:         "Medium",
			ClothingAdvice:   "Layers and a light coat",
		},
		DailyPlan: []DayPlan{
			{Day: 1, City: "Kyoto", Morning: "M1", Afternoon: "A1", Evening: "E1", Notes: "N1", PlanB: "B1"},
			{Day: 2, City: "Kyoto", Morning: "M2", Afternoon: "A2", Evening: "E2"},
			{Day: 3, City: "Nara", Morning: "M3", Afternoon: "A3", Evening: "E3", Notes: "N3", PlanB: "B3"},
		},
		MustBookInAdvance: []string{"Teahouse dinner"},
		AccommodationTips: "Stay near Gion",
		TransportTips:     "Get an IC card",
		FinalAdvice:       "Book early",
	}
}

func TestAssembleRoundTrip(t *testing.T) {
	variants := map[string]string{
		"bare":        canonicalJSON,
		"fenced":      "```json\n" + canonicalJSON + "\n```",
		"fenced bare": "```\n" + canonicalJSON + "\n```",
	}
	for name, buf := range variants {
		got, err := Assemble(buf, 3, nil)
		if err != nil {
			t.Fatalf("%s: Assemble: %v", name, err)
		}
		if !reflect.DeepEqual(got, canonicalPlan()) {
			t.Errorf("%s: round trip mismatch\ngot  %+v\nwant %+v", name, got, canonicalPlan())
		}
	}
}

// Chunk boundaries must not matter: the assembler sees one accumulated
// buffer regardless of how the transport sliced it.
func TestAssembleChunkedReassembly(t *testing.T) {
	for _, size := range []int{1, 7, 64} {
		var acc strings.Builder
		for i := 0; i < len(canonicalJSON); i += size {
			end := i + size
			if end > len(canonicalJSON) {
				end = len(canonicalJSON)
			}
			acc.WriteString(canonicalJSON[i:end])
		}
		got, err := Assemble(acc.String(), 3, nil)
		if err != nil {
			t.Fatalf("chunk size %d: Assemble: %v", size, err)
		}
		if !reflect.DeepEqual(got, canonicalPlan()) {
			t.Errorf("chunk size %d: mismatch", size)
		}
	}
}

func TestAssembleIdempotent(t *testing.T) {
	buf := "Sure! Here's the plan: " + canonicalJSON + " Hope you enjoy!"
	first, err := Assemble(buf, 3, nil)
	if err != nil {
		t.Fatalf("first Assemble: %v", err)
	}
	second, err := Assemble(buf, 3, nil)
	if err != nil {
		t.Fatalf("second Assemble: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalizing the same buffer twice diverged")
	}
}

func TestBoundaryExtractionWithProse(t *testing.T) {
	buf := `Sure! Here's the plan: {"overview":{"trip_theme":"T","total_days":2}} Hope you enjoy!`
	got, err := Assemble(buf, 2, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got.Overview.TripTheme != "T" || got.Overview.TotalDays != 2 {
		t.Errorf("got overview %+v", got.Overview)
	}
}

func TestAssembleNoBraceFails(t *testing.T) {
	if _, err := Assemble("the model returned prose with no json at all", 3, nil); err == nil {
		t.Fatal("expected an error for text without any brace")
	}
}

func TestScalarCoercion(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"number", `{"daily_plan":[{"morning": 42}]}`, "42"},
		{"float", `{"daily_plan":[{"morning": 2.5}]}`, "2.5"},
		{"array", `{"daily_plan":[{"morning": ["walk", "eat", 3]}]}`, "walk, eat, 3"},
		{"object", `{"daily_plan":[{"morning": {"a": "visit temple", "b": "then lunch"}}]}`, "visit temple then lunch"},
		{"nested", `{"daily_plan":[{"morning": {"a": ["x", "y"], "b": 1}}]}`, "x, y 1"},
		{"bool", `{"daily_plan":[{"morning": true}]}`, ""},
		{"null", `{"daily_plan":[{"morning": null}]}`, ""},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.json, 1, nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got.DailyPlan) != 1 {
			t.Fatalf("%s: expected one day, got %d", tc.name, len(got.DailyPlan))
		}
		if got.DailyPlan[0].Morning != tc.want {
			t.Errorf("%s: morning = %q, want %q", tc.name, got.DailyPlan[0].Morning, tc.want)
		}
	}
}

// Object coercion joins values in document order, not key order.
func TestObjectCoercionDocumentOrder(t *testing.T) {
	got, err := Normalize(`{"accommodation_tips": {"z": "first", "a": "second"}}`, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccommodationTips != "first second" {
		t.Errorf("got %q, want %q", got.AccommodationTips, "first second")
	}
}

func TestListCoercion(t *testing.T) {
	cases := []struct {
		name string
		json string
		want []string
	}{
		{"array", `{"must_book_in_advance": ["a", "b"]}`, []string{"a", "b"}},
		{"bare string", `{"must_book_in_advance": "a"}`, []string{"a"}},
		{"number", `{"must_book_in_advance": 5}`, []string{}},
		{"object", `{"must_book_in_advance": {"a": "b"}}`, []string{}},
		{"absent", `{}`, []string{}},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.json, 1, nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !reflect.DeepEqual(got.MustBookInAdvance, tc.want) {
			t.Errorf("%s: got %#v, want %#v", tc.name, got.MustBookInAdvance, tc.want)
		}
	}
}

func TestTotalDaysFallback(t *testing.T) {
	cases := []struct {
		name string
		json string
		want int
	}{
		{"present", `{"overview": {"total_days": 5}}`, 5},
		{"numeric string", `{"overview": {"total_days": "5"}}`, 5},
		{"missing", `{"overview": {}}`, 7},
		{"no overview", `{}`, 7},
		{"non-numeric", `{"overview": {"total_days": "about a week"}}`, 7},
		{"zero", `{"overview": {"total_days": 0}}`, 7},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.json, 7, nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got.Overview.TotalDays != tc.want {
			t.Errorf("%s: total_days = %d, want %d", tc.name, got.Overview.TotalDays, tc.want)
		}
	}
}

func TestDayNumberCoercion(t *testing.T) {
	got, err := Normalize(`{"daily_plan": [{"day": "3"}, {"day": 4}, {"day": "soon"}]}`, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	days := []int{got.DailyPlan[0].Day, got.DailyPlan[1].Day, got.DailyPlan[2].Day}
	want := []int{3, 4, 0}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("day numbers = %v, want %v", days, want)
	}
}

func TestDailyPlanNonArray(t *testing.T) {
	got, err := Normalize(`{"daily_plan": "not a list"}`, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.DailyPlan == nil || len(got.DailyPlan) != 0 {
		t.Errorf("expected empty non-nil daily plan, got %#v", got.DailyPlan)
	}
}

func TestSentinelSplit(t *testing.T) {
	buf := `{"overview":{"total_days":1}}` + "\n\n__SOURCES__:" + `[{"title":"A","url":"http://x"}]`
	got, err := Assemble(buf, 1, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []SearchSource{{Title: "A", URL: "http://x"}}
	if !reflect.DeepEqual(got.SearchSources, want) {
		t.Errorf("sources = %#v, want %#v", got.SearchSources, want)
	}
}

func TestSentinelSplitBadSuffixDegrades(t *testing.T) {
	buf := `{"overview":{"total_days":1}}` + "\n\n__SOURCES__:" + `[{"title": broken`
	got, err := Assemble(buf, 1, nil)
	if err != nil {
		t.Fatalf("a bad sources suffix must not fail the request: %v", err)
	}
	if got.SearchSources != nil {
		t.Errorf("expected no sources, got %#v", got.SearchSources)
	}
}

func TestSourceDedupLastWins(t *testing.T) {
	sources := []SearchSource{
		{Title: "old", URL: "http://x"},
		{Title: "other", URL: "http://y"},
		{Title: "new", URL: "http://x"},
	}
	got, err := Assemble(`{"overview":{"total_days":1}}`, 1, sources)
	if err != nil {
		t.Fatal(err)
	}
	want := []SearchSource{
		{Title: "new", URL: "http://x"},
		{Title: "other", URL: "http://y"},
	}
	if !reflect.DeepEqual(got.SearchSources, want) {
		t.Errorf("sources = %#v, want %#v", got.SearchSources, want)
	}
}

func TestScanProgress(t *testing.T) {
	cases := []struct {
		buf  string
		want int
	}{
		{"", 0},
		{`{"daily_plan":[{"day": 1, "city"`, 1},
		{`{"daily_plan":[{"day": 1},{"day": 2},{"day": 3},{"mor`, 3},
		{`{"day": "2"}`, 2},
		{"no days here", 0},
	}
	for _, tc := range cases {
		if got := ScanProgress(tc.buf); got != tc.want {
			t.Errorf("ScanProgress(%q) = %d, want %d", tc.buf, got, tc.want)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := canonicalPlan()
	cp := orig.Clone()
	cp.DailyPlan[0].Morning = "changed"
	cp.Overview.Cities[0] = "Osaka"
	if orig.DailyPlan[0].Morning != "M1" || orig.Overview.Cities[0] != "Kyoto" {
		t.Error("mutating the clone leaked into the original")
	}
}
