package plan

import (
	"strings"
	"testing"
)

func TestExportTextEnglish(t *testing.T) {
	p := canonicalPlan()
	p.SearchSources = []SearchSource{{Title: "Weather", URL: "http://w"}}
	got := p.ExportText("en")

	for _, want := range []string{
		"Kyoto in Autumn",
		"Overview: 3 days | Kyoto → Nara | Balanced",
		"Day 1 · Kyoto",
		"Morning: M1",
		"Plan B: B1",
		"Book in advance",
		"Accommodation: Stay near Gion",
		"Weather (http://w)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("export missing %q\n%s", want, got)
		}
	}
	// Day 2 has no notes or plan B; those lines must not render empty.
	if strings.Contains(got, "Notes: \n") {
		t.Error("blank notes line rendered")
	}
}

func TestExportTextChinese(t *testing.T) {
	got := canonicalPlan().ExportText("zh")
	for _, want := range []string{"第1天 · Kyoto", "上午: M1", "住宿建议"} {
		if !strings.Contains(got, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestExportTextUnknownLangFallsBack(t *testing.T) {
	got := canonicalPlan().ExportText("fr")
	if !strings.Contains(got, "Day 1") {
		t.Error("unknown language did not fall back to English labels")
	}
}
