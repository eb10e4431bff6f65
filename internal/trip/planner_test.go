package trip

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wayfarer/internal/ai"
	"wayfarer/internal/plan"
	"wayfarer/internal/prefs"
	"wayfarer/internal/prompt"
)

// stubProvider replays a canned response in fixed-size chunks, recording
// the prompt it was given.
type stubProvider struct {
	text      string
	sources   []plan.SearchSource
	chunkSize int
	err       error
	gotPrompt string
}

func (s *stubProvider) Generate(ctx context.Context, p string) (ai.Result, error) {
	return s.GenerateStream(ctx, p, func(string) error { return nil })
}

func (s *stubProvider) GenerateStream(_ context.Context, p string, onChunk func(string) error) (ai.Result, error) {
	s.gotPrompt = p
	if s.err != nil {
		return ai.Result{}, s.err
	}
	size := s.chunkSize
	if size <= 0 {
		size = len(s.text)
	}
	for i := 0; i < len(s.text); i += size {
		end := i + size
		if end > len(s.text) {
			end = len(s.text)
		}
		if err := onChunk(s.text[i:end]); err != nil {
			return ai.Result{}, err
		}
	}
	return ai.Result{Text: s.text, Sources: s.sources}, nil
}

type stubResolver struct {
	provider ai.Provider
	err      error
}

func (r stubResolver) ForID(prefs.Provider) (ai.Provider, error) {
	return r.provider, r.err
}

func testRequest() Request {
	return Request{
		Prefs: prefs.Preferences{
			Destination:    "Kyoto",
			Travelers:      2,
			StartDate:      "2026-09-01",
			EndDate:        "2026-09-02",
			Styles:         []string{"Relaxing"},
			Pace:           "Balanced",
			Transportation: "Public Transit",
			Companions:     "Couple",
			Budget:         "Mid-range",
			Provider:       prefs.ProviderGemini,
		},
		Language: prompt.LanguageEN,
	}
}

const stubResponse = `Here you go: {"overview":{"trip_theme":"Kyoto","total_days":2},"daily_plan":[{"day":1,"city":"Kyoto","morning":"temple"},{"day":2,"city":"Kyoto","morning":"market"}]}`

func TestGenerateNormalizes(t *testing.T) {
	p := &stubProvider{text: stubResponse, chunkSize: 9}
	pl := NewPlanner(stubResolver{provider: p}, nil)

	got, err := pl.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}
	if got.Overview.TripTheme != "Kyoto" || len(got.DailyPlan) != 2 {
		t.Errorf("plan = %+v", got)
	}
	if got.DailyPlan[1].Morning != "market" {
		t.Errorf("day 2 morning = %q", got.DailyPlan[1].Morning)
	}
	if !strings.Contains(p.gotPrompt, "Create a 2-day trip to Kyoto") {
		t.Error("prompt not built from the request preferences")
	}
}

func TestGenerateAttachesSources(t *testing.T) {
	p := &stubProvider{
		text:    `{"overview":{"total_days":2}}`,
		sources: []plan.SearchSource{{Title: "W", URL: "http://w"}},
	}
	pl := NewPlanner(stubResolver{provider: p}, nil)

	got, err := pl.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.SearchSources) != 1 || got.SearchSources[0].URL != "http://w" {
		t.Errorf("sources = %#v", got.SearchSources)
	}
}

func TestGenerateInvalidPrefs(t *testing.T) {
	pl := NewPlanner(stubResolver{provider: &stubProvider{}}, nil)
	req := testRequest()
	req.Prefs.Destination = ""
	if _, err := pl.Generate(context.Background(), req); !errors.Is(err, prefs.ErrBadRequest) {
		t.Errorf("error = %v, want ErrBadRequest", err)
	}
}

func TestGenerateResolverError(t *testing.T) {
	pl := NewPlanner(stubResolver{err: ai.ErrMissingKey}, nil)
	if _, err := pl.Generate(context.Background(), testRequest()); !errors.Is(err, ai.ErrMissingKey) {
		t.Errorf("error = %v, want ErrMissingKey", err)
	}
}

func TestGenerateProviderError(t *testing.T) {
	boom := errors.New("upstream down")
	pl := NewPlanner(stubResolver{provider: &stubProvider{err: boom}}, nil)
	if _, err := pl.Generate(context.Background(), testRequest()); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestGenerateRawStreamsChunks(t *testing.T) {
	p := &stubProvider{text: stubResponse, chunkSize: 7}
	pl := NewPlanner(stubResolver{provider: p}, nil)

	var acc strings.Builder
	res, err := pl.GenerateRaw(context.Background(), testRequest(), func(chunk string) error {
		acc.WriteString(chunk)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if acc.String() != stubResponse || res.Text != stubResponse {
		t.Error("raw stream did not reproduce the provider text")
	}
}

func TestGenerateFeedbackReachesPrompt(t *testing.T) {
	p := &stubProvider{text: `{"overview":{"total_days":2}}`}
	pl := NewPlanner(stubResolver{provider: p}, nil)
	req := testRequest()
	req.Feedback = "more street food"
	if _, err := pl.Generate(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.gotPrompt, "more street food") {
		t.Error("feedback missing from the built prompt")
	}
}
