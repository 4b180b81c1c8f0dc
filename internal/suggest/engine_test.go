package suggest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/gatherly/scout/internal/gateway"
	"github.com/gatherly/scout/internal/models"
)

// fakeReader serves a fixed title corpus.
type fakeReader struct {
	titles   []gateway.Title
	titleErr error
}

func (f *fakeReader) FindMeetings(context.Context, gateway.Query) ([]*models.Meeting, error) {
	return nil, nil
}
func (f *fakeReader) FindPosts(context.Context, gateway.Query) ([]*models.Post, error) {
	return nil, nil
}
func (f *fakeReader) FindComments(context.Context, gateway.Query) ([]*models.Comment, error) {
	return nil, nil
}
func (f *fakeReader) FindUsers(context.Context, gateway.Query) ([]*models.User, error) {
	return nil, nil
}
func (f *fakeReader) Titles(context.Context, int) ([]gateway.Title, error) {
	return f.titles, f.titleErr
}
func (f *fakeReader) CountEntities(context.Context) (map[models.EntityType]int64, error) {
	return nil, nil
}
func (f *fakeReader) Close() error { return nil }

// fakeAnalytics serves fixed historical terms.
type fakeAnalytics struct {
	terms   []models.TermCount
	termErr error
}

func (f *fakeAnalytics) Append(context.Context, *models.QueryRecord) error { return nil }
func (f *fakeAnalytics) PopularTerms(context.Context, int) ([]string, error) {
	return nil, nil
}
func (f *fakeAnalytics) TermFrequencies(context.Context, int) ([]models.TermCount, error) {
	return f.terms, f.termErr
}
func (f *fakeAnalytics) Count(context.Context) (int64, error) { return 0, nil }
func (f *fakeAnalytics) Close() error                         { return nil }

func newTestEngine(titles []gateway.Title, terms []models.TermCount) *Engine {
	return NewEngine(&fakeReader{titles: titles}, &fakeAnalytics{terms: terms}, zap.NewNop())
}

func texts(suggestions []*models.SearchSuggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Text
	}
	return out
}

func TestSuggestions_prefixBeatsSubstring(t *testing.T) {
	e := newTestEngine([]gateway.Title{
		{Text: "Weekly Team Sync", Type: models.EntityMeeting},
		{Text: "Team Standup", Type: models.EntityMeeting},
	}, nil)

	got, err := e.Suggestions(context.Background(), "team", 10)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	want := []string{"Team Standup", "Weekly Team Sync"}
	if len(got) != 2 || got[0].Text != want[0] || got[1].Text != want[1] {
		t.Errorf("order = %v, want %v", texts(got), want)
	}
	if got[0].Source != "meeting" {
		t.Errorf("source = %q, want meeting", got[0].Source)
	}
}

func TestSuggestions_frequencyBreaksTiesWithinTier(t *testing.T) {
	e := newTestEngine(nil, []models.TermCount{
		{Term: "team retro", Count: 2},
		{Term: "team standup", Count: 9},
	})

	got, err := e.Suggestions(context.Background(), "team", 10)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	want := []string{"team standup", "team retro"}
	if len(got) != 2 || got[0].Text != want[0] || got[1].Text != want[1] {
		t.Errorf("order = %v, want %v", texts(got), want)
	}
	if got[0].Source != "query" || got[0].Count != 9 {
		t.Errorf("historical suggestion = %+v", got[0])
	}
}

func TestSuggestions_alphabeticalFinalTieBreak(t *testing.T) {
	e := newTestEngine([]gateway.Title{
		{Text: "Team Beta", Type: models.EntityMeeting},
		{Text: "Team Alpha", Type: models.EntityPost},
	}, nil)

	got, err := e.Suggestions(context.Background(), "team", 10)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 2 || got[0].Text != "Team Alpha" || got[1].Text != "Team Beta" {
		t.Errorf("order = %v, want alphabetical", texts(got))
	}
}

func TestSuggestions_titleWinsDuplicateOverHistoricalTerm(t *testing.T) {
	e := newTestEngine(
		[]gateway.Title{{Text: "Team Standup", Type: models.EntityMeeting}},
		[]models.TermCount{{Term: "team standup", Count: 4}},
	)

	got, err := e.Suggestions(context.Background(), "team", 10)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate not collapsed: %v", texts(got))
	}
	if got[0].Source != "meeting" || got[0].Count != 4 {
		t.Errorf("title entry should carry the historical count: %+v", got[0])
	}
}

func TestSuggestions_maxTruncates(t *testing.T) {
	e := newTestEngine([]gateway.Title{
		{Text: "Team Alpha", Type: models.EntityMeeting},
		{Text: "Team Beta", Type: models.EntityMeeting},
		{Text: "Team Gamma", Type: models.EntityMeeting},
	}, nil)

	got, err := e.Suggestions(context.Background(), "team", 2)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d suggestions, want 2", len(got))
	}
}

func TestSuggestions_emptyQueryAndZeroMax(t *testing.T) {
	e := newTestEngine([]gateway.Title{{Text: "Team Standup", Type: models.EntityMeeting}}, nil)

	for _, q := range []string{"", "   "} {
		got, err := e.Suggestions(context.Background(), q, 10)
		if err != nil || got != nil {
			t.Errorf("Suggestions(%q) = %v, %v; want nil, nil", q, got, err)
		}
	}
	got, err := e.Suggestions(context.Background(), "team", 0)
	if err != nil || got != nil {
		t.Errorf("Suggestions(max=0) = %v, %v; want nil, nil", got, err)
	}
}

func TestSuggestions_corpusFailuresDegrade(t *testing.T) {
	e := NewEngine(
		&fakeReader{titleErr: errors.New("db gone")},
		&fakeAnalytics{terms: []models.TermCount{{Term: "team standup", Count: 3}}},
		zap.NewNop(),
	)
	got, err := e.Suggestions(context.Background(), "team", 10)
	if err != nil {
		t.Fatalf("title failure should not fail the request: %v", err)
	}
	if len(got) != 1 || got[0].Text != "team standup" {
		t.Errorf("historical terms should still serve: %v", texts(got))
	}

	e = NewEngine(
		&fakeReader{titles: []gateway.Title{{Text: "Team Standup", Type: models.EntityMeeting}}},
		&fakeAnalytics{termErr: errors.New("db gone")},
		zap.NewNop(),
	)
	got, err = e.Suggestions(context.Background(), "team", 10)
	if err != nil {
		t.Fatalf("term failure should not fail the request: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Team Standup" {
		t.Errorf("titles should still serve: %v", texts(got))
	}
}

func TestSuggestions_cancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEngine([]gateway.Title{{Text: "Team Standup", Type: models.EntityMeeting}}, nil)
	if _, err := e.Suggestions(ctx, "team", 10); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
