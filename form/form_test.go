package form

import (
	"strings"
	"testing"

	"github.com/tbxark/eventagent/draft"
)

func TestDisplayLabel(t *testing.T) {
	cases := []struct {
		field Field
		want  string
	}{
		{Field{Name: "title", Description: "The name of the event"}, "The name of the event"},
		{Field{Name: "start_time", Description: "Start date. ISO format preferred"}, "Start date"},
		{Field{Name: "location_address"}, "Location Address"},
	}
	for _, tc := range cases {
		if got := tc.field.DisplayLabel(); got != tc.want {
			t.Errorf("DisplayLabel(%q) = %q, want %q", tc.field.Name, got, tc.want)
		}
	}
}

func TestInstructionsRendering(t *testing.T) {
	s := Schema{
		Title: "Event",
		Fields: []Field{
			{Name: "title", Type: TypeString, Description: "The name of the event", Required: true},
			{Name: "cost", Type: TypeNumber, Description: "Cost of the event ticket"},
		},
		Rules: []string{"'cost' must be a number (0 for free)."},
	}

	out := s.Instructions()
	for _, want := range []string{"title", "cost", "REQUIRED", "OPTIONAL", "Logic rules", "0 for free"} {
		if !strings.Contains(out, want) {
			t.Errorf("instructions missing %q:\n%s", want, out)
		}
	}
}

func TestFormatMissingLabels(t *testing.T) {
	if got := FormatMissingLabels(nil); got != "" {
		t.Errorf("empty report should render nothing, got %q", got)
	}
	got := FormatMissingLabels([]string{"Title", "Cost"})
	if !strings.Contains(got, "# Missing critical fields:") || !strings.Contains(got, "Title, Cost") {
		t.Errorf("unexpected section: %q", got)
	}
}

func TestMissingFieldsOrderAndDedup(t *testing.T) {
	s := Schema{
		Fields: []Field{
			{Name: "title", Description: "Title", Required: true},
			{Name: "venue", Description: "Venue", Required: true},
			{Name: "notes", Description: "Notes"},
		},
	}
	critical := []CriticalField{
		{Name: "title", Label: "Title"},
		{Name: "cost", Label: "Cost"},
	}
	rule := func(d draft.Draft) (string, bool) {
		return "Venue (special)", !d.Has("venue")
	}

	got := MissingFields(s, draft.Draft{}, critical, rule)
	want := []string{"Title", "Venue", "Cost", "Venue (special)"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMissingFieldsMonotonic(t *testing.T) {
	s := Schema{
		Fields: []Field{
			{Name: "title", Description: "Title", Required: true},
			{Name: "venue", Description: "Venue", Required: true},
		},
	}

	before := MissingFields(s, draft.Draft{}, nil)
	after := MissingFields(s, draft.Draft{"title": "x"}, nil)

	if len(after) >= len(before) {
		t.Fatalf("filling a field should shrink the report: %v -> %v", before, after)
	}
	beforeSet := make(map[string]bool, len(before))
	for _, label := range before {
		beforeSet[label] = true
	}
	for _, label := range after {
		if !beforeSet[label] {
			t.Errorf("new label %q appeared after a field-additive update", label)
		}
	}
}

func TestNulledValueCountsAsMissing(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "title", Description: "Title", Required: true}}}
	got := MissingFields(s, draft.Draft{"title": nil}, nil)
	if len(got) != 1 || got[0] != "Title" {
		t.Errorf("nulled required field should be reported, got %v", got)
	}
}
