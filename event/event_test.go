package event

import (
	"strings"
	"testing"
	"time"

	"github.com/tbxark/eventagent/draft"
)

func validDraft() draft.Draft {
	return draft.Draft{
		"title":      "DevNight",
		"is_online":  true,
		"start_time": "2025-03-01T18:00",
	}
}

func TestFromDraftValid(t *testing.T) {
	d := validDraft()
	d["cost"] = "12.5"
	d["tags"] = []any{"go", "meetup"}
	d["end_time"] = "2025-03-01 20:00"

	e, err := FromDraft(d)
	if err != nil {
		t.Fatalf("FromDraft failed: %v", err)
	}
	if e.Title != "DevNight" || !e.IsOnline {
		t.Errorf("unexpected record: %+v", e)
	}
	want := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	if !e.StartTime.Equal(want) {
		t.Errorf("start time = %v, want %v", e.StartTime, want)
	}
	if e.EndTime == nil {
		t.Error("end time should have parsed")
	}
	if e.Cost != 12.5 {
		t.Errorf("cost = %v, want 12.5", e.Cost)
	}
	if len(e.Tags) != 2 {
		t.Errorf("tags = %v", e.Tags)
	}
}

func TestFromDraftRequiredChecks(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(d draft.Draft)
		wantErr string
	}{
		{"no title", func(d draft.Draft) { delete(d, "title") }, "title is required"},
		{"no is_online", func(d draft.Draft) { delete(d, "is_online") }, "is_online is required"},
		{"no start_time", func(d draft.Draft) { delete(d, "start_time") }, "start_time is required"},
		{"bad start_time", func(d draft.Draft) { d["start_time"] = "next tuesday-ish" }, "invalid start_time"},
		{"in-person without address", func(d draft.Draft) { d["is_online"] = false }, "location_address is required"},
	}
	for _, tc := range cases {
		d := validDraft()
		tc.mutate(d)
		if _, err := FromDraft(d); err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: got err %v, want contains %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestFromDraftCostDefaultsToZero(t *testing.T) {
	d := validDraft()
	d["cost"] = "free of charge"
	e, err := FromDraft(d)
	if err != nil {
		t.Fatalf("FromDraft failed: %v", err)
	}
	if e.Cost != 0 {
		t.Errorf("non-numeric cost should default to 0, got %v", e.Cost)
	}
}

func TestFromDraftBadEndTimeDropped(t *testing.T) {
	d := validDraft()
	d["end_time"] = "whenever"
	e, err := FromDraft(d)
	if err != nil {
		t.Fatalf("FromDraft failed: %v", err)
	}
	if e.EndTime != nil {
		t.Errorf("unparseable end_time should be dropped, got %v", e.EndTime)
	}
}

func TestJSONSchema(t *testing.T) {
	out, err := JSONSchema()
	if err != nil {
		t.Fatalf("JSONSchema failed: %v", err)
	}
	for _, want := range []string{"is_online", "location_address", "start_time"} {
		if !strings.Contains(out, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}
