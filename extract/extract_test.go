package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/tbxark/eventagent/draft"
	"github.com/tbxark/eventagent/event"
	"github.com/tbxark/eventagent/modeltest"
)

func TestExtractMergesUpdate(t *testing.T) {
	cm := modeltest.New(modeltest.ToolCall(`{"title":"DevNight","is_online":true,"cost":0}`))
	engine := NewModelExtractor(event.Definition(), cm)

	res, err := engine.Extract(context.Background(), draft.Draft{"description": "keep"}, "it's an online meetup called DevNight, free")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Draft["title"] != "DevNight" || res.Draft["is_online"] != true {
		t.Errorf("update not merged: %v", res.Draft)
	}
	if res.Draft["description"] != "keep" {
		t.Errorf("unmentioned key lost: %v", res.Draft)
	}
	if res.Expansion != nil {
		t.Errorf("unexpected expansion intent: %+v", res.Expansion)
	}
	call := cm.Calls()[0]
	if call.Temperature == nil || *call.Temperature != 0 {
		t.Errorf("extraction must run at temperature zero, got %v", call.Temperature)
	}
}

func TestExtractStripsControlKeys(t *testing.T) {
	cm := modeltest.New(modeltest.ToolCall(`{"title":"DevNight","needs_expansion":true,"expansion_target":"description"}`))
	engine := NewModelExtractor(event.Definition(), cm)

	res, err := engine.Extract(context.Background(), draft.New(), "call it DevNight and write a description")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if _, ok := res.Draft[KeyNeedsExpansion]; ok {
		t.Error("needs_expansion leaked into the draft")
	}
	if _, ok := res.Draft[KeyExpansionTarget]; ok {
		t.Error("expansion_target leaked into the draft")
	}
	if res.Expansion == nil || res.Expansion.Field != "description" {
		t.Errorf("expansion intent not captured: %+v", res.Expansion)
	}
}

func TestExtractModelSignalSkipsKeywordScan(t *testing.T) {
	// The utterance contains a trigger phrase, but the model already
	// named a different target field; the scan must not override it.
	cm := modeltest.New(modeltest.ToolCall(`{"needs_expansion":true,"expansion_target":"title"}`))
	engine := NewModelExtractor(event.Definition(), cm)

	res, err := engine.Extract(context.Background(), draft.New(), "please write a longer title, like marketing copy")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Expansion == nil || res.Expansion.Field != "title" {
		t.Errorf("model-provided target lost: %+v", res.Expansion)
	}
}

func TestExtractUnknownExpansionTargetFallsBack(t *testing.T) {
	cm := modeltest.New(modeltest.ToolCall(`{"needs_expansion":true,"expansion_target":"venue_vibes"}`))
	engine := NewModelExtractor(event.Definition(), cm)

	res, err := engine.Extract(context.Background(), draft.New(), "write something nice about the venue")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Expansion == nil || res.Expansion.Field != DefaultExpansionField {
		t.Errorf("undeclared target should fall back to %q: %+v", DefaultExpansionField, res.Expansion)
	}
}

func TestExtractKeywordFallback(t *testing.T) {
	cm := modeltest.New(modeltest.ToolCall(`{}`))
	engine := NewModelExtractor(event.Definition(), cm)

	res, err := engine.Extract(context.Background(), draft.New(), "Could you write a longer description for this?")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Expansion == nil || res.Expansion.Field != DefaultExpansionField {
		t.Errorf("keyword fallback should default to %q: %+v", DefaultExpansionField, res.Expansion)
	}
}

func TestExtractMalformedPayloadIsEmptyUpdate(t *testing.T) {
	cm := modeltest.New(modeltest.ToolCall(`{"title": not json`))
	engine := NewModelExtractor(event.Definition(), cm)

	current := draft.Draft{"title": "DevNight"}
	res, err := engine.Extract(context.Background(), current, "gibberish turn")
	if err != nil {
		t.Fatalf("malformed payload must be recovered, got %v", err)
	}
	if len(res.Draft) != 1 || res.Draft["title"] != "DevNight" {
		t.Errorf("draft changed on malformed payload: %v", res.Draft)
	}
}

func TestExtractMalformedPayloadStillScansKeywords(t *testing.T) {
	cm := modeltest.New(modeltest.ToolCall(`not json at all`))
	engine := NewModelExtractor(event.Definition(), cm)

	res, err := engine.Extract(context.Background(), draft.New(), "give me some marketing copy")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.Expansion == nil || res.Expansion.Field != DefaultExpansionField {
		t.Errorf("keyword signal is independent of the model payload: %+v", res.Expansion)
	}
}

func TestExtractTransportFailurePropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	cm := modeltest.New(modeltest.Failure(wantErr))
	engine := NewModelExtractor(event.Definition(), cm)

	_, err := engine.Extract(context.Background(), draft.New(), "hello")
	if !errors.Is(err, wantErr) {
		t.Errorf("transport failure should propagate, got %v", err)
	}
}

func TestScanExpansionTriggers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Please write a LONGER description", true},
		{"some Marketing Copy would be nice", true},
		{"make it longer", true},
		{"the venue is 12 Main St", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := scanExpansionTriggers(tc.input); got != tc.want {
			t.Errorf("scan(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
