package draft

import (
	"testing"
)

func TestMergeOverwritesAndClears(t *testing.T) {
	d := Draft{"title": "DevNight", "cost": 10.0}
	update := map[string]any{
		"cost":      nil,
		"is_online": true,
	}

	merged := d.Merge(update)

	if merged["title"] != "DevNight" {
		t.Errorf("untouched key changed: %v", merged["title"])
	}
	if v, ok := merged["cost"]; !ok || v != nil {
		t.Errorf("explicit null should keep the key with a nil value, got %v (present=%v)", v, ok)
	}
	if merged["is_online"] != true {
		t.Errorf("new key not set: %v", merged["is_online"])
	}
	if _, ok := d["is_online"]; ok {
		t.Error("merge mutated the original draft")
	}
}

func TestMergeIdempotent(t *testing.T) {
	d := Draft{"title": "DevNight"}
	update := map[string]any{"cost": 5.0, "title": nil}

	once := d.Merge(update)
	twice := once.Merge(update)

	if len(once) != len(twice) {
		t.Fatalf("key count differs: %d vs %d", len(once), len(twice))
	}
	for k, v := range once {
		if twice[k] != v {
			t.Errorf("key %q differs after second merge: %v vs %v", k, v, twice[k])
		}
	}
}

func TestHasTreatsNilAsAbsent(t *testing.T) {
	d := Draft{"title": "x", "cost": nil}
	if !d.Has("title") {
		t.Error("present value reported absent")
	}
	if d.Has("cost") {
		t.Error("nulled value reported present")
	}
	if d.Has("missing") {
		t.Error("missing key reported present")
	}
}

func TestNumberCoercion(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float", 12.5, 12.5, true},
		{"int", 3, 3, true},
		{"string", "7.25", 7.25, true},
		{"garbage string", "free", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		d := Draft{"cost": tc.value}
		got, ok := d.Number("cost")
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: Number = (%v, %v), want (%v, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStringsCoercion(t *testing.T) {
	d := Draft{"tags": []any{"go", "meetup", 42}}
	got := d.Strings("tags")
	if len(got) != 2 || got[0] != "go" || got[1] != "meetup" {
		t.Errorf("unexpected string list: %v", got)
	}
	if d.Strings("missing") != nil {
		t.Error("missing key should yield nil")
	}
}
