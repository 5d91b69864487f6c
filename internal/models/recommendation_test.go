package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeRecommendation(t *testing.T, raw string) Recommendation {
	t.Helper()
	var rec Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", raw, err)
	}
	return rec
}

func TestRecommendation_DisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"title wins", `{"title":"Data Analyst","name":"ignored"}`, "Data Analyst"},
		{"name when title empty", `{"title":"","name":"Welding NC II"}`, "Welding NC II"},
		{"name when title missing", `{"name":"BSIT"}`, "BSIT"},
		{"default when both missing", `{"match":50}`, DefaultTitle},
		{"numeric title", `{"title":42}`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := decodeRecommendation(t, tt.raw)
			if got := rec.DisplayTitle(); got != tt.expected {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"integer", `{"match":87}`, "87"},
		{"fraction", `{"match":87.5}`, "87.5"},
		{"missing", `{}`, "0"},
		{"null", `{"match":null}`, "0"},
		{"numeric string", `{"match":"64"}`, "64"},
		{"garbage string", `{"match":"high"}`, "0"},
		{"out of range kept", `{"match":140}`, "140"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := decodeRecommendation(t, tt.raw)
			if got := rec.Match.String(); got != tt.expected {
				t.Errorf("Match = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRecommendation_MetadataOrderPreserved(t *testing.T) {
	rec := decodeRecommendation(t, `{"title":"x","metadata":{"zeta":"1","alpha":"2","mid":"3"}}`)

	var keys []string
	for pair := rec.Metadata.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	expected := []string{"zeta", "alpha", "mid"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("metadata keys = %v, want %v", keys, expected)
	}
}

func TestRecommendation_NonObjectMetadataIsEmpty(t *testing.T) {
	for _, raw := range []string{
		`{"title":"x","metadata":null}`,
		`{"title":"x","metadata":"oops"}`,
		`{"title":"x","metadata":[1,2]}`,
		`{"title":"x"}`,
	} {
		rec := decodeRecommendation(t, raw)
		if rec.MetaLen() != 0 {
			t.Errorf("%s: MetaLen() = %d, want 0", raw, rec.MetaLen())
		}
		if _, ok := rec.FirstTruthy([]string{"growth"}); ok {
			t.Errorf("%s: FirstTruthy() found a value in empty metadata", raw)
		}
	}
}

func TestRecommendation_MarshalKeepsOriginal(t *testing.T) {
	raw := `{"title":"Data Analyst","match":87,"metadata":{"growth":"High"},"extra":{"source":"model-v2"}}`
	rec := decodeRecommendation(t, raw)

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var want, got any
	json.Unmarshal([]byte(raw), &want)
	json.Unmarshal(out, &got)
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Marshal() = %s, want %s", out, raw)
	}
}

func TestRecommendation_MarshalConstructed(t *testing.T) {
	meta := NewMetadata()
	meta.Set("growth", "High")
	rec := Recommendation{Title: "Nurse", Match: 70, Metadata: meta}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	back := decodeRecommendation(t, string(out))
	if back.DisplayTitle() != "Nurse" || back.Match != 70 {
		t.Errorf("round trip = %+v", back)
	}
	if v, _ := back.FirstTruthy([]string{"growth"}); v != "High" {
		t.Errorf("growth = %q, want High", v)
	}
}

func TestRecommendation_FirstTruthy(t *testing.T) {
	rec := decodeRecommendation(t, `{"metadata":{"related_titles":"","related":"QA Engineer","zero":0}}`)

	if got, ok := rec.FirstTruthy([]string{"related_titles", "related"}); !ok || got != "QA Engineer" {
		t.Errorf("FirstTruthy() = %q, %v; want QA Engineer, true", got, ok)
	}
	if _, ok := rec.FirstTruthy([]string{"zero"}); ok {
		t.Error("FirstTruthy() should skip zero values")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", float64(0), false},
		{"number", float64(3), true},
		{"empty string", "", false},
		{"string", "a", true},
		{"empty array", []any{}, true},
		{"empty object", map[string]any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.value); got != tt.expected {
				t.Errorf("Truthy(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "High", "High"},
		{"integer float", float64(12), "12"},
		{"fraction", float64(1.25), "1.25"},
		{"bool", true, "true"},
		{"array", []any{"QA", "Dev", float64(3)}, "QA,Dev,3"},
		{"object", map[string]any{"a": "b"}, `{"a":"b"}`},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayValue(tt.value); got != tt.expected {
				t.Errorf("DisplayValue(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}
