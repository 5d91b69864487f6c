package validation

import (
	"strconv"
	"strings"
	"testing"
)

func TestValidatePathway(t *testing.T) {
	tests := []struct {
		name    string
		pathway string
		want    bool
	}{
		{"career", "career", true},
		{"education", "education", true},
		{"tesda", "tesda", true},
		{"unknown but well formed", "scholarship", true},
		{"with hyphen", "short-course", true},
		{"with underscore", "short_course", true},
		{"empty string", "", false},
		{"too long", strings.Repeat("a", 65), false},
		{"max length", strings.Repeat("a", 64), true},
		{"uppercase", "Career", false},
		{"contains space", "my path", false},
		{"path traversal attempt", "../etc", false},
		{"quote injection", `career"`, false},
		{"unicode", "日本語", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePathway(tt.pathway); got != tt.want {
				t.Errorf("ValidatePathway(%q) = %v, want %v", tt.pathway, got, tt.want)
			}
		})
	}
}

func TestValidateResponses(t *testing.T) {
	tooMany := make(map[string]any, MaxResponses+1)
	for i := 0; i <= MaxResponses; i++ {
		tooMany["q"+strconv.Itoa(i)] = "a"
	}

	tests := []struct {
		name      string
		responses map[string]any
		want      bool
	}{
		{"nil", nil, true},
		{"empty", map[string]any{}, true},
		{"opaque values", map[string]any{"q1": "a", "q2": []any{"x"}, "q3": 3.0}, true},
		{"blank key", map[string]any{" ": "a"}, false},
		{"too many", tooMany, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateResponses(tt.responses)
			if got != tt.want {
				t.Errorf("ValidateResponses() = %v (%s), want %v", got, msg, tt.want)
			}
			if !got && msg == "" {
				t.Error("expected a message on failure")
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"http", "http://localhost:5000", true},
		{"https", "https://backend.example.com", true},
		{"empty", "", false},
		{"no scheme", "backend:5000", false},
		{"ftp", "ftp://backend", false},
		{"javascript", "javascript:alert(1)", false},
		{"missing host", "http://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := ValidateURL(tt.url); got != tt.want {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
