package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultTitle is shown when a recommendation has neither title nor name.
const DefaultTitle = "Recommendation"

// Metadata holds the backend's free-form fields in the order they were sent.
type Metadata = orderedmap.OrderedMap[string, any]

// NewMetadata creates an empty metadata map.
func NewMetadata() *Metadata {
	return orderedmap.New[string, any]()
}

// MatchScore is a recommendation's match percentage. Absent, null and
// non-numeric values decode to zero. Bounds are not enforced.
type MatchScore float64

// UnmarshalJSON accepts numbers and numeric strings.
func (m *MatchScore) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*m = MatchScore(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = MatchScore(f)
	default:
		*m = 0
	}
	return nil
}

// String formats the score in its shortest decimal form ("87", "87.5").
func (m MatchScore) String() string {
	return strconv.FormatFloat(float64(m), 'f', -1, 64)
}

// Recommendation is one ranked suggestion returned by the backend.
// The original JSON is retained so it can be forwarded unchanged.
type Recommendation struct {
	Title    any
	Name     any
	Match    MatchScore
	Metadata *Metadata

	raw json.RawMessage
}

type recommendationWire struct {
	Title    any             `json:"title,omitempty"`
	Name     any             `json:"name,omitempty"`
	Match    MatchScore      `json:"match"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes a recommendation and keeps its raw form.
// Metadata that is not a JSON object is treated as empty.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var wire recommendationWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.Title = wire.Title
	r.Name = wire.Name
	r.Match = wire.Match
	r.Metadata = nil

	if trimmed := bytes.TrimSpace(wire.Metadata); len(trimmed) > 0 && trimmed[0] == '{' {
		meta := NewMetadata()
		if err := json.Unmarshal(trimmed, meta); err != nil {
			return err
		}
		r.Metadata = meta
	}

	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original JSON when available.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}

	wire := recommendationWire{Title: r.Title, Name: r.Name, Match: r.Match}
	if r.Metadata != nil {
		meta, err := json.Marshal(r.Metadata)
		if err != nil {
			return nil, err
		}
		wire.Metadata = meta
	}
	return json.Marshal(wire)
}

// DisplayTitle returns the first truthy of title and name, or DefaultTitle.
func (r *Recommendation) DisplayTitle() string {
	for _, v := range []any{r.Title, r.Name} {
		if Truthy(v) {
			return DisplayValue(v)
		}
	}
	return DefaultTitle
}

// Meta returns a metadata value. It is safe on a recommendation without metadata.
func (r *Recommendation) Meta(key string) (any, bool) {
	if r.Metadata == nil {
		return nil, false
	}
	return r.Metadata.Get(key)
}

// FirstTruthy returns the display value of the first truthy metadata key.
func (r *Recommendation) FirstTruthy(keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := r.Meta(key); ok && Truthy(v) {
			return DisplayValue(v), true
		}
	}
	return "", false
}

// MetaLen returns the number of metadata entries.
func (r *Recommendation) MetaLen() int {
	if r.Metadata == nil {
		return 0
	}
	return r.Metadata.Len()
}

// Truthy reports whether a decoded JSON value counts as present.
// null, false, 0 and "" are falsy; everything else is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// DisplayValue formats a decoded JSON value for display.
func DisplayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = DisplayValue(item)
		}
		return strings.Join(parts, ",")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
