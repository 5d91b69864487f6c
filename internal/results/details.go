package results

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pathways/internal/models"
)

// EmptyDetailsText is shown when a recommendation has no metadata.
const EmptyDetailsText = "Detailed information from the machine learning model."

// Details is the content of the details modal.
type Details struct {
	Handle Handle  `json:"handle"`
	Title  string  `json:"title"`
	Match  string  `json:"match"`
	Rows   []Field `json:"rows"`
	Empty  bool    `json:"empty"`
}

// BuildDetails lists every metadata pair in order, skipping the "title" key
// and falsy values.
func BuildDetails(h Handle, rec *models.Recommendation) Details {
	d := Details{
		Handle: h,
		Title:  rec.DisplayTitle(),
		Match:  rec.Match.String(),
		Rows:   []Field{},
		Empty:  rec.MetaLen() == 0,
	}
	if d.Empty {
		return d
	}

	for pair := rec.Metadata.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "title" || !models.Truthy(pair.Value) {
			continue
		}
		d.Rows = append(d.Rows, Field{
			Label: HumanizeKey(pair.Key),
			Value: models.DisplayValue(pair.Value),
		})
	}
	return d
}

// HumanizeKey turns "related_titles" into "Related titles".
func HumanizeKey(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
