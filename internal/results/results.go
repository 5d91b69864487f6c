// Package results holds the page controller's view of the last submission:
// the result set, the handles issued for its cards, and the details modal.
package results

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"pathways/internal/models"
)

var (
	// ErrStaleReference is returned when a handle does not name a card of the
	// current result set.
	ErrStaleReference = errors.New("stale or unknown recommendation reference")
	// ErrNoResultSet is returned when the session holds no result set.
	ErrNoResultSet = errors.New("no recommendations in session")
	// ErrCorruptCache is returned when the cached result set cannot be decoded.
	ErrCorruptCache = errors.New("cached recommendations are corrupt")
)

// Handle identifies one card of one result set: "<result-set-id>.<index>".
type Handle string

// NewHandle builds the handle for index i of result set id.
func NewHandle(id uuid.UUID, i int) Handle {
	return Handle(id.String() + "." + strconv.Itoa(i))
}

// Parse splits a handle into its result set ID and index.
func (h Handle) Parse() (uuid.UUID, int, error) {
	idPart, indexPart, ok := strings.Cut(string(h), ".")
	if !ok {
		return uuid.Nil, 0, ErrStaleReference
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, 0, ErrStaleReference
	}
	i, err := strconv.Atoi(indexPart)
	if err != nil || i < 0 {
		return uuid.Nil, 0, ErrStaleReference
	}
	return id, i, nil
}

// ResultSet is the ordered list of recommendations returned by one submission.
// Index 0 is the best match.
type ResultSet struct {
	ID              uuid.UUID
	Pathway         string
	Recommendations []models.Recommendation
}

// New creates a result set with a fresh ID.
func New(pathway string, recs []models.Recommendation) *ResultSet {
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return &ResultSet{
		ID:              uuid.New(),
		Pathway:         pathway,
		Recommendations: recs,
	}
}

// Len returns the number of recommendations.
func (rs *ResultSet) Len() int {
	return len(rs.Recommendations)
}

// Handle returns the handle for index i.
func (rs *ResultSet) Handle(i int) Handle {
	return NewHandle(rs.ID, i)
}

// Resolve returns the recommendation a handle refers to.
func (rs *ResultSet) Resolve(h Handle) (*models.Recommendation, error) {
	id, i, err := h.Parse()
	if err != nil {
		return nil, err
	}
	if id != rs.ID || i >= len(rs.Recommendations) {
		return nil, fmt.Errorf("%w: %s", ErrStaleReference, h)
	}
	return &rs.Recommendations[i], nil
}

// Field is one labelled value on a card.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is the rendered form of one recommendation.
type Card struct {
	Handle Handle  `json:"handle"`
	Rank   int     `json:"rank"`
	Title  string  `json:"title"`
	Match  string  `json:"match"`
	Fields []Field `json:"fields"`
}

// Cards renders every recommendation using the catalog's rows for the
// result set's pathway. Unknown pathways get no rows.
func (rs *ResultSet) Cards(catalog models.Catalog) []Card {
	rules := catalog.Fields(rs.Pathway)

	cards := make([]Card, len(rs.Recommendations))
	for i := range rs.Recommendations {
		rec := &rs.Recommendations[i]
		cards[i] = Card{
			Handle: rs.Handle(i),
			Rank:   i + 1,
			Title:  rec.DisplayTitle(),
			Match:  rec.Match.String(),
			Fields: fieldsFor(rec, rules),
		}
	}
	return cards
}

func fieldsFor(rec *models.Recommendation, rules []models.FieldRule) []Field {
	fields := make([]Field, 0, len(rules))
	for _, rule := range rules {
		value, ok := rec.FirstTruthy(rule.Keys)
		if !ok {
			value = rule.Fallback
		}
		fields = append(fields, Field{Label: rule.Label, Value: value})
	}
	return fields
}
