package results

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pathways/internal/models"
)

// Session keys.
const (
	KeyRecommendations = "currentRecommendations" // JSON array text
	KeyPathway         = "currentPathway"         // plain string
	KeyResultSet       = "currentResultSet"       // result set ID
	KeyModal           = "modalState"             // open handle
)

// Session is the page state of one user session. Every key is read and
// written on its own; Get returns "" for a missing key and Set with an empty
// value deletes it.
type Session interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store overwrites the session's result set and closes any open modal.
// The ID is removed first and written last, so a concurrent Load sees either
// the old set, no set, or the new one.
func Store(sess Session, rs *ResultSet) error {
	data, err := json.Marshal(rs.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	steps := []func() error{
		func() error { return sess.Delete(KeyResultSet) },
		func() error { return sess.Set(KeyRecommendations, string(data)) },
		func() error { return sess.Set(KeyPathway, rs.Pathway) },
		func() error { return sess.Set(KeyResultSet, rs.ID.String()) },
		func() error { return sess.Delete(KeyModal) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("store result set: %w", err)
		}
	}
	return nil
}

// errReplaced means a submission landed while a result set was being read.
var errReplaced = errors.New("result set replaced while reading")

// Load reads the session's result set.
func Load(sess Session) (*ResultSet, error) {
	for attempt := 0; attempt < 3; attempt++ {
		rs, err := loadOnce(sess)
		if !errors.Is(err, errReplaced) {
			return rs, err
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrNoResultSet, errReplaced)
}

func loadOnce(sess Session) (*ResultSet, error) {
	idStr, err := sess.Get(KeyResultSet)
	if err != nil {
		return nil, err
	}
	if idStr == "" {
		return nil, ErrNoResultSet
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: result set id %q", ErrCorruptCache, idStr)
	}

	raw, err := sess.Get(KeyRecommendations)
	if err != nil {
		return nil, err
	}
	pathway, err := sess.Get(KeyPathway)
	if err != nil {
		return nil, err
	}

	again, err := sess.Get(KeyResultSet)
	if err != nil {
		return nil, err
	}
	if again != idStr {
		return nil, errReplaced
	}

	var recs []models.Recommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}

	return &ResultSet{ID: id, Pathway: pathway, Recommendations: recs}, nil
}

// LoadModal reads the session's modal state.
func LoadModal(sess Session) (ModalState, error) {
	h, err := sess.Get(KeyModal)
	if err != nil {
		return Closed, err
	}
	if h == "" {
		return Closed, nil
	}
	return Open(Handle(h)), nil
}

// StoreModal writes the session's modal state.
func StoreModal(sess Session, m ModalState) error {
	if !m.IsOpen() {
		return sess.Delete(KeyModal)
	}
	return sess.Set(KeyModal, string(m.Handle()))
}
