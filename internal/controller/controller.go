// Package controller implements the recommendation page operations on top of
// a user's session: submitting a questionnaire, saving a recommendation and
// opening or closing the details modal.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pathways/internal/metrics"
	"pathways/internal/models"
	"pathways/internal/results"
	"pathways/internal/upstream"
	"pathways/internal/validation"
)

var (
	ErrInvalidPathway   = errors.New("invalid pathway")
	ErrInvalidResponses = errors.New("invalid responses")
)

// Backend is the recommendation service the page talks to.
type Backend interface {
	SubmitPathway(ctx context.Context, pathway string, responses map[string]any) ([]models.Recommendation, error)
	SaveRecommendation(ctx context.Context, pathway string, rec models.Recommendation) error
}

// OtherPathway is the event bucket for pathway tags outside the catalog.
// Tags come from request paths, so only catalog tags get their own counters.
const OtherPathway = "other"

// Controller owns the page state kept in each user's session.
type Controller struct {
	backend     Backend
	catalog     models.Catalog
	recordEvent func(pathway, operation, outcome string)
}

// New creates a controller.
func New(backend Backend, catalog models.Catalog) *Controller {
	if catalog == nil {
		catalog = models.DefaultCatalog()
	}
	return &Controller{backend: backend, catalog: catalog, recordEvent: metrics.RecordEvent}
}

// Catalog returns the pathway catalog used for rendering.
func (c *Controller) Catalog() models.Catalog {
	return c.catalog
}

// Submit forwards the responses to the backend and, on success, replaces the
// session's result set with the returned recommendations.
func (c *Controller) Submit(ctx context.Context, sess results.Session, pathway string, responses map[string]any) (*results.ResultSet, error) {
	if !validation.ValidatePathway(pathway) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPathway, pathway)
	}
	if ok, msg := validation.ValidateResponses(responses); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponses, msg)
	}

	recs, err := c.backend.SubmitPathway(ctx, pathway, responses)
	if err != nil {
		c.record(pathway, models.OperationSubmit, err)
		return nil, err
	}

	rs := results.New(pathway, recs)
	if err := results.Store(sess, rs); err != nil {
		c.record(pathway, models.OperationSubmit, err)
		return nil, err
	}

	c.record(pathway, models.OperationSubmit, nil)
	return rs, nil
}

// Cards renders a result set with the controller's catalog.
func (c *Controller) Cards(rs *results.ResultSet) []results.Card {
	if rs == nil {
		return nil
	}
	return rs.Cards(c.catalog)
}

// Save forwards the recommendation behind h to the backend.
func (c *Controller) Save(ctx context.Context, sess results.Session, h results.Handle) error {
	rs, rec, err := c.resolve(sess, h)
	if err != nil {
		c.record(pathwayOf(rs), models.OperationSave, err)
		return err
	}

	err = c.backend.SaveRecommendation(ctx, rs.Pathway, *rec)
	c.record(rs.Pathway, models.OperationSave, err)
	return err
}

// ShowDetails opens the modal on h, replacing any open modal.
func (c *Controller) ShowDetails(sess results.Session, h results.Handle) (results.Details, error) {
	_, rec, err := c.resolve(sess, h)
	if err != nil {
		return results.Details{}, err
	}

	if err := results.StoreModal(sess, results.Open(h)); err != nil {
		return results.Details{}, err
	}
	return results.BuildDetails(h, rec), nil
}

// CloseModal closes the modal. It reports whether one was open.
func (c *Controller) CloseModal(sess results.Session) (bool, error) {
	modal, err := results.LoadModal(sess)
	if err != nil {
		return false, err
	}
	closed, changed := modal.Close()
	return changed, results.StoreModal(sess, closed)
}

// Current returns the session's result set (nil when there is none) and the
// details of the open modal (nil when closed). A modal whose handle no longer
// resolves is not shown. Current never writes the session.
func (c *Controller) Current(sess results.Session) (*results.ResultSet, *results.Details) {
	rs, err := results.Load(sess)
	if err != nil {
		if !errors.Is(err, results.ErrNoResultSet) {
			slog.Warn("discarding unreadable session cache", "error", err)
		}
		return nil, nil
	}

	modal, err := results.LoadModal(sess)
	if err != nil {
		slog.Warn("reading modal state failed", "error", err)
		return rs, nil
	}
	if !modal.IsOpen() {
		return rs, nil
	}

	rec, err := rs.Resolve(modal.Handle())
	if err != nil {
		return rs, nil
	}
	d := results.BuildDetails(modal.Handle(), rec)
	return rs, &d
}

func (c *Controller) resolve(sess results.Session, h results.Handle) (*results.ResultSet, *models.Recommendation, error) {
	rs, err := results.Load(sess)
	if errors.Is(err, results.ErrNoResultSet) || errors.Is(err, results.ErrCorruptCache) {
		return nil, nil, fmt.Errorf("%w: %w", results.ErrStaleReference, err)
	}
	if err != nil {
		return nil, nil, err
	}
	rec, err := rs.Resolve(h)
	if err != nil {
		return rs, nil, err
	}
	return rs, rec, nil
}

func (c *Controller) record(pathway, operation string, err error) {
	outcome := Outcome(err)
	switch {
	case upstream.IsTransportError(err):
		slog.Error("backend call failed", "pathway", pathway, "operation", operation, "error", err)
	case err != nil:
		slog.Warn("pathway operation failed", "pathway", pathway, "operation", operation, "outcome", outcome, "error", err)
	}

	if _, ok := c.catalog.Lookup(pathway); !ok {
		pathway = OtherPathway
	}
	c.recordEvent(pathway, operation, outcome)
}

// Outcome classifies an operation error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return models.OutcomeSuccess
	case errors.Is(err, upstream.ErrRejected):
		return models.OutcomeRejected
	case errors.Is(err, results.ErrStaleReference):
		return models.OutcomeStale
	default:
		return models.OutcomeFailed
	}
}

func pathwayOf(rs *results.ResultSet) string {
	if rs == nil {
		return OtherPathway
	}
	return rs.Pathway
}

// User-facing messages. Causes are logged, never shown.
const (
	MsgSubmitRejected = "Error generating recommendations"
	MsgSubmitFailed   = "An error occurred"
	MsgSaved          = "✅ Recommendation saved successfully!"
	MsgSaveRejected   = "❌ Error saving recommendation"
	MsgSaveFailed     = "❌ An error occurred"
	MsgStale          = "This recommendation is no longer available. Please submit the questionnaire again."
)

// SubmitMessage returns the message shown for a failed submission. Rejected
// input reads like a backend refusal.
func SubmitMessage(err error) string {
	if errors.Is(err, upstream.ErrRejected) || errors.Is(err, ErrInvalidPathway) || errors.Is(err, ErrInvalidResponses) {
		return MsgSubmitRejected
	}
	return MsgSubmitFailed
}

// SaveMessage returns the message shown after a save attempt.
func SaveMessage(err error) string {
	switch {
	case err == nil:
		return MsgSaved
	case errors.Is(err, results.ErrStaleReference):
		return MsgStale
	case errors.Is(err, upstream.ErrRejected):
		return MsgSaveRejected
	default:
		return MsgSaveFailed
	}
}
