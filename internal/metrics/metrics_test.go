package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"pathways/internal/models"
)

type fakeStore struct {
	events []models.PathwayEvent
	err    error
}

func (f *fakeStore) IncrementPathwayEvent(ctx context.Context, pathway, operation, outcome string) error {
	return nil
}

func (f *fakeStore) GetAllPathwayEvents(ctx context.Context) ([]models.PathwayEvent, error) {
	return f.events, f.err
}

func TestEventCollector(t *testing.T) {
	store := &fakeStore{events: []models.PathwayEvent{
		{Pathway: "career", Operation: models.OperationSubmit, Outcome: models.OutcomeSuccess, Count: 4},
		{Pathway: "tesda", Operation: models.OperationSave, Outcome: models.OutcomeFailed, Count: 1},
	}}

	expected := `
# HELP pathways_events_total Total backend operations by pathway and outcome
# TYPE pathways_events_total counter
pathways_events_total{operation="save",outcome="failed",pathway="tesda"} 1
pathways_events_total{operation="submit",outcome="success",pathway="career"} 4
`
	if err := testutil.CollectAndCompare(NewEventCollector(store), strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestEventCollector_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	if n := testutil.CollectAndCount(NewEventCollector(store)); n != 0 {
		t.Errorf("collected %d metrics on store error, want 0", n)
	}
}

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("submit", "rejected"))
	ObserveUpstream("submit", "rejected")
	after := testutil.ToFloat64(upstreamRequests.WithLabelValues("submit", "rejected"))

	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}
}

func TestSetUpstreamUp(t *testing.T) {
	SetUpstreamUp(true)
	if v := testutil.ToFloat64(upstreamUp); v != 1 {
		t.Errorf("gauge = %v, want 1", v)
	}
	SetUpstreamUp(false)
	if v := testutil.ToFloat64(upstreamUp); v != 0 {
		t.Errorf("gauge = %v, want 0", v)
	}
}

func TestRecordEvent_DisabledWithoutStore(t *testing.T) {
	// Init(nil) leaves the recorder unset; RecordEvent must not panic.
	Init(nil)
	RecordEvent("career", models.OperationSubmit, models.OutcomeSuccess)
}
