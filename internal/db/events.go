package db

import (
	"context"

	"pathways/internal/models"
)

// IncrementPathwayEvent upserts a pathway operation count by outcome.
func (d *DB) IncrementPathwayEvent(ctx context.Context, pathway, operation, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO pathway_events (pathway, operation, outcome, count, last_seen_at)
		VALUES ($1, $2, $3, 1, NOW())
		ON CONFLICT (pathway, operation, outcome) DO UPDATE
		SET count = pathway_events.count + 1, last_seen_at = NOW()
	`, pathway, operation, outcome)
	return err
}

// GetAllPathwayEvents returns all pathway event rows for metrics export.
func (d *DB) GetAllPathwayEvents(ctx context.Context) ([]models.PathwayEvent, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT pathway, operation, outcome, count, last_seen_at
		FROM pathway_events
		ORDER BY pathway, operation, outcome
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.PathwayEvent
	for rows.Next() {
		var e models.PathwayEvent
		if err := rows.Scan(&e.Pathway, &e.Operation, &e.Outcome, &e.Count, &e.LastSeenAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
