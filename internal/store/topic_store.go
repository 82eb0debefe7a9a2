package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pautaaberta/pauta/internal/model"
)

// TopicStore handles database operations for axes and topics.
type TopicStore struct {
	db *sql.DB
}

// NewTopicStore creates a new TopicStore.
func NewTopicStore(db *sql.DB) *TopicStore {
	return &TopicStore{db: db}
}

// GetByID retrieves a topic by its id.
func (s *TopicStore) GetByID(ctx context.Context, id int64) (*model.Topic, error) {
	query := `
		SELECT id, axis_id, name, created_at, updated_at
		FROM topics
		WHERE id = $1
	`

	var t model.Topic
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.AxisID,
		&t.Name,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic %d: %w", id, err)
	}

	return &t, nil
}

// GetAll retrieves all topics ordered by axis then name.
func (s *TopicStore) GetAll(ctx context.Context) ([]model.Topic, error) {
	query := `
		SELECT id, axis_id, name, created_at, updated_at
		FROM topics
		ORDER BY axis_id, name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		err := rows.Scan(&t.ID, &t.AxisID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}

// GetAllWithPropositions retrieves only topics that own at least one
// proposition, the population selection passes operate on.
func (s *TopicStore) GetAllWithPropositions(ctx context.Context) ([]model.Topic, error) {
	query := `
		SELECT DISTINCT t.id, t.axis_id, t.name, t.created_at, t.updated_at
		FROM topics t
		INNER JOIN propositions p ON p.topic_id = t.id
		ORDER BY t.id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get topics with propositions: %w", err)
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		err := rows.Scan(&t.ID, &t.AxisID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}

// Create inserts a new topic.
func (s *TopicStore) Create(ctx context.Context, t *model.Topic) error {
	query := `
		INSERT INTO topics (axis_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, t.AxisID, t.Name).Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create topic %q: %w", t.Name, err)
	}

	return nil
}

// Delete removes a topic; its propositions go with it via the FK cascade.
func (s *TopicStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic %d: %w", id, err)
	}
	return nil
}

// GetAxes retrieves all axes ordered by id.
func (s *TopicStore) GetAxes(ctx context.Context) ([]model.Axis, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM axes
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get axes: %w", err)
	}
	defer rows.Close()

	var axes []model.Axis
	for rows.Next() {
		var a model.Axis
		err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan axis: %w", err)
		}
		axes = append(axes, a)
	}

	return axes, rows.Err()
}

// UpsertAxis inserts an axis or updates its name, keyed by the curated id.
func (s *TopicStore) UpsertAxis(ctx context.Context, a *model.Axis) error {
	query := `
		INSERT INTO axes (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, a.ID, a.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert axis %d: %w", a.ID, err)
	}

	return nil
}
