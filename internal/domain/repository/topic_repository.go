package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/jackc/pgx/v5/pgconn"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	FindByID(ctx context.Context, id string) (*model.Topic, error)
	FindByName(ctx context.Context, name string) (*model.Topic, error)
	Update(ctx context.Context, topic *model.Topic) error
	DeleteByID(ctx context.Context, id string) (int64, error)
	List(ctx context.Context) ([]model.Topic, error)
	// ListByVehicleType returns topics whose vehicle type set contains the
	// given name; foldCase relaxes the membership test to case-insensitive.
	ListByVehicleType(ctx context.Context, vehicleType string, foldCase bool) ([]model.Topic, error)
}

type pgTopicRepository struct {
	db *sql.DB
}

func NewPgTopicRepository(db *sql.DB) TopicRepository {
	return &pgTopicRepository{db: db}
}

// vehicle_types is a jsonb array of vehicle type names, mirroring the
// document shape the API exposes.
func encodeStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func (r *pgTopicRepository) Create(ctx context.Context, t *model.Topic) error {
	vts, err := encodeStrings(t.VehicleTypes)
	if err != nil {
		return fmt.Errorf("pgTopicRepository.Create: %w", err)
	}
	query := `INSERT INTO topics (id, topic, slug, vehicle_types)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, t.ID, t.Topic, t.Slug, vts).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("topic with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTopicRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTopicRepository) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	query := `SELECT id, topic, slug, vehicle_types, created_at, updated_at
	          FROM topics WHERE id = $1`
	return scanTopic(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgTopicRepository) FindByName(ctx context.Context, name string) (*model.Topic, error) {
	query := `SELECT id, topic, slug, vehicle_types, created_at, updated_at
	          FROM topics WHERE topic = $1`
	return scanTopic(r.db.QueryRowContext(ctx, query, name), "FindByName")
}

func scanTopic(row *sql.Row, op string) (*model.Topic, error) {
	t := &model.Topic{}
	var vts []byte
	err := row.Scan(&t.ID, &t.Topic, &t.Slug, &vts, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTopicRepository.%s: %w", op, err)
	}
	if err := json.Unmarshal(vts, &t.VehicleTypes); err != nil {
		return nil, fmt.Errorf("pgTopicRepository.%s: decode vehicle_types: %w", op, err)
	}
	return t, nil
}

func (r *pgTopicRepository) Update(ctx context.Context, t *model.Topic) error {
	vts, err := encodeStrings(t.VehicleTypes)
	if err != nil {
		return fmt.Errorf("pgTopicRepository.Update: %w", err)
	}
	query := `UPDATE topics SET topic = $1, slug = $2, vehicle_types = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4`
	_, err = r.db.ExecContext(ctx, query, t.Topic, t.Slug, vts, t.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("topic with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTopicRepository.Update: %w", err)
	}
	return nil
}

func (r *pgTopicRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("pgTopicRepository.DeleteByID: %w", err)
	}
	return res.RowsAffected()
}

func (r *pgTopicRepository) List(ctx context.Context) ([]model.Topic, error) {
	query := `SELECT id, topic, slug, vehicle_types, created_at, updated_at
	          FROM topics ORDER BY created_at`
	return r.queryTopics(ctx, query)
}

func (r *pgTopicRepository) ListByVehicleType(ctx context.Context, vehicleType string, foldCase bool) ([]model.Topic, error) {
	query := `SELECT id, topic, slug, vehicle_types, created_at, updated_at
	          FROM topics
	          WHERE vehicle_types ? $1
	          ORDER BY created_at`
	if foldCase {
		query = `SELECT id, topic, slug, vehicle_types, created_at, updated_at
		         FROM topics
		         WHERE EXISTS (
		             SELECT 1 FROM jsonb_array_elements_text(vehicle_types) v
		             WHERE LOWER(v) = LOWER($1)
		         )
		         ORDER BY created_at`
	}
	return r.queryTopics(ctx, query, vehicleType)
}

func (r *pgTopicRepository) queryTopics(ctx context.Context, query string, args ...any) ([]model.Topic, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgTopicRepository.queryTopics: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		var vts []byte
		if err := rows.Scan(&t.ID, &t.Topic, &t.Slug, &vts, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgTopicRepository.queryTopics: %w", err)
		}
		if err := json.Unmarshal(vts, &t.VehicleTypes); err != nil {
			return nil, fmt.Errorf("pgTopicRepository.queryTopics: decode vehicle_types: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}
