package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
)

// QuestionFilter narrows a question listing. Topics matches any (set
// intersection non-empty); VehicleType is a case-insensitive substring
// match. Both combine with AND.
type QuestionFilter struct {
	Topics      []string
	VehicleType string
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	DeleteByID(ctx context.Context, id string) (int64, error)
	// DeleteByTopic removes every question whose topics set contains the
	// topic name and returns how many were removed.
	DeleteByTopic(ctx context.Context, topicName string) (int64, error)
	List(ctx context.Context, filter QuestionFilter) ([]model.Question, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	options, err := encodeStrings(q.Options)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	topics, err := encodeStrings(q.Topics)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	query := `INSERT INTO questions (id, question, options, answer, topics, vehicle_type, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		q.ID, q.Question, options, q.Answer, topics, q.VehicleType, q.ImageURL,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	query := `SELECT id, question, options, answer, topics, vehicle_type, image_url, created_at, updated_at
	          FROM questions WHERE id = $1`
	q := &model.Question{}
	var options, topics []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.Question, &options, &q.Answer, &topics, &q.VehicleType, &q.ImageURL, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	if err := decodeQuestionArrays(q, options, topics); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func decodeQuestionArrays(q *model.Question, options, topics []byte) error {
	if err := json.Unmarshal(options, &q.Options); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	if err := json.Unmarshal(topics, &q.Topics); err != nil {
		return fmt.Errorf("decode topics: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	options, err := encodeStrings(q.Options)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	topics, err := encodeStrings(q.Topics)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	query := `UPDATE questions
	          SET question = $1, options = $2, answer = $3, topics = $4,
	              vehicle_type = $5, image_url = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		q.Question, options, q.Answer, topics, q.VehicleType, q.ImageURL, q.ID,
	)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("pgQuestionRepository.DeleteByID: %w", err)
	}
	return res.RowsAffected()
}

func (r *pgQuestionRepository) DeleteByTopic(ctx context.Context, topicName string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE topics ? $1`, topicName)
	if err != nil {
		return 0, fmt.Errorf("pgQuestionRepository.DeleteByTopic: %w", err)
	}
	return res.RowsAffected()
}

// List assembles the filter conditions dynamically, one numbered argument
// per active filter.
func (r *pgQuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	var query strings.Builder
	query.WriteString(`SELECT id, question, options, answer, topics, vehicle_type, image_url, created_at, updated_at
	                   FROM questions`)

	var conditions []string
	var args []any

	if len(filter.Topics) > 0 {
		args = append(args, strings.Join(filter.Topics, ","))
		conditions = append(conditions, `EXISTS (
		    SELECT 1 FROM jsonb_array_elements_text(topics) t
		    WHERE t = ANY(string_to_array($`+strconv.Itoa(len(args))+`, ','))
		)`)
	}
	if filter.VehicleType != "" {
		args = append(args, filter.VehicleType)
		conditions = append(conditions, `vehicle_type ILIKE '%' || $`+strconv.Itoa(len(args))+` || '%'`)
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.List: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		var options, topics []byte
		if err := rows.Scan(&q.ID, &q.Question, &options, &q.Answer, &topics, &q.VehicleType, &q.ImageURL, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.List: %w", err)
		}
		if err := decodeQuestionArrays(&q, options, topics); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.List: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
