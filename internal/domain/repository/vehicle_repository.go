package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/jackc/pgx/v5/pgconn"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.VehicleType) error
	FindByID(ctx context.Context, id string) (*model.VehicleType, error)
	FindByName(ctx context.Context, name string) (*model.VehicleType, error)
	Update(ctx context.Context, vehicle *model.VehicleType) error
	DeleteByID(ctx context.Context, id string) (int64, error)
	List(ctx context.Context) ([]model.VehicleType, error)
}

type pgVehicleRepository struct {
	db *sql.DB
}

func NewPgVehicleRepository(db *sql.DB) VehicleRepository {
	return &pgVehicleRepository{db: db}
}

func (r *pgVehicleRepository) Create(ctx context.Context, v *model.VehicleType) error {
	query := `INSERT INTO vehicle_types (id, name, slug, image_url)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, v.ID, v.Name, v.Slug, v.ImageURL).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("vehicle type with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgVehicleRepository.Create: %w", err)
	}
	return nil
}

func (r *pgVehicleRepository) FindByID(ctx context.Context, id string) (*model.VehicleType, error) {
	query := `SELECT id, name, slug, image_url, created_at, updated_at
	          FROM vehicle_types WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgVehicleRepository) FindByName(ctx context.Context, name string) (*model.VehicleType, error) {
	query := `SELECT id, name, slug, image_url, created_at, updated_at
	          FROM vehicle_types WHERE name = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name), "FindByName")
}

func (r *pgVehicleRepository) scanOne(row *sql.Row, op string) (*model.VehicleType, error) {
	v := &model.VehicleType{}
	err := row.Scan(&v.ID, &v.Name, &v.Slug, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgVehicleRepository.%s: %w", op, err)
	}
	return v, nil
}

func (r *pgVehicleRepository) Update(ctx context.Context, v *model.VehicleType) error {
	query := `UPDATE vehicle_types SET name = $1, slug = $2, image_url = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, v.Name, v.Slug, v.ImageURL, v.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("vehicle type with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgVehicleRepository.Update: %w", err)
	}
	return nil
}

func (r *pgVehicleRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_types WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("pgVehicleRepository.DeleteByID: %w", err)
	}
	return res.RowsAffected()
}

func (r *pgVehicleRepository) List(ctx context.Context) ([]model.VehicleType, error) {
	query := `SELECT id, name, slug, image_url, created_at, updated_at
	          FROM vehicle_types ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgVehicleRepository.List: %w", err)
	}
	defer rows.Close()

	vehicles := []model.VehicleType{}
	for rows.Next() {
		var v model.VehicleType
		if err := rows.Scan(&v.ID, &v.Name, &v.Slug, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgVehicleRepository.List: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
