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

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	UpdatePassword(ctx context.Context, username, hashedPassword string) (int64, error)
}

type pgAdminRepository struct {
	db *sql.DB
}

func NewPgAdminRepository(db *sql.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `INSERT INTO admins (id, username, hashed_password, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, admin.ID, admin.Username, admin.HashedPassword, admin.Role).
		Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("admin with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAdminRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAdminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `SELECT id, username, hashed_password, role, created_at, updated_at
	          FROM admins WHERE username = $1`
	admin := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.HashedPassword, &admin.Role, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByUsername: %w", err)
	}
	return admin, nil
}

func (r *pgAdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	query := `SELECT id, username, hashed_password, role, created_at, updated_at
	          FROM admins ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgAdminRepository.List: %w", err)
	}
	defer rows.Close()

	admins := []model.Admin{}
	for rows.Next() {
		var admin model.Admin
		if err := rows.Scan(&admin.ID, &admin.Username, &admin.HashedPassword, &admin.Role, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgAdminRepository.List: %w", err)
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *pgAdminRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("pgAdminRepository.DeleteByID: %w", err)
	}
	return res.RowsAffected()
}

func (r *pgAdminRepository) UpdatePassword(ctx context.Context, username, hashedPassword string) (int64, error) {
	query := `UPDATE admins SET hashed_password = $1, updated_at = CURRENT_TIMESTAMP
	          WHERE username = $2`
	res, err := r.db.ExecContext(ctx, query, hashedPassword, username)
	if err != nil {
		return 0, fmt.Errorf("pgAdminRepository.UpdatePassword: %w", err)
	}
	return res.RowsAffected()
}
