package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common/security"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AdminService struct {
	adminRepo repository.AdminRepository
	// exposeHashes keeps /admin/all returning bcrypt hashes, as the legacy
	// API did. Default is redaction.
	exposeHashes bool
}

func NewAdminService(adminRepo repository.AdminRepository, exposeHashes bool) *AdminService {
	return &AdminService{adminRepo: adminRepo, exposeHashes: exposeHashes}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdatePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

func (s *AdminService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Admin not found")
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, admin.HashedPassword) {
		return nil, common.NewError(common.ErrUnauthorized, "Invalid password")
	}

	token, err := security.GenerateToken(admin.Username, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}

func (s *AdminService) Create(ctx context.Context, req CreateAdminRequest) (*model.Admin, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.NewError(common.ErrBadRequest, "Username and password are required")
	}

	_, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, common.NewError(common.ErrConflict, "Admin already exists")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleAdmin
	}
	admin := &model.Admin{
		ID:             uuid.NewString(),
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "Admin already exists")
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	created := admin.Redacted()
	return &created, nil
}

func (s *AdminService) ListAll(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	if !s.exposeHashes {
		for i := range admins {
			admins[i] = admins[i].Redacted()
		}
	}
	return admins, nil
}

func (s *AdminService) DeleteByID(ctx context.Context, id string) (*DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewError(common.ErrBadRequest, "Invalid admin ID")
	}
	deleted, err := s.adminRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete admin: %w", err)
	}
	return &DeleteResult{DeletedCount: deleted}, nil
}

func (s *AdminService) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (*MessageResponse, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Admin not found")
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !security.CheckPasswordHash(req.OldPassword, admin.HashedPassword) {
		return nil, common.NewError(common.ErrUnauthorized, "Incorrect old password")
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.adminRepo.UpdatePassword(ctx, req.Username, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	return &MessageResponse{Message: "Password updated successfully"}, nil
}

// ResetPassword replaces the password given only a username. The route is
// deliberately unauthenticated for compatibility with existing clients, so
// every use is logged.
func (s *AdminService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	if _, err := s.adminRepo.FindByUsername(ctx, req.Username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Admin not found")
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.adminRepo.UpdatePassword(ctx, req.Username, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	logrus.Warnf("unauthenticated password reset performed for admin %q", req.Username)
	return &MessageResponse{Message: "Password reset successfully"}, nil
}
