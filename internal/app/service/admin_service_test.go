package service

import (
	"context"
	"errors"
	"testing"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common/security"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/google/uuid"
)

func seedAdmin(t *testing.T, repo *fakeAdminRepo, username, password string) *model.Admin {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	admin := &model.Admin{
		ID:             uuid.NewString(),
		Username:       username,
		HashedPassword: hash,
		Role:           model.RoleAdmin,
	}
	if err := repo.Create(context.Background(), admin); err != nil {
		t.Fatal(err)
	}
	return admin
}

func TestLogin(t *testing.T) {
	repo := &fakeAdminRepo{}
	seedAdmin(t, repo, "boss", "secret")
	svc := NewAdminService(repo, false)
	ctx := context.Background()

	t.Run("success issues token", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Username: "boss", Password: "secret"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a non-empty token")
		}
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret"})
		if !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
		if err.Error() != "Admin not found" {
			t.Errorf("message = %q, want %q", err.Error(), "Admin not found")
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "boss", Password: "nope"})
		if !errors.Is(err, common.ErrUnauthorized) {
			t.Fatalf("want ErrUnauthorized, got %v", err)
		}
		if err.Error() != "Invalid password" {
			t.Errorf("message = %q, want %q", err.Error(), "Invalid password")
		}
	})
}

func TestCreateAdmin(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAdminService(repo, false)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateAdminRequest{Username: "boss", Password: "secret", Role: "admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.HashedPassword != "" {
		t.Error("create response must not carry the password hash")
	}

	_, err = svc.Create(ctx, CreateAdminRequest{Username: "boss", Password: "other", Role: "admin"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	if err.Error() != "Admin already exists" {
		t.Errorf("message = %q, want %q", err.Error(), "Admin already exists")
	}

	_, err = svc.Create(ctx, CreateAdminRequest{Username: "", Password: ""})
	if !errors.Is(err, common.ErrBadRequest) {
		t.Fatalf("want ErrBadRequest, got %v", err)
	}
}

func TestListAllRedactsHashes(t *testing.T) {
	repo := &fakeAdminRepo{}
	seedAdmin(t, repo, "boss", "secret")
	ctx := context.Background()

	redacting := NewAdminService(repo, false)
	admins, err := redacting.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if admins[0].HashedPassword != "" {
		t.Error("hash should be redacted by default")
	}

	exposing := NewAdminService(repo, true)
	admins, err = exposing.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if admins[0].HashedPassword == "" {
		t.Error("hash should be exposed in compatibility mode")
	}
}

func TestDeleteAdminIsIdempotent(t *testing.T) {
	repo := &fakeAdminRepo{}
	admin := seedAdmin(t, repo, "boss", "secret")
	svc := NewAdminService(repo, false)
	ctx := context.Background()

	result, err := svc.DeleteByID(ctx, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", result.DeletedCount)
	}

	// Deleting again is a zero-effect success, not an error.
	result, err = svc.DeleteByID(ctx, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0", result.DeletedCount)
	}

	if _, err := svc.DeleteByID(ctx, "not-a-uuid"); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("want ErrBadRequest for malformed id, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo := &fakeAdminRepo{}
	seedAdmin(t, repo, "boss", "old-secret")
	svc := NewAdminService(repo, false)
	ctx := context.Background()

	_, err := svc.UpdatePassword(ctx, UpdatePasswordRequest{Username: "boss", OldPassword: "wrong", NewPassword: "new"})
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if err.Error() != "Incorrect old password" {
		t.Errorf("message = %q, want %q", err.Error(), "Incorrect old password")
	}

	if _, err := svc.UpdatePassword(ctx, UpdatePasswordRequest{Username: "boss", OldPassword: "old-secret", NewPassword: "new-secret"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Username: "boss", Password: "new-secret"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	repo := &fakeAdminRepo{}
	seedAdmin(t, repo, "boss", "old-secret")
	svc := NewAdminService(repo, false)
	ctx := context.Background()

	_, err := svc.ResetPassword(ctx, ResetPasswordRequest{Username: "ghost", NewPassword: "x"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if _, err := svc.ResetPassword(ctx, ResetPasswordRequest{Username: "boss", NewPassword: "reset-secret"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Username: "boss", Password: "reset-secret"}); err != nil {
		t.Errorf("login with reset password failed: %v", err)
	}
}
