package service

import (
	"errors"
	"testing"
	"time"

	"vidyasetu_backend/internal/config"
	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
	}
	return NewAuthService(repo, cfg), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     model.Student,
		IsActive: true,
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	token, err := svc.Login("asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := util.ParseJWT(token, "0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("token unparsable: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	first := &model.User{Name: "A", Email: "dup@example.com", Password: "secret123", IsActive: true}
	if err := svc.Register(first); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	second := &model.User{Name: "B", Email: "dup@example.com", Password: "other456", IsActive: true}
	if err := svc.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("got %v, want ErrEmailRegistered", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, repo := newAuthService(t)

	user := &model.User{Name: "Asha", Email: "asha@example.com", Password: "secret123", IsActive: true}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login("asha@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", err)
	}

	user.IsActive = false
	if err := repo.Update(user); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Login("asha@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("inactive account: got %v", err)
	}
}
