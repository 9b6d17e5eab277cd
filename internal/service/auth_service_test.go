package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"xflyve-service/internal/auth"
	"xflyve-service/internal/model"
)

func newAuthFixture(t *testing.T) (*AuthService, *mockDriverRepo) {
	t.Helper()
	driverRepo := newMockDriverRepo()
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(driverRepo, tokens), driverRepo
}

func TestSignup(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	driver, token, err := svc.Signup(ctx, SignupInput{
		Name:       "Dana",
		Email:      "  Dana@Example.com ",
		Password:   "secret123",
		DriverType: "local",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if driver.Email != "dana@example.com" {
		t.Errorf("email = %q, want lowercased trimmed", driver.Email)
	}
	if driver.Role != model.RoleDriver {
		t.Errorf("role = %q, want driver", driver.Role)
	}
	if driver.PasswordHash == "secret123" {
		t.Error("password stored in plain text")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	input := SignupInput{Name: "Dana", Email: "dana@example.com", Password: "secret123", DriverType: "local"}
	if _, _, err := svc.Signup(ctx, input); err != nil {
		t.Fatalf("first Signup: %v", err)
	}

	_, _, err := svc.Signup(ctx, input)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate email: err = %v, want ErrConflict", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input SignupInput
	}{
		{"missing name", SignupInput{Email: "a@b.com", Password: "secret123", DriverType: "local"}},
		{"missing email", SignupInput{Name: "A", Password: "secret123", DriverType: "local"}},
		{"short password", SignupInput{Name: "A", Email: "a@b.com", Password: "abc", DriverType: "local"}},
		{"bad driver type", SignupInput{Name: "A", Email: "a@b.com", Password: "secret123", DriverType: "regional"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Signup(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, SignupInput{Name: "Dana", Email: "dana@example.com", Password: "secret123", DriverType: "local"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	driver, token, err := svc.Login(ctx, "DANA@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if driver.Email != "dana@example.com" {
		t.Errorf("email = %q", driver.Email)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, SignupInput{Name: "Dana", Email: "dana@example.com", Password: "secret123", DriverType: "local"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// Unknown account and wrong password fail identically.
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "dana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
}
