package jwt

import (
	"errors"
	"testing"

	"fridgetrack/domain"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	token := service.GenerateTokenUser("user-123", domain.RoleUser)
	if token == "" {
		t.Fatal("expected a signed token")
	}

	userID, role, err := service.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("unexpected user id: %q", userID)
	}
	if role != domain.RoleUser {
		t.Fatalf("unexpected role: %q", role)
	}
}

func TestAdminRoleRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	token := service.GenerateTokenUser("admin", domain.RoleAdmin)
	_, role, err := service.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", role)
	}
}

func TestRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	token := service.GenerateTokenUser("user-123", domain.RoleUser)
	tampered := token + "x"

	if _, _, err := service.GetUserIDByToken(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRejectsTokenSignedWithDifferentSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	serviceA := NewJWTService()
	token := serviceA.GenerateTokenUser("user-123", domain.RoleUser)

	t.Setenv("JWT_SECRET", "secret-b")
	serviceB := NewJWTService()

	if _, _, err := serviceB.GetUserIDByToken(token); err == nil {
		t.Fatal("expected validation failure across secrets")
	}
}
