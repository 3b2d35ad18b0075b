package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	sessionID := uuid.New().String()

	token, err := GenerateToken(sessionID, RoleGuest)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	subject, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if subject != sessionID {
		t.Fatalf("Expected subject %s, got %s", sessionID, subject)
	}
	if role != RoleGuest {
		t.Fatalf("Expected role %s, got %s", RoleGuest, role)
	}
}

func TestGenerateTokenErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", RoleStaff); err == nil {
		t.Fatalf("expected error for empty subject")
	}
	if _, err := GenerateToken("abc", "ADMIN"); err == nil {
		t.Fatalf("expected error for unknown role")
	}

	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateToken("abc", RoleStaff); err == nil {
		t.Fatalf("expected error without secret")
	}
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("abc", RoleStaff)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, _, err := ValidateToken(token); err == nil {
		t.Fatalf("token signed with another secret was accepted")
	}
}
