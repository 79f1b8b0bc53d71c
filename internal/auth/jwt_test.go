package auth_test

import (
	"testing"

	"github.com/rfc-dinner/api/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := auth.GenerateToken(secret, "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := auth.ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if claims.Username != "admin" {
		t.Errorf("username: got %v, want admin", claims.Username)
	}
	if claims.Role != auth.RoleAdmin {
		t.Errorf("role: got %v, want %v", claims.Role, auth.RoleAdmin)
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("secret-a", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = auth.ValidateToken("secret-b", token)
	if err == nil {
		t.Fatal("expected error validating with wrong secret")
	}
}

func TestValidateTokenWithInvalidString(t *testing.T) {
	_, err := auth.ValidateToken("secret", "not-a-jwt")
	if err == nil {
		t.Fatal("expected error validating invalid token string")
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	secret := "test-secret"

	refresh, err := auth.GenerateRefreshToken(secret, "admin")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	// A refresh token carries no role claim, so it must not pass
	// access-token validation as an admin.
	claims, err := auth.ValidateToken(secret, refresh)
	if err == nil && claims.Role == auth.RoleAdmin {
		t.Fatal("refresh token validated as an admin access token")
	}
}
