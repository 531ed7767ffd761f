package auth

import (
	"context"
	"testing"

	"tuldokpos/internal/core/apperror"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = HashPassword(password)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
	}
	return NewService(hash, NewJWTService(DefaultJWTConfig("test-secret")))
}

func TestLogin_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, "hunter2")

	resp, err := svc.Login(ctx, Credentials{Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	operator, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if operator != OperatorName {
		t.Errorf("operator = %q, want %q", operator, OperatorName)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, "hunter2")

	_, err := svc.Login(context.Background(), Credentials{Password: "guess"})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestLogin_Disabled(t *testing.T) {
	svc := newTestService(t, "")

	if svc.Enabled() {
		t.Fatal("service must be disabled without a password hash")
	}
	if _, err := svc.Login(context.Background(), Credentials{Password: "anything"}); err == nil {
		t.Fatal("expected error when auth is not configured")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t, "hunter2")

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	token, _, err := issuer.GenerateAccessToken(OperatorName)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc := NewService("irrelevant", NewJWTService(DefaultJWTConfig("secret-b")))
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}
