package jwt

import (
	"errors"
	"os"
	"testing"
	"time"
)

const testSecret = "test-session-secret"

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET_KEY", testSecret)

	code := m.Run()
	os.Exit(code)
}

func TestNewTokenService(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, err := NewTokenService()
		if err != nil {
			t.Fatalf("NewTokenService() returned error: %v", err)
		}
		if srv.tokenDuration != SessionTokenDuration {
			t.Fatalf("expected duration %v, got %v", SessionTokenDuration, srv.tokenDuration)
		}
	})

	t.Run("missing secret is fatal", func(t *testing.T) {
		_ = os.Unsetenv("JWT_SECRET_KEY")
		defer os.Setenv("JWT_SECRET_KEY", testSecret)

		_, err := NewTokenService()
		if !errors.Is(err, ErrMissingSecret) {
			t.Fatalf("expected ErrMissingSecret, got %v", err)
		}
	})
}

func TestGenerateToken(t *testing.T) {
	srv, err := NewTokenService()
	if err != nil {
		t.Fatalf("NewTokenService() returned error: %v", err)
	}

	token, err := srv.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}

func TestParseToken(t *testing.T) {
	srv, err := NewTokenService()
	if err != nil {
		t.Fatalf("NewTokenService() returned error: %v", err)
	}

	t.Run("round trip yields the same user id", func(t *testing.T) {
		token, err := srv.GenerateToken("user-123")
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}

		claims, err := srv.ParseToken(token)
		if err != nil {
			t.Fatalf("ParseToken returned error: %v", err)
		}
		if claims.Subject != "user-123" {
			t.Fatalf("expected subject user-123, got %q", claims.Subject)
		}
		if claims.UserID != "user-123" {
			t.Fatalf("expected userId user-123, got %q", claims.UserID)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := srv.ParseToken("")
		if !errors.Is(err, ErrTokenNotFound) {
			t.Fatalf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := srv.ParseToken("not.a.token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("corrupted signature", func(t *testing.T) {
		token, err := srv.GenerateToken("user-123")
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}

		// Flip the last signature character.
		last := token[len(token)-1]
		flipped := byte('A')
		if last == 'A' {
			flipped = 'B'
		}
		tampered := token[:len(token)-1] + string(flipped)

		_, err = srv.ParseToken(tampered)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &TokenService{
			secretKey:     srv.secretKey,
			tokenDuration: -time.Hour,
			parser:        srv.parser,
		}

		token, err := expired.GenerateToken("user-123")
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}

		_, err = srv.ParseToken(token)
		if !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("signed with a different secret", func(t *testing.T) {
		other := &TokenService{
			secretKey:     []byte("another-secret"),
			tokenDuration: SessionTokenDuration,
			parser:        srv.parser,
		}

		token, err := other.GenerateToken("user-123")
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}

		_, err = srv.ParseToken(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}
