package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/internal/common"
)

func testService(ttl time.Duration) *Service {
	return NewService(common.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   ttl,
		BcryptCost: 4, // min cost keeps the test fast
	})
}

func TestPasswordRoundTrip(t *testing.T) {
	s := testService(time.Hour)
	hash, err := s.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in the clear")
	}
	if !s.CheckPassword("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if s.CheckPassword("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := testService(time.Hour)
	userID := uuid.New()

	token, expiresAt, err := s.IssueToken(userID, "a@b.co")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > time.Hour {
		t.Errorf("expiry %v not ~1h out", until)
	}

	got, err := s.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got != userID {
		t.Errorf("user id = %s, want %s", got, userID)
	}
}

func TestVerifyTokenRejections(t *testing.T) {
	s := testService(time.Hour)
	token, _, err := s.IssueToken(uuid.New(), "a@b.co")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
		svc   *Service
	}{
		{"garbage", "not.a.token", s},
		{"empty", "", s},
		{"wrong secret", token, NewService(common.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour, BcryptCost: 4})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.VerifyToken(tt.token); !errors.Is(err, common.ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	s := testService(-time.Minute)
	token, _, err := s.IssueToken(uuid.New(), "a@b.co")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := s.VerifyToken(token); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
