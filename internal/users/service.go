// Package users implements account signup and login on top of the user
// repository and the auth service.
package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/origen-app/origen-server/internal/auth"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/repository"
	"github.com/origen-app/origen-server/internal/utils"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what both signup and login hand back to the client.
type Session struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type Service struct {
	repo   repository.UserRepository
	auth   *auth.Service
	logger *slog.Logger
}

func NewService(repo repository.UserRepository, authSvc *auth.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		auth:   authSvc,
		logger: logger,
	}
}

// Signup registers a new account and signs it in. A duplicate email
// surfaces as a conflict.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	v := common.NewValidator()
	v.MinLength("name", strings.TrimSpace(req.Name), 2)
	v.Email("email", req.Email)
	v.MinLength("password", req.Password, 8)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), strings.ToLower(req.Email), hash)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID)
	return s.session(utils.ToUser(u))
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same message.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.UnauthorizedError("Invalid email or password")
		}
		return nil, err
	}
	if !s.auth.CheckPassword(req.Password, u.PasswordHash) {
		return nil, common.UnauthorizedError("Invalid email or password")
	}
	s.logger.Info("user logged in", "user_id", u.ID)
	return s.session(utils.ToUser(u))
}

func (s *Service) session(user *entity.User) (*Session, error) {
	token, expiresAt, err := s.auth.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
