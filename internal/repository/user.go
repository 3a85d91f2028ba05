package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/gen/ent"
	"github.com/origen-app/origen-server/gen/ent/user"
	"github.com/origen-app/origen-server/internal/common"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*ent.User, error)
	GetByEmail(ctx context.Context, email string) (*ent.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ent.User, error)
}

type userRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewUserRepository(client *ent.Client, logger *slog.Logger) UserRepository {
	return &userRepository{
		client: client,
		logger: logger,
	}
}

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*ent.User, error) {
	u, err := r.client.User.Create().
		SetName(name).
		SetEmail(email).
		SetPasswordHash(passwordHash).
		Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, common.ConflictError("User with this email already exists")
		}
		r.logger.Error("failed to create user", "email", email, "error", err)
		return nil, common.DatabaseError("create user", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*ent.User, error) {
	u, err := r.client.User.Query().Where(user.Email(email)).Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, common.NotFoundError("user")
		}
		r.logger.Error("failed to get user by email", "error", err)
		return nil, common.DatabaseError("get user", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*ent.User, error) {
	u, err := r.client.User.Query().Where(user.ID(id)).Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, common.NotFoundError("user")
		}
		r.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, common.DatabaseError("get user", err)
	}
	return u, nil
}
