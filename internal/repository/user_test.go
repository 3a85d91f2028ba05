package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/internal/common"
)

func TestUserCreateAndLookup(t *testing.T) {
	client := testClient(t)
	repo := NewUserRepository(client, testLogger())
	ctx := context.Background()

	u, err := repo.Create(ctx, "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("id = %v, want %v", byEmail.ID, u.ID)
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "ada@example.com" {
		t.Errorf("email = %q", byID.Email)
	}
}

func TestUserDuplicateEmailConflicts(t *testing.T) {
	client := testClient(t)
	repo := NewUserRepository(client, testLogger())
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Ada", "dup@example.com", "hash"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, "Imposter", "dup@example.com", "hash2")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestUserNotFound(t *testing.T) {
	client := testClient(t)
	repo := NewUserRepository(client, testLogger())
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetByEmail err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetByID err = %v, want ErrNotFound", err)
	}
}
