package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder for data transfer between layers.
// The password hash never leaves the repository layer.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
