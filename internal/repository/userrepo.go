// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/kaizenmobile/tenant-registry/internal/model"
)

// UserRepository reads accounts owned by the identity side of the platform.
type UserRepository interface {
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
