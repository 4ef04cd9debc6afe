package repository

import (
	"context"

	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
)

// AppUserSpec is a specification over AppUser rows.
type AppUserSpec = query.Specification[model.AppUser]

// AppUserRepository stores AppUser rows. Eager reads resolve InternalUser
// through the jhi_user table; lazy reads only carry its ID.
type AppUserRepository interface {
	// Create inserts u under the ID of its internal user.
	Create(ctx context.Context, u *model.AppUser) error
	Update(ctx context.Context, u *model.AppUser) error
	// PartialUpdate overwrites tenant_id when set and returns the stored row.
	PartialUpdate(ctx context.Context, u *model.AppUser) (*model.AppUser, error)
	// FindByID loads a row with its internal user.
	FindByID(ctx context.Context, id int64) (*model.AppUser, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context, spec AppUserSpec, page query.Pageable, eager bool) ([]model.AppUser, error)
	FindPage(ctx context.Context, spec AppUserSpec, page query.Pageable, eager bool) ([]model.AppUser, int64, error)
	Count(ctx context.Context, spec AppUserSpec) (int64, error)
}
