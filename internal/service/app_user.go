package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
)

// AppUserService manages AppUser rows.
type AppUserService interface {
	// Save links a new AppUser to an existing internal user and shares its id.
	Save(ctx context.Context, u *model.AppUser) (*model.AppUser, error)
	Update(ctx context.Context, id int64, u *model.AppUser) (*model.AppUser, error)
	// PartialUpdate changes tenantId when set.
	PartialUpdate(ctx context.Context, id int64, u *model.AppUser) (*model.AppUser, error)
	// FindOne loads a row with its internal user.
	FindOne(ctx context.Context, id int64) (*model.AppUser, error)
	// FindAllWithEagerRelationships lists rows with their internal users.
	FindAllWithEagerRelationships(ctx context.Context, page query.Pageable) ([]model.AppUser, int64, error)
	Delete(ctx context.Context, id int64) error
}

type AppUserServiceImpl struct {
	repo  repository.AppUserRepository
	users repository.UserRepository
	log   *zap.Logger
}

// NewAppUserService constructs AppUserService.
func NewAppUserService(repo repository.AppUserRepository, users repository.UserRepository, log *zap.Logger) *AppUserServiceImpl {
	return &AppUserServiceImpl{repo: repo, users: users, log: log}
}

// Save resolves the internal user and stores u under its id.
func (s *AppUserServiceImpl) Save(ctx context.Context, u *model.AppUser) (*model.AppUser, error) {
	s.log.Debug("request to save app user", zap.Int64("internal_user_id", u.InternalUserID()))
	if u.ID != 0 {
		return nil, errs.ErrIDExists
	}
	if err := u.CheckMapsID(); err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, u.InternalUserID())
	if err != nil {
		return nil, fmt.Errorf("internal user %d: %w", u.InternalUserID(), err)
	}
	u.InternalUser = owner
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update rewrites tenantId of an existing row. A body internalUser, when
// present, must be the user the row is already linked to.
func (s *AppUserServiceImpl) Update(ctx context.Context, id int64, u *model.AppUser) (*model.AppUser, error) {
	s.log.Debug("request to update app user", zap.Int64("id", id))
	if err := checkIDs(id, u.ID); err != nil {
		return nil, err
	}
	if u.InternalUser != nil {
		if err := u.CheckMapsID(); err != nil {
			return nil, err
		}
	}
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrIDNotFound
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, updateTarget(err)
	}
	return s.repo.FindByID(ctx, id)
}

// PartialUpdate leaves the stored tenantId alone when u.TenantID is nil.
func (s *AppUserServiceImpl) PartialUpdate(ctx context.Context, id int64, u *model.AppUser) (*model.AppUser, error) {
	s.log.Debug("request to partially update app user", zap.Int64("id", id))
	if err := checkIDs(id, u.ID); err != nil {
		return nil, err
	}
	out, err := s.repo.PartialUpdate(ctx, u)
	if err != nil {
		return nil, updateTarget(err)
	}
	return out, nil
}

// FindOne loads a row with its internal user.
func (s *AppUserServiceImpl) FindOne(ctx context.Context, id int64) (*model.AppUser, error) {
	s.log.Debug("request to get app user", zap.Int64("id", id))
	return s.repo.FindByID(ctx, id)
}

// FindAllWithEagerRelationships returns one page of all rows with users resolved.
func (s *AppUserServiceImpl) FindAllWithEagerRelationships(ctx context.Context, page query.Pageable) ([]model.AppUser, int64, error) {
	return s.repo.FindPage(ctx, query.Where[model.AppUser](), page, true)
}

// Delete removes a row by id.
func (s *AppUserServiceImpl) Delete(ctx context.Context, id int64) error {
	s.log.Debug("request to delete app user", zap.Int64("id", id))
	return s.repo.DeleteByID(ctx, id)
}
