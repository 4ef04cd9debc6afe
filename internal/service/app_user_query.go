package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/criteria"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
)

// AppUserQueryService runs criteria-driven reads over AppUser.
type AppUserQueryService interface {
	FindByCriteria(ctx context.Context, c *criteria.AppUserCriteria, page query.Pageable, eager bool) ([]model.AppUser, error)
	FindPageByCriteria(ctx context.Context, c *criteria.AppUserCriteria, page query.Pageable, eager bool) ([]model.AppUser, int64, error)
	CountByCriteria(ctx context.Context, c *criteria.AppUserCriteria) (int64, error)
}

type AppUserQueryServiceImpl struct {
	repo repository.AppUserRepository
	log  *zap.Logger
}

// NewAppUserQueryService constructs AppUserQueryService.
func NewAppUserQueryService(repo repository.AppUserRepository, log *zap.Logger) *AppUserQueryServiceImpl {
	return &AppUserQueryServiceImpl{repo: repo, log: log}
}

func (s *AppUserQueryServiceImpl) FindByCriteria(
	ctx context.Context, c *criteria.AppUserCriteria, page query.Pageable, eager bool,
) ([]model.AppUser, error) {
	s.log.Debug("find by criteria", zap.Stringer("criteria", c), zap.Bool("eager", eager))
	return s.repo.FindAll(ctx, appUserSpecification(c), page, eager)
}

func (s *AppUserQueryServiceImpl) FindPageByCriteria(
	ctx context.Context, c *criteria.AppUserCriteria, page query.Pageable, eager bool,
) ([]model.AppUser, int64, error) {
	s.log.Debug("find page by criteria", zap.Stringer("criteria", c), zap.Int("page", page.Page), zap.Int("size", page.Size))
	return s.repo.FindPage(ctx, appUserSpecification(c), page, eager)
}

func (s *AppUserQueryServiceImpl) CountByCriteria(ctx context.Context, c *criteria.AppUserCriteria) (int64, error) {
	s.log.Debug("count by criteria", zap.Stringer("criteria", c))
	return s.repo.Count(ctx, appUserSpecification(c))
}

// appUserSpecification converts c into a specification. The internalUserId
// filter compares against the LEFT joined jhi_user row.
func appUserSpecification(c *criteria.AppUserCriteria) repository.AppUserSpec {
	spec := query.Where[model.AppUser]()
	if c == nil {
		return spec
	}
	if c.Distinct != nil {
		spec = spec.Distinct(*c.Distinct)
	}
	if c.ID != nil {
		spec = spec.And(query.BuildRange(c.ID, repository.AppUserID)...)
	}
	if c.TenantID != nil {
		spec = spec.And(query.BuildString(c.TenantID, repository.AppUserTenantID)...)
	}
	if c.InternalUserID != nil {
		spec = spec.Join(repository.InternalUserJoin).
			And(query.BuildRange(c.InternalUserID, repository.InternalUserID)...)
	}
	return spec
}
