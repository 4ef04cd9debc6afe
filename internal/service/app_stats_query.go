package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/criteria"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
)

// AppStatsQueryService runs criteria-driven reads over AppStats.
type AppStatsQueryService interface {
	// FindByCriteria returns every matching row in page order.
	FindByCriteria(ctx context.Context, c *criteria.AppStatsCriteria, page query.Pageable) ([]model.AppStats, error)
	// FindPageByCriteria returns one page plus the total number of matches.
	FindPageByCriteria(ctx context.Context, c *criteria.AppStatsCriteria, page query.Pageable) ([]model.AppStats, int64, error)
	// CountByCriteria returns the number of matching rows.
	CountByCriteria(ctx context.Context, c *criteria.AppStatsCriteria) (int64, error)
}

type AppStatsQueryServiceImpl struct {
	repo repository.AppStatsRepository
	log  *zap.Logger
}

// NewAppStatsQueryService constructs AppStatsQueryService.
func NewAppStatsQueryService(repo repository.AppStatsRepository, log *zap.Logger) *AppStatsQueryServiceImpl {
	return &AppStatsQueryServiceImpl{repo: repo, log: log}
}

func (s *AppStatsQueryServiceImpl) FindByCriteria(
	ctx context.Context, c *criteria.AppStatsCriteria, page query.Pageable,
) ([]model.AppStats, error) {
	s.log.Debug("find by criteria", zap.Stringer("criteria", c))
	return s.repo.FindAll(ctx, appStatsSpecification(c), page)
}

func (s *AppStatsQueryServiceImpl) FindPageByCriteria(
	ctx context.Context, c *criteria.AppStatsCriteria, page query.Pageable,
) ([]model.AppStats, int64, error) {
	s.log.Debug("find page by criteria", zap.Stringer("criteria", c), zap.Int("page", page.Page), zap.Int("size", page.Size))
	return s.repo.FindPage(ctx, appStatsSpecification(c), page)
}

func (s *AppStatsQueryServiceImpl) CountByCriteria(ctx context.Context, c *criteria.AppStatsCriteria) (int64, error) {
	s.log.Debug("count by criteria", zap.Stringer("criteria", c))
	return s.repo.Count(ctx, appStatsSpecification(c))
}

// appStatsSpecification converts c into a specification. Distinct goes first:
// it resets whatever was accumulated before it.
func appStatsSpecification(c *criteria.AppStatsCriteria) repository.AppStatsSpec {
	spec := query.Where[model.AppStats]()
	if c == nil {
		return spec
	}
	if c.Distinct != nil {
		spec = spec.Distinct(*c.Distinct)
	}
	if c.ID != nil {
		spec = spec.And(query.BuildRange(c.ID, repository.AppStatsID)...)
	}
	if c.UsedTenantID != nil {
		spec = spec.And(query.BuildString(c.UsedTenantID, repository.AppStatsUsedTenantID)...)
	}
	return spec
}
