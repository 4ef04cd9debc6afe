// Package service contains application services for tenant statistics and
// application users.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
)

// AppStatsService manages AppStats rows.
type AppStatsService interface {
	// Save creates a new row. The tenant must not be in use, ignoring case.
	Save(ctx context.Context, s *model.AppStats) (*model.AppStats, error)
	// Update replaces the row identified by id.
	Update(ctx context.Context, id int64, s *model.AppStats) (*model.AppStats, error)
	// PartialUpdate changes only the fields set in s.
	PartialUpdate(ctx context.Context, id int64, s *model.AppStats) (*model.AppStats, error)
	// FindOne loads a row by id.
	FindOne(ctx context.Context, id int64) (*model.AppStats, error)
	// Delete removes a row by id.
	Delete(ctx context.Context, id int64) error
}

type AppStatsServiceImpl struct {
	repo repository.AppStatsRepository
	log  *zap.Logger
}

// NewAppStatsService constructs AppStatsService.
func NewAppStatsService(repo repository.AppStatsRepository, log *zap.Logger) *AppStatsServiceImpl {
	return &AppStatsServiceImpl{repo: repo, log: log}
}

// Save validates s, rejects a preset id and checks tenant uniqueness.
func (s *AppStatsServiceImpl) Save(ctx context.Context, st *model.AppStats) (*model.AppStats, error) {
	s.log.Debug("request to save app stats", zap.Stringp("used_tenant_id", st.UsedTenantID))
	if st.ID != 0 {
		return nil, errs.ErrIDExists
	}
	if err := model.ValidateUsedTenantID(st.UsedTenantID); err != nil {
		return nil, err
	}
	if err := s.ensureTenantFree(ctx, st.UsedTenantID, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update requires the body id to match id and the row to exist.
func (s *AppStatsServiceImpl) Update(ctx context.Context, id int64, st *model.AppStats) (*model.AppStats, error) {
	s.log.Debug("request to update app stats", zap.Int64("id", id))
	if err := checkIDs(id, st.ID); err != nil {
		return nil, err
	}
	if err := model.ValidateUsedTenantID(st.UsedTenantID); err != nil {
		return nil, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureTenantFree(ctx, st.UsedTenantID, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, updateTarget(err)
	}
	return st, nil
}

// PartialUpdate keeps stored values for nil fields of st.
func (s *AppStatsServiceImpl) PartialUpdate(ctx context.Context, id int64, st *model.AppStats) (*model.AppStats, error) {
	s.log.Debug("request to partially update app stats", zap.Int64("id", id))
	if err := checkIDs(id, st.ID); err != nil {
		return nil, err
	}
	if err := model.ValidateUsedTenantID(st.UsedTenantID); err != nil {
		return nil, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureTenantFree(ctx, st.UsedTenantID, id); err != nil {
		return nil, err
	}
	out, err := s.repo.PartialUpdate(ctx, st)
	if err != nil {
		return nil, updateTarget(err)
	}
	return out, nil
}

// FindOne loads a row by id.
func (s *AppStatsServiceImpl) FindOne(ctx context.Context, id int64) (*model.AppStats, error) {
	s.log.Debug("request to get app stats", zap.Int64("id", id))
	return s.repo.FindByID(ctx, id)
}

// Delete removes a row by id; deleting a missing row succeeds.
func (s *AppStatsServiceImpl) Delete(ctx context.Context, id int64) error {
	s.log.Debug("request to delete app stats", zap.Int64("id", id))
	return s.repo.DeleteByID(ctx, id)
}

func (s *AppStatsServiceImpl) ensureExists(ctx context.Context, id int64) error {
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrIDNotFound
	}
	return nil
}

// ensureTenantFree fails when another row (id != self) already uses tenant.
func (s *AppStatsServiceImpl) ensureTenantFree(ctx context.Context, tenant *string, self int64) error {
	if tenant == nil {
		return nil
	}
	found, err := s.repo.FindOneByUsedTenantIDIgnoreCase(ctx, *tenant)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return nil
	case err != nil:
		return err
	case found.ID != self:
		return errs.ErrTenantAlreadyUsed
	}
	return nil
}

// updateTarget reports a row that vanished under an update as ErrIDNotFound.
func updateTarget(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("%w: %v", errs.ErrIDNotFound, err)
	}
	return err
}

// checkIDs validates the body id against the path id of an update.
func checkIDs(pathID, bodyID int64) error {
	if bodyID == 0 {
		return errs.ErrIDNull
	}
	if bodyID != pathID {
		return errs.ErrIDInvalid
	}
	return nil
}
