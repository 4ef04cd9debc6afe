package repository

import (
	"context"

	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
)

// AppStatsSpec is a specification over AppStats rows.
type AppStatsSpec = query.Specification[model.AppStats]

// AppStatsRepository stores AppStats rows.
type AppStatsRepository interface {
	// Create inserts s and assigns its ID from the shared sequence.
	Create(ctx context.Context, s *model.AppStats) error
	// Update overwrites every column of an existing row.
	Update(ctx context.Context, s *model.AppStats) error
	// PartialUpdate overwrites only the non-nil fields and returns the stored row.
	PartialUpdate(ctx context.Context, s *model.AppStats) (*model.AppStats, error)
	// FindByID loads a row by ID.
	FindByID(ctx context.Context, id int64) (*model.AppStats, error)
	// ExistsByID reports whether a row with id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID removes a row; a missing row is not an error.
	DeleteByID(ctx context.Context, id int64) error
	// FindAll returns the rows matching spec in page order.
	FindAll(ctx context.Context, spec AppStatsSpec, page query.Pageable) ([]model.AppStats, error)
	// FindPage returns one page of matching rows plus the total match count.
	FindPage(ctx context.Context, spec AppStatsSpec, page query.Pageable) ([]model.AppStats, int64, error)
	// Count returns the number of rows matching spec.
	Count(ctx context.Context, spec AppStatsSpec) (int64, error)
	// FindOneByUsedTenantIDIgnoreCase looks a row up by tenant, ignoring case.
	FindOneByUsedTenantIDIgnoreCase(ctx context.Context, tenant string) (*model.AppStats, error)
}
