package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
)

var appStatsColumns = []string{
	repository.AppStatsID.String(),
	repository.AppStatsUsedTenantID.String(),
}

// AppStatsRepo implements AppStatsRepository using PostgreSQL.
type AppStatsRepo struct{ db *DB }

// NewAppStatsRepo constructs an app stats repository.
func NewAppStatsRepo(db *DB) *AppStatsRepo { return &AppStatsRepo{db: db} }

var _ repository.AppStatsRepository = (*AppStatsRepo)(nil)

// Create inserts a row with an id from sequence_generator.
func (r *AppStatsRepo) Create(ctx context.Context, s *model.AppStats) error {
	const q = `
INSERT INTO app_stats (id, used_tenant_id)
VALUES (nextval('sequence_generator'), $1)
RETURNING id`
	if err := r.db.Pool.QueryRow(ctx, q, s.UsedTenantID).Scan(&s.ID); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrTenantAlreadyUsed
		}
		return err
	}
	return nil
}

// Update overwrites used_tenant_id of an existing row.
func (r *AppStatsRepo) Update(ctx context.Context, s *model.AppStats) error {
	const q = `UPDATE app_stats SET used_tenant_id=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, s.ID, s.UsedTenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrTenantAlreadyUsed
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// PartialUpdate keeps the stored value of every nil field.
func (r *AppStatsRepo) PartialUpdate(ctx context.Context, s *model.AppStats) (*model.AppStats, error) {
	const q = `
UPDATE app_stats SET used_tenant_id = COALESCE($2, used_tenant_id)
WHERE id=$1
RETURNING id, used_tenant_id`
	var out model.AppStats
	if err := r.db.Pool.QueryRow(ctx, q, s.ID, s.UsedTenantID).Scan(&out.ID, &out.UsedTenantID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, errs.ErrNotFound
		case isUniqueViolation(err):
			return nil, errs.ErrTenantAlreadyUsed
		}
		return nil, err
	}
	return &out, nil
}

// FindByID selects a row by id.
func (r *AppStatsRepo) FindByID(ctx context.Context, id int64) (*model.AppStats, error) {
	const q = `SELECT id, used_tenant_id FROM app_stats WHERE id=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, id))
}

// ExistsByID reports whether the row exists.
func (r *AppStatsRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM app_stats WHERE id=$1)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// DeleteByID removes the row if present.
func (r *AppStatsRepo) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM app_stats WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}

// FindOneByUsedTenantIDIgnoreCase matches tenant case-insensitively.
func (r *AppStatsRepo) FindOneByUsedTenantIDIgnoreCase(ctx context.Context, tenant string) (*model.AppStats, error) {
	const q = `
SELECT id, used_tenant_id FROM app_stats
WHERE lower(used_tenant_id) = lower($1)
ORDER BY id
LIMIT 1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, tenant))
}

// FindAll runs the specification with the given ordering and paging.
func (r *AppStatsRepo) FindAll(ctx context.Context, spec repository.AppStatsSpec, page query.Pageable) ([]model.AppStats, error) {
	return r.findAll(ctx, r.db.Pool, spec, page)
}

// FindPage returns the requested page and the total count from one snapshot.
func (r *AppStatsRepo) FindPage(
	ctx context.Context, spec repository.AppStatsSpec, page query.Pageable,
) (items []model.AppStats, total int64, err error) {
	err = r.db.readTx(ctx, func(tx pgx.Tx) error {
		var e error
		if items, e = r.findAll(ctx, tx, spec, page); e != nil {
			return e
		}
		total, e = r.count(ctx, tx, spec)
		return e
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Count returns the number of matching rows.
func (r *AppStatsRepo) Count(ctx context.Context, spec repository.AppStatsSpec) (int64, error) {
	return r.count(ctx, r.db.Pool, spec)
}

func (r *AppStatsRepo) findAll(ctx context.Context, qr querier, spec repository.AppStatsSpec, page query.Pageable) ([]model.AppStats, error) {
	var b query.Binder
	sql := spec.SelectSQL(repository.AppStatsTable, appStatsColumns, page, &b)
	rows, err := qr.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AppStats, 0)
	for rows.Next() {
		var s model.AppStats
		if err = rows.Scan(&s.ID, &s.UsedTenantID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AppStatsRepo) count(ctx context.Context, qr querier, spec repository.AppStatsSpec) (int64, error) {
	var b query.Binder
	sql := spec.CountSQL(repository.AppStatsTable, repository.AppStatsID, &b)
	var n int64
	if err := qr.QueryRow(ctx, sql, b.Args()...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AppStatsRepo) scanOne(row pgx.Row) (*model.AppStats, error) {
	var s model.AppStats
	if err := row.Scan(&s.ID, &s.UsedTenantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
