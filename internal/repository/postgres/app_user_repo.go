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

var (
	appUserColumns = []string{
		repository.AppUserID.String(),
		repository.AppUserTenantID.String(),
		repository.AppUserInternalUserFK.String(),
	}
	appUserEagerColumns = append(append([]string(nil), appUserColumns...),
		repository.InternalUserAlias+".login",
		repository.InternalUserAlias+".first_name",
		repository.InternalUserAlias+".last_name",
		repository.InternalUserAlias+".email",
	)
)

// AppUserRepo implements AppUserRepository using PostgreSQL.
type AppUserRepo struct{ db *DB }

// NewAppUserRepo constructs an app user repository.
func NewAppUserRepo(db *DB) *AppUserRepo { return &AppUserRepo{db: db} }

var _ repository.AppUserRepository = (*AppUserRepo)(nil)

// Create inserts u with id and internal_user_id both set to the linked user.
func (r *AppUserRepo) Create(ctx context.Context, u *model.AppUser) error {
	const q = `INSERT INTO app_user (id, tenant_id, internal_user_id) VALUES ($1, $2, $3)`
	uid := u.InternalUserID()
	if _, err := r.db.Pool.Exec(ctx, q, uid, u.TenantID, uid); err != nil {
		switch {
		case isUniqueViolation(err):
			return errs.ErrIDExists
		case isFKViolation(err):
			return errs.ErrNotFound
		}
		return err
	}
	u.ID = uid
	return nil
}

// Update overwrites tenant_id. The link to the internal user is immutable.
func (r *AppUserRepo) Update(ctx context.Context, u *model.AppUser) error {
	const q = `UPDATE app_user SET tenant_id=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, u.ID, u.TenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// PartialUpdate overwrites tenant_id only when set.
func (r *AppUserRepo) PartialUpdate(ctx context.Context, u *model.AppUser) (*model.AppUser, error) {
	const q = `
UPDATE app_user SET tenant_id = COALESCE($2, tenant_id)
WHERE id=$1
RETURNING id, tenant_id, internal_user_id`
	out, err := scanAppUser(r.db.Pool.QueryRow(ctx, q, u.ID, u.TenantID), false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return out, err
}

// FindByID loads a row together with its internal user.
func (r *AppUserRepo) FindByID(ctx context.Context, id int64) (*model.AppUser, error) {
	spec := query.Where[model.AppUser]().
		Join(repository.InternalUserJoin).
		And(query.Predicate{Op: query.OpEq, Column: repository.AppUserID, Value: id})
	var b query.Binder
	sql := spec.SelectSQL(repository.AppUserTable, appUserEagerColumns, query.Pageable{}, &b)
	out, err := scanAppUser(r.db.Pool.QueryRow(ctx, sql, b.Args()...), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return out, err
}

// ExistsByID reports whether the row exists.
func (r *AppUserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM app_user WHERE id=$1)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// DeleteByID removes the row if present.
func (r *AppUserRepo) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM app_user WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}

// FindAll runs the specification; eager adds the internal user join.
func (r *AppUserRepo) FindAll(
	ctx context.Context, spec repository.AppUserSpec, page query.Pageable, eager bool,
) ([]model.AppUser, error) {
	return r.findAll(ctx, r.db.Pool, spec, page, eager)
}

// FindPage returns the requested page and the total count from one snapshot.
func (r *AppUserRepo) FindPage(
	ctx context.Context, spec repository.AppUserSpec, page query.Pageable, eager bool,
) (items []model.AppUser, total int64, err error) {
	err = r.db.readTx(ctx, func(tx pgx.Tx) error {
		var e error
		if items, e = r.findAll(ctx, tx, spec, page, eager); e != nil {
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
func (r *AppUserRepo) Count(ctx context.Context, spec repository.AppUserSpec) (int64, error) {
	return r.count(ctx, r.db.Pool, spec)
}

func (r *AppUserRepo) findAll(
	ctx context.Context, qr querier, spec repository.AppUserSpec, page query.Pageable, eager bool,
) ([]model.AppUser, error) {
	cols := appUserColumns
	if eager {
		spec = spec.Join(repository.InternalUserJoin)
		cols = appUserEagerColumns
	}
	var b query.Binder
	sql := spec.SelectSQL(repository.AppUserTable, cols, page, &b)
	rows, err := qr.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AppUser, 0)
	for rows.Next() {
		u, err := scanAppUser(rows, eager)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *AppUserRepo) count(ctx context.Context, qr querier, spec repository.AppUserSpec) (int64, error) {
	var b query.Binder
	sql := spec.CountSQL(repository.AppUserTable, repository.AppUserID, &b)
	var n int64
	if err := qr.QueryRow(ctx, sql, b.Args()...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// scanAppUser reads appUserColumns, or appUserEagerColumns when eager is set.
func scanAppUser(row pgx.Row, eager bool) (*model.AppUser, error) {
	var (
		u     model.AppUser
		owner model.User
		login *string
	)
	dest := []any{&u.ID, &u.TenantID, &owner.ID}
	if eager {
		dest = append(dest, &login, &owner.FirstName, &owner.LastName, &owner.Email)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if login != nil {
		owner.Login = *login
	}
	u.InternalUser = &owner
	return &u, nil
}
