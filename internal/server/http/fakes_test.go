package httpserver

import (
	"context"

	"github.com/kaizenmobile/tenant-registry/internal/criteria"
	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/service"
)

type fakeStats struct {
	rows map[int64]model.AppStats
	err  error
}

var _ service.AppStatsService = (*fakeStats)(nil)

func (f *fakeStats) Save(_ context.Context, s *model.AppStats) (*model.AppStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s.ID != 0 {
		return nil, errs.ErrIDExists
	}
	s.ID = 1050
	f.rows[s.ID] = *s
	return s, nil
}

func (f *fakeStats) Update(_ context.Context, id int64, s *model.AppStats) (*model.AppStats, error) {
	if s.ID == 0 {
		return nil, errs.ErrIDNull
	}
	if s.ID != id {
		return nil, errs.ErrIDInvalid
	}
	if _, ok := f.rows[id]; !ok {
		return nil, errs.ErrIDNotFound
	}
	f.rows[id] = *s
	return s, nil
}

func (f *fakeStats) PartialUpdate(ctx context.Context, id int64, s *model.AppStats) (*model.AppStats, error) {
	cur, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrIDNotFound
	}
	if s.UsedTenantID != nil {
		cur.UsedTenantID = s.UsedTenantID
	}
	f.rows[id] = cur
	return &cur, nil
}

func (f *fakeStats) FindOne(_ context.Context, id int64) (*model.AppStats, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &r, nil
}

func (f *fakeStats) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

type fakeStatsQuery struct {
	last     *criteria.AppStatsCriteria
	lastPage query.Pageable
	items    []model.AppStats
	total    int64
	err      error
}

var _ service.AppStatsQueryService = (*fakeStatsQuery)(nil)

func (f *fakeStatsQuery) FindByCriteria(_ context.Context, c *criteria.AppStatsCriteria, p query.Pageable) ([]model.AppStats, error) {
	f.last, f.lastPage = c, p
	return f.items, f.err
}

func (f *fakeStatsQuery) FindPageByCriteria(_ context.Context, c *criteria.AppStatsCriteria, p query.Pageable) ([]model.AppStats, int64, error) {
	f.last, f.lastPage = c, p
	return f.items, f.total, f.err
}

func (f *fakeStatsQuery) CountByCriteria(_ context.Context, c *criteria.AppStatsCriteria) (int64, error) {
	f.last = c
	return f.total, f.err
}

type fakeUsers struct {
	rows      map[int64]model.AppUser
	eagerCall bool
}

var _ service.AppUserService = (*fakeUsers)(nil)

func (f *fakeUsers) Save(_ context.Context, u *model.AppUser) (*model.AppUser, error) {
	if u.ID != 0 {
		return nil, errs.ErrIDExists
	}
	if err := u.CheckMapsID(); err != nil {
		return nil, err
	}
	u.ID = u.InternalUserID()
	f.rows[u.ID] = *u
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, u *model.AppUser) (*model.AppUser, error) {
	if u.ID != id {
		return nil, errs.ErrIDInvalid
	}
	f.rows[id] = *u
	return u, nil
}

func (f *fakeUsers) PartialUpdate(_ context.Context, id int64, u *model.AppUser) (*model.AppUser, error) {
	cur, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrIDNotFound
	}
	if u.TenantID != nil {
		cur.TenantID = u.TenantID
	}
	return &cur, nil
}

func (f *fakeUsers) FindOne(_ context.Context, id int64) (*model.AppUser, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &r, nil
}

func (f *fakeUsers) FindAllWithEagerRelationships(_ context.Context, _ query.Pageable) ([]model.AppUser, int64, error) {
	f.eagerCall = true
	out := make([]model.AppUser, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

type fakeUsersQuery struct {
	last      *criteria.AppUserCriteria
	lastEager bool
	total     int64
}

var _ service.AppUserQueryService = (*fakeUsersQuery)(nil)

func (f *fakeUsersQuery) FindByCriteria(_ context.Context, c *criteria.AppUserCriteria, _ query.Pageable, eager bool) ([]model.AppUser, error) {
	f.last, f.lastEager = c, eager
	return []model.AppUser{}, nil
}

func (f *fakeUsersQuery) FindPageByCriteria(_ context.Context, c *criteria.AppUserCriteria, _ query.Pageable, eager bool) ([]model.AppUser, int64, error) {
	f.last, f.lastEager = c, eager
	return []model.AppUser{}, f.total, nil
}

func (f *fakeUsersQuery) CountByCriteria(_ context.Context, c *criteria.AppUserCriteria) (int64, error) {
	f.last = c
	return f.total, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func ptr[T any](v T) *T { return &v }
