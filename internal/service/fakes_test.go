package service

import (
	"context"
	"sort"
	"strings"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
)

type fakeStatsRepo struct {
	rows   map[int64]model.AppStats
	nextID int64

	lastSpec repository.AppStatsSpec
	lastPage query.Pageable
	total    int64
	err      error
}

var _ repository.AppStatsRepository = (*fakeStatsRepo)(nil)

func newFakeStatsRepo(rows ...model.AppStats) *fakeStatsRepo {
	f := &fakeStatsRepo{rows: map[int64]model.AppStats{}, nextID: 1050}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeStatsRepo) Create(_ context.Context, s *model.AppStats) error {
	if f.err != nil {
		return f.err
	}
	s.ID = f.nextID
	f.nextID += 50
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeStatsRepo) Update(_ context.Context, s *model.AppStats) error {
	if _, ok := f.rows[s.ID]; !ok {
		return errs.ErrNotFound
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeStatsRepo) PartialUpdate(_ context.Context, s *model.AppStats) (*model.AppStats, error) {
	cur, ok := f.rows[s.ID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if s.UsedTenantID != nil {
		cur.UsedTenantID = s.UsedTenantID
	}
	f.rows[s.ID] = cur
	return &cur, nil
}

func (f *fakeStatsRepo) FindByID(_ context.Context, id int64) (*model.AppStats, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &r, nil
}

func (f *fakeStatsRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, f.err
}

func (f *fakeStatsRepo) DeleteByID(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeStatsRepo) FindAll(_ context.Context, spec repository.AppStatsSpec, page query.Pageable) ([]model.AppStats, error) {
	f.lastSpec, f.lastPage = spec, page
	return f.sorted(), f.err
}

func (f *fakeStatsRepo) FindPage(_ context.Context, spec repository.AppStatsSpec, page query.Pageable) ([]model.AppStats, int64, error) {
	f.lastSpec, f.lastPage = spec, page
	return f.sorted(), f.total, f.err
}

func (f *fakeStatsRepo) Count(_ context.Context, spec repository.AppStatsSpec) (int64, error) {
	f.lastSpec = spec
	return f.total, f.err
}

func (f *fakeStatsRepo) FindOneByUsedTenantIDIgnoreCase(_ context.Context, tenant string) (*model.AppStats, error) {
	for _, r := range f.sorted() {
		if r.UsedTenantID != nil && strings.EqualFold(*r.UsedTenantID, tenant) {
			return &r, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeStatsRepo) sorted() []model.AppStats {
	out := make([]model.AppStats, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeAppUserRepo struct {
	rows map[int64]model.AppUser

	lastSpec  repository.AppUserSpec
	lastEager bool
	total     int64
}

var _ repository.AppUserRepository = (*fakeAppUserRepo)(nil)

func newFakeAppUserRepo(rows ...model.AppUser) *fakeAppUserRepo {
	f := &fakeAppUserRepo{rows: map[int64]model.AppUser{}}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeAppUserRepo) Create(_ context.Context, u *model.AppUser) error {
	if _, ok := f.rows[u.InternalUserID()]; ok {
		return errs.ErrIDExists
	}
	u.ID = u.InternalUserID()
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeAppUserRepo) Update(_ context.Context, u *model.AppUser) error {
	cur, ok := f.rows[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	cur.TenantID = u.TenantID
	f.rows[u.ID] = cur
	return nil
}

func (f *fakeAppUserRepo) PartialUpdate(_ context.Context, u *model.AppUser) (*model.AppUser, error) {
	cur, ok := f.rows[u.ID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if u.TenantID != nil {
		cur.TenantID = u.TenantID
	}
	f.rows[u.ID] = cur
	return &cur, nil
}

func (f *fakeAppUserRepo) FindByID(_ context.Context, id int64) (*model.AppUser, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &r, nil
}

func (f *fakeAppUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeAppUserRepo) DeleteByID(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeAppUserRepo) FindAll(_ context.Context, spec repository.AppUserSpec, _ query.Pageable, eager bool) ([]model.AppUser, error) {
	f.lastSpec, f.lastEager = spec, eager
	return f.list(), nil
}

func (f *fakeAppUserRepo) FindPage(_ context.Context, spec repository.AppUserSpec, _ query.Pageable, eager bool) ([]model.AppUser, int64, error) {
	f.lastSpec, f.lastEager = spec, eager
	return f.list(), f.total, nil
}

func (f *fakeAppUserRepo) Count(_ context.Context, spec repository.AppUserSpec) (int64, error) {
	f.lastSpec = spec
	return f.total, nil
}

func (f *fakeAppUserRepo) list() []model.AppUser {
	out := make([]model.AppUser, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeUserRepo struct {
	users map[int64]model.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func strp(s string) *string { return &s }
