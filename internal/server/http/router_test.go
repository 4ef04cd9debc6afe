package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/metrics"
	"github.com/kaizenmobile/tenant-registry/internal/model"
)

const app = "kaizenApp"

type fixture struct {
	r          *gin.Engine
	stats      *fakeStats
	statsQuery *fakeStatsQuery
	users      *fakeUsers
	usersQuery *fakeUsersQuery
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fixture{
		stats:      &fakeStats{rows: map[int64]model.AppStats{}},
		statsQuery: &fakeStatsQuery{},
		users:      &fakeUsers{rows: map[int64]model.AppUser{}},
		usersQuery: &fakeUsersQuery{},
	}
	f.r = NewRouter(Deps{
		AppName:        app,
		AllowedOrigins: []string{"http://localhost:9000"},
		AppStats:       f.stats,
		AppStatsQuery:  f.statsQuery,
		AppUsers:       f.users,
		AppUsersQuery:  f.usersQuery,
		DB:             fakePinger{},
		Metrics:        metrics.New("test"),
		Log:            zaptest.NewLogger(t),
	})
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.r.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) Problem {
	t.Helper()
	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestAppStats_CreateGetDelete(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/app-stats", `{"usedTenantId":"AAAAAAAAAA"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/app-stats/1050", rec.Header().Get("Location"))
	require.Equal(t, app+".appStats.created", rec.Header().Get("X-"+app+"-alert"))
	require.Equal(t, "1050", rec.Header().Get("X-"+app+"-params"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = f.do(http.MethodGet, "/api/app-stats/1050", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":1050,"usedTenantId":"AAAAAAAAAA"}`, rec.Body.String())

	rec = f.do(http.MethodDelete, "/api/app-stats/1050", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, app+".appStats.deleted", rec.Header().Get("X-"+app+"-alert"))

	rec = f.do(http.MethodGet, "/api/app-stats/1050", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "error.http.404", decodeProblem(t, rec).Message)
}

func TestAppStats_ErrorMapping(t *testing.T) {
	f := newFixture(t)
	f.stats.rows[1] = model.AppStats{ID: 1}

	rec := f.do(http.MethodPost, "/api/app-stats", `{"id":5,"usedTenantId":"X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.idexists", rec.Header().Get("X-"+app+"-error"))
	require.Equal(t, "appStats", rec.Header().Get("X-"+app+"-params"))
	p := decodeProblem(t, rec)
	require.Equal(t, http.StatusBadRequest, p.Status)
	require.Equal(t, "error.idexists", p.Message)
	require.NotEmpty(t, p.RequestID)

	rec = f.do(http.MethodPut, "/api/app-stats/1", `{"usedTenantId":"X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.idnull", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodPut, "/api/app-stats/1", `{"id":2,"usedTenantId":"X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.idinvalid", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodPut, "/api/app-stats/9", `{"id":9}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.idnotfound", rec.Header().Get("X-"+app+"-error"))
	require.Equal(t, "error.idnotfound", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodPatch, "/api/app-stats/9", `{"id":9}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.idnotfound", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodPatch, "/api/app-users/9", `{"id":9}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "appUser", rec.Header().Get("X-"+app+"-params"))

	rec = f.do(http.MethodPut, "/api/app-stats/1", `{"id":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.validation", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodGet, "/api/app-stats/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.stats.err = errors.New("db down")
	rec = f.do(http.MethodPost, "/api/app-stats", `{"usedTenantId":"Y"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "db down")
}

func TestAppStats_TenantAlreadyUsed(t *testing.T) {
	f := newFixture(t)
	f.stats.err = errs.ErrTenantAlreadyUsed

	rec := f.do(http.MethodPost, "/api/app-stats", `{"usedTenantId":"acme"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	require.Equal(t, ProblemBaseURL+"/company-already-used", p.Type)
	require.Equal(t, "Company is already in use!", p.Title)
	require.Equal(t, "error.companyexists", p.Message)
	require.Equal(t, "userManagement", rec.Header().Get("X-"+app+"-params"))
}

func TestAppStats_PatchMergeJSON(t *testing.T) {
	f := newFixture(t)
	f.stats.rows[1] = model.AppStats{ID: 1, UsedTenantID: ptr("AAAAAAAAAA")}

	req := httptest.NewRequest(http.MethodPatch, "/api/app-stats/1", strings.NewReader(`{"id":1}`))
	req.Header.Set("Content-Type", "application/merge-patch+json")
	rec := httptest.NewRecorder()
	f.r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":1,"usedTenantId":"AAAAAAAAAA"}`, rec.Body.String())
	require.Equal(t, app+".appStats.updated", rec.Header().Get("X-"+app+"-alert"))
}

func TestAppStats_ListAndCount(t *testing.T) {
	f := newFixture(t)
	f.statsQuery.items = []model.AppStats{{ID: 2}, {ID: 1}}
	f.statsQuery.total = 2

	rec := f.do(http.MethodGet, "/api/app-stats?usedTenantId.contains=AAA&sort=id,desc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "AAA", *f.statsQuery.last.UsedTenantID.Contains)
	require.True(t, f.statsQuery.lastPage.Sort[0].Desc)
	require.Empty(t, rec.Header().Get("X-Total-Count"))

	rec = f.do(http.MethodGet, "/api/app-stats?page=0&size=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2", rec.Header().Get("X-Total-Count"))

	rec = f.do(http.MethodGet, "/api/app-stats/count?id.greaterThan=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2", rec.Body.String())

	rec = f.do(http.MethodGet, "/api/app-stats?id.equals=notanumber", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.invalidfilter", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodGet, "/api/app-stats?sort=secret,asc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppUsers_EagerloadRouting(t *testing.T) {
	f := newFixture(t)
	f.users.rows[1] = model.AppUser{ID: 1, InternalUser: &model.User{ID: 1, Login: "admin"}}

	rec := f.do(http.MethodGet, "/api/app-users?eagerload=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, f.users.eagerCall)
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	rec = f.do(http.MethodGet, "/api/app-users?eagerload=false&internalUserId.equals=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, f.usersQuery.lastEager)
	require.Equal(t, int64(1), *f.usersQuery.last.InternalUserID.Equals)

	rec = f.do(http.MethodGet, "/api/app-users?tenantId.specified=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, f.usersQuery.lastEager, "eagerload defaults to true")

	rec = f.do(http.MethodGet, "/api/app-users?eagerload=perhaps", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppUsers_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/app-users", `{"tenantId":"AAAAAAAAAA","internalUser":{"id":2}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/app-users/2", rec.Header().Get("Location"))
	require.Equal(t, app+".appUser.created", rec.Header().Get("X-"+app+"-alert"))

	rec = f.do(http.MethodPost, "/api/app-users", `{"tenantId":"AAAAAAAAAA"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error.validation", decodeProblem(t, rec).Message)

	rec = f.do(http.MethodPut, "/api/app-users/2", `{"id":3,"tenantId":"B"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "appUser", rec.Header().Get("X-"+app+"-params"))

	rec = f.do(http.MethodPatch, "/api/app-users/2", `{"id":2,"tenantId":"BBBBBBBBBB"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "BBBBBBBBBB")

	rec = f.do(http.MethodGet, "/api/app-users/count", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/app-users/2", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, app+".appUser.deleted", rec.Header().Get("X-"+app+"-alert"))
}

func TestManagementEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/management/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"UP"`)

	f.do(http.MethodGet, "/api/app-stats/count", "")
	rec = f.do(http.MethodGet, MetricsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `path="/api/app-stats/count"`)

	rec = f.do(http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "error.http.404", decodeProblem(t, rec).Message)
}

func TestMissingIDPathParam_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := f.do(method, "/api/app-stats", `{"id":1}`)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		require.Equal(t, "error.http.405", decodeProblem(t, rec).Message)

		rec = f.do(method, "/api/app-users", `{"id":1}`)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
}

func TestHealth_Down(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Deps{AppName: app, DB: fakePinger{err: errors.New("refused")}, Log: zaptest.NewLogger(t)})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/management/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID_Propagated(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/management/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	f.r.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery(zaptest.NewLogger(t)))
	r.GET("/boom", func(*gin.Context) { panic("oh no") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "error.internalServerError", decodeProblem(t, rec).Message)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/management/health", nil)
	req.Header.Set("Origin", "http://localhost:9000")
	rec := httptest.NewRecorder()
	f.r.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:9000", rec.Header().Get("Access-Control-Allow-Origin"))
}
