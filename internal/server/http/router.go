// Package httpserver exposes the REST API over gin.
package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/metrics"
	"github.com/kaizenmobile/tenant-registry/internal/service"
)

// MetricsPath serves the Prometheus scrape endpoint.
const MetricsPath = "/management/prometheus"

// Deps are the collaborators of the router. Metrics and DB may be nil.
type Deps struct {
	AppName        string
	AllowedOrigins []string

	AppStats      service.AppStatsService
	AppStatsQuery service.AppStatsQueryService
	AppUsers      service.AppUserService
	AppUsersQuery service.AppUserQueryService

	DB      Pinger
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewRouter builds the gin engine with middleware, API and management routes.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	a := alerts{app: d.AppName}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), Logger(log), Recovery(log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware(MetricsPath))
	}
	r.Use(CORS(d.AllowedOrigins, "X-"+d.AppName+"-alert", "X-"+d.AppName+"-error", "X-"+d.AppName+"-params"))
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("set trusted proxies", zap.Error(err))
	}

	r.NoRoute(statusProblem(http.StatusNotFound))
	r.NoMethod(statusProblem(http.StatusMethodNotAllowed))

	api := r.Group("/api")
	{
		stats := &appStatsHandler{svc: d.AppStats, query: d.AppStatsQuery, alerts: a, log: log}
		stats.mount(api.Group("/app-stats"))

		users := &appUserHandler{svc: d.AppUsers, query: d.AppUsersQuery, alerts: a, log: log}
		users.mount(api.Group("/app-users"))
	}

	mgmt := r.Group("/management")
	mgmt.GET("/health", health(d.DB, log))
	if d.Metrics != nil {
		mgmt.GET("/prometheus", gin.WrapH(d.Metrics.Handler()))
	}
	return r
}

// statusProblem answers unrouted requests with the envelope for status.
func statusProblem(status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(status, Problem{
			Type:      ProblemBaseURL + "/problem-with-message",
			Title:     http.StatusText(status),
			Status:    status,
			Message:   "error.http." + strconv.Itoa(status),
			RequestID: GetRequestID(c),
		})
	}
}
