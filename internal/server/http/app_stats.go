package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/criteria"
	"github.com/kaizenmobile/tenant-registry/internal/errs"
	"github.com/kaizenmobile/tenant-registry/internal/model"
	"github.com/kaizenmobile/tenant-registry/internal/query"
	"github.com/kaizenmobile/tenant-registry/internal/repository"
	"github.com/kaizenmobile/tenant-registry/internal/service"
)

const appStatsEntity = "appStats"

type appStatsHandler struct {
	svc    service.AppStatsService
	query  service.AppStatsQueryService
	alerts alerts
	log    *zap.Logger
}

func (h *appStatsHandler) mount(g *gin.RouterGroup) {
	g.GET("", h.list)
	g.GET("/count", h.count)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.patch)
	g.DELETE("/:id", h.delete)
}

func (h *appStatsHandler) fail(c *gin.Context, err error) {
	h.alerts.respondError(c, h.log, err, appStatsEntity)
}

func (h *appStatsHandler) list(c *gin.Context) {
	values := c.Request.URL.Query()
	cr, err := criteria.ParseAppStatsCriteria(values)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := query.ParsePageable(values, repository.AppStatsSortable)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Debug("rest request to get app stats by criteria", zap.Stringer("criteria", cr))

	if page.Paged() {
		items, total, err := h.query.FindPageByCriteria(c.Request.Context(), cr, page)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(http.StatusOK, items)
		return
	}
	items, err := h.query.FindByCriteria(c.Request.Context(), cr, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *appStatsHandler) count(c *gin.Context) {
	cr, err := criteria.ParseAppStatsCriteria(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}
	n, err := h.query.CountByCriteria(c.Request.Context(), cr)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *appStatsHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	s, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *appStatsHandler) create(c *gin.Context) {
	var body model.AppStats
	if err := bindJSON(c, &body); err != nil {
		h.fail(c, err)
		return
	}
	s, err := h.svc.Save(c.Request.Context(), &body)
	if err != nil {
		h.fail(c, err)
		return
	}
	id := strconv.FormatInt(s.ID, 10)
	h.alerts.entityCreated(c, appStatsEntity, id)
	c.Header("Location", "/api/app-stats/"+id)
	c.JSON(http.StatusCreated, s)
}

func (h *appStatsHandler) update(c *gin.Context) {
	id, body, ok := h.bindUpdate(c)
	if !ok {
		return
	}
	s, err := h.svc.Update(c.Request.Context(), id, body)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.alerts.entityUpdated(c, appStatsEntity, strconv.FormatInt(s.ID, 10))
	c.JSON(http.StatusOK, s)
}

func (h *appStatsHandler) patch(c *gin.Context) {
	id, body, ok := h.bindUpdate(c)
	if !ok {
		return
	}
	s, err := h.svc.PartialUpdate(c.Request.Context(), id, body)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.alerts.entityUpdated(c, appStatsEntity, strconv.FormatInt(s.ID, 10))
	c.JSON(http.StatusOK, s)
}

func (h *appStatsHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.alerts.entityDeleted(c, appStatsEntity, strconv.FormatInt(id, 10))
	c.Status(http.StatusNoContent)
}

func (h *appStatsHandler) bindUpdate(c *gin.Context) (int64, *model.AppStats, bool) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return 0, nil, false
	}
	var body model.AppStats
	if err := bindJSON(c, &body); err != nil {
		h.fail(c, err)
		return 0, nil, false
	}
	return id, &body, true
}

// pathID parses the :id segment.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrIDInvalid, c.Param("id"))
	}
	return id, nil
}

// bindJSON decodes the body regardless of Content-Type, so that both
// application/json and application/merge-patch+json are accepted.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", errs.ErrValidation, err)
	}
	return nil
}
