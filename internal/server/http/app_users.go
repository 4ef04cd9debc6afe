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

const appUserEntity = "appUser"

type appUserHandler struct {
	svc    service.AppUserService
	query  service.AppUserQueryService
	alerts alerts
	log    *zap.Logger
}

func (h *appUserHandler) mount(g *gin.RouterGroup) {
	g.GET("", h.list)
	g.GET("/count", h.count)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.patch)
	g.DELETE("/:id", h.delete)
}

func (h *appUserHandler) fail(c *gin.Context, err error) {
	h.alerts.respondError(c, h.log, err, appUserEntity)
}

// list honours eagerload (default true). Without criteria an eager listing
// goes through FindAllWithEagerRelationships.
func (h *appUserHandler) list(c *gin.Context) {
	values := c.Request.URL.Query()
	cr, err := criteria.ParseAppUserCriteria(values)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := query.ParsePageable(values, repository.AppUserSortable)
	if err != nil {
		h.fail(c, err)
		return
	}
	eager, err := eagerLoad(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Debug("rest request to get app users by criteria", zap.Stringer("criteria", cr), zap.Bool("eager", eager))

	ctx := c.Request.Context()
	switch {
	case eager && cr.Equal(&criteria.AppUserCriteria{}):
		items, total, err := h.svc.FindAllWithEagerRelationships(ctx, page)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(http.StatusOK, items)
	case page.Paged():
		items, total, err := h.query.FindPageByCriteria(ctx, cr, page, eager)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(http.StatusOK, items)
	default:
		items, err := h.query.FindByCriteria(ctx, cr, page, eager)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *appUserHandler) count(c *gin.Context) {
	cr, err := criteria.ParseAppUserCriteria(c.Request.URL.Query())
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

func (h *appUserHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	u, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *appUserHandler) create(c *gin.Context) {
	var body model.AppUser
	if err := bindJSON(c, &body); err != nil {
		h.fail(c, err)
		return
	}
	u, err := h.svc.Save(c.Request.Context(), &body)
	if err != nil {
		h.fail(c, err)
		return
	}
	id := strconv.FormatInt(u.ID, 10)
	h.alerts.entityCreated(c, appUserEntity, id)
	c.Header("Location", "/api/app-users/"+id)
	c.JSON(http.StatusCreated, u)
}

func (h *appUserHandler) update(c *gin.Context) {
	id, body, ok := h.bindUpdate(c)
	if !ok {
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, body)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.alerts.entityUpdated(c, appUserEntity, strconv.FormatInt(u.ID, 10))
	c.JSON(http.StatusOK, u)
}

func (h *appUserHandler) patch(c *gin.Context) {
	id, body, ok := h.bindUpdate(c)
	if !ok {
		return
	}
	u, err := h.svc.PartialUpdate(c.Request.Context(), id, body)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.alerts.entityUpdated(c, appUserEntity, strconv.FormatInt(u.ID, 10))
	c.JSON(http.StatusOK, u)
}

func (h *appUserHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.alerts.entityDeleted(c, appUserEntity, strconv.FormatInt(id, 10))
	c.Status(http.StatusNoContent)
}

func (h *appUserHandler) bindUpdate(c *gin.Context) (int64, *model.AppUser, bool) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return 0, nil, false
	}
	var body model.AppUser
	if err := bindJSON(c, &body); err != nil {
		h.fail(c, err)
		return 0, nil, false
	}
	return id, &body, true
}

func eagerLoad(c *gin.Context) (bool, error) {
	raw, ok := c.GetQuery("eagerload")
	if !ok || raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: eagerload: %v", errs.ErrInvalidFilter, err)
	}
	return v, nil
}
