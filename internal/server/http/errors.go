package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
)

// ProblemBaseURL prefixes the type of every error envelope.
const ProblemBaseURL = "https://www.jhipster.tech/problem"

// Problem is the JSON body of every error response.
type Problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Params    string `json:"params,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// problemFor maps err onto status, problem type and error key. entity is
// reported in params unless the error belongs to another entity.
func problemFor(err error, entity string) (status int, typ, title, key, params string) {
	typ = ProblemBaseURL + "/problem-with-message"
	params = entity
	switch {
	case errors.Is(err, errs.ErrIDExists):
		return http.StatusBadRequest, typ, "A new " + entity + " cannot already have an ID", "idexists", params
	case errors.Is(err, errs.ErrIDNull):
		return http.StatusBadRequest, typ, "Invalid id", "idnull", params
	case errors.Is(err, errs.ErrIDInvalid):
		return http.StatusBadRequest, typ, "Invalid ID", "idinvalid", params
	case errors.Is(err, errs.ErrTenantAlreadyUsed):
		return http.StatusBadRequest, ProblemBaseURL + "/company-already-used", "Company is already in use!", "companyexists", "userManagement"
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, ProblemBaseURL + "/constraint-violation", err.Error(), "validation", params
	case errors.Is(err, errs.ErrInvalidFilter):
		return http.StatusBadRequest, typ, err.Error(), "invalidfilter", params
	case errors.Is(err, errs.ErrIDNotFound):
		return http.StatusBadRequest, typ, "Entity not found", "idnotfound", params
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, typ, "Not Found", "http.404", params
	}
	return http.StatusInternalServerError, typ, "Internal Server Error", "internalServerError", params
}

// alerts writes the X-<app>-alert / -error / -params headers.
type alerts struct {
	app string
}

func (a alerts) entityCreated(c *gin.Context, entity, id string) { a.alert(c, entity+".created", id) }
func (a alerts) entityUpdated(c *gin.Context, entity, id string) { a.alert(c, entity+".updated", id) }
func (a alerts) entityDeleted(c *gin.Context, entity, id string) { a.alert(c, entity+".deleted", id) }

func (a alerts) alert(c *gin.Context, msg, param string) {
	c.Header("X-"+a.app+"-alert", a.app+"."+msg)
	c.Header("X-"+a.app+"-params", param)
}

func (a alerts) failure(c *gin.Context, key, entity string) {
	c.Header("X-"+a.app+"-error", "error."+key)
	c.Header("X-"+a.app+"-params", entity)
}

// respondError writes the envelope and error headers for err. Server errors
// are logged; their details never reach the client.
func (a alerts) respondError(c *gin.Context, log *zap.Logger, err error, entity string) {
	status, typ, title, key, params := problemFor(err, entity)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	a.failure(c, key, params)
	c.AbortWithStatusJSON(status, Problem{
		Type:      typ,
		Title:     title,
		Status:    status,
		Message:   "error." + key,
		Params:    params,
		RequestID: GetRequestID(c),
	})
}
