package handlers

import (
	"net/http"
	"strconv"

	errs "shareit/internal/errors"
	"shareit/internal/logger"
	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/gin-gonic/gin"
)

// Defaults for list endpoints, matching the original wire contract.
const (
	defaultState    = "ALL"
	defaultFrom     = 0
	defaultPageSize = 5
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// userID pulls the acting user from X-Sharer-User-Id; a missing or
// malformed header aborts with 400.
func (h *Handlers) userID(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": middleware.SharerUserHeader + " header is required"})
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter, aborting with 400 on garbage.
func (h *Handlers) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " path parameter"})
		return 0, false
	}
	return id, true
}

// pageParams reads from/size with the original defaults. Non-numeric
// values abort with 400; range validation is left to the service so the
// invalid-page rule lives in one place.
func (h *Handlers) pageParams(c *gin.Context) (models.Page, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", strconv.Itoa(defaultFrom)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from parameter"})
		return models.Page{}, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size parameter"})
		return models.Page{}, false
	}
	return models.Page{From: from, Size: size}, true
}

// respondError maps the domain error taxonomy onto transport status
// codes. Unclassified errors are logged and surface as 500 without
// leaking internals.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch errs.CodeOf(err) {
	case errs.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errs.CodeBadRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errs.CodeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errs.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errs.CodeUnsupported:
		// Distinct payload contract: clients match on the message.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("Request handling failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
