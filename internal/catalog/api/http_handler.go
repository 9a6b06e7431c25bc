package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/catalog/service"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

// CatalogHandler serves the uniform CRUD surface of one catalog resource.
type CatalogHandler[T domain.Entity[T]] struct {
	path    string
	service service.CatalogService[T]
}

func NewCatalogHandler[T domain.Entity[T]](path string, svc service.CatalogService[T]) *CatalogHandler[T] {
	return &CatalogHandler[T]{path: path, service: svc}
}

func (h *CatalogHandler[T]) RegisterRoutes(router *gin.RouterGroup) {
	routes := router.Group("/" + h.path)
	{
		routes.GET("", h.List)
		routes.POST("", h.Create)
		routes.PUT("/:id", h.Update)
		routes.DELETE("/:id", h.Delete)
	}
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	q := rdomain.Query{
		Search: c.Query("search"),
		Sort:   rdomain.Sort(c.DefaultQuery("sort", string(rdomain.SortLatest))),
	}
	items, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "List", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		logger.Error(fmt.Sprintf("Create %s Hdl: bad request", h.path), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	created, err := h.service.Create(c.Request.Context(), rec)
	if err != nil {
		h.fail(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Data berhasil ditambahkan", "data": created})
}

func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, err := rdomain.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		logger.Error(fmt.Sprintf("Update %s Hdl: bad request", h.path), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, rec)
	if err != nil {
		h.fail(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data berhasil diperbarui", "data": updated})
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, err := rdomain.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "Delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data berhasil dihapus"})
}

func (h *CatalogHandler[T]) fail(c *gin.Context, op string, err error) {
	var verr rdomain.ValidationErrors
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "errors": verr})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fmt.Sprintf("%s %s Hdl: unhandled service error", op, h.path), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
