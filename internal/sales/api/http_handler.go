package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/service"
)

type SalesHandler struct {
	salesService service.SalesService
}

func NewSalesHandler(ss service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: ss}
}

func (h *SalesHandler) RegisterRoutes(router *gin.RouterGroup) {
	saleRoutes := router.Group("/penjualan")
	{
		saleRoutes.POST("", h.CreateSale)
		saleRoutes.POST("/monthly", h.Monthly)
		saleRoutes.DELETE("/:id", h.Delete)
	}
	// Path jamak ini dipakai aplikasi lama untuk riwayat hari ini
	router.GET("/penjualans/today", h.Today)
}

func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req domain.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("CreateSale Hdl: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	resp, err := h.salesService.CreateSale(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySale), errors.Is(err, service.ErrTotalMismatch):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPelangganNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrItemUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("CreateSale Hdl: unhandled service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan penjualan"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) Monthly(c *gin.Context) {
	var filter domain.MonthlyFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	sales, err := h.salesService.Monthly(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Monthly Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memuat laporan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales})
}

func (h *SalesHandler) Today(c *gin.Context) {
	sales, err := h.salesService.Today(c.Request.Context())
	if err != nil {
		logger.Error("Today Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memuat riwayat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales})
}

func (h *SalesHandler) Delete(c *gin.Context) {
	id, err := rdomain.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if err := h.salesService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error(fmt.Sprintf("Delete Hdl: penjualan %d", id), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menghapus penjualan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Penjualan berhasil dihapus"})
}
