package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/account/service"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(us service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
	router.GET("/dashboard/counts", h.Counts)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username dan password wajib diisi"})
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Login Hdl: unhandled service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login gagal"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Counts(c *gin.Context) {
	counts, err := h.userService.Counts(c.Request.Context())
	if err != nil {
		logger.Error("Counts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memuat ringkasan"})
		return
	}
	c.JSON(http.StatusOK, counts) // objek datar {barang: n, ...}, tanpa envelope
}
