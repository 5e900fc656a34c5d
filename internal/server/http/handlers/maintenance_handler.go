package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/streakmart/internal/server/http/dto"
)

// CronAuthHeader carries the shared secret expected on maintenance calls.
const CronAuthHeader = "X-Cron-Auth"

// MaintenanceHandler exposes the streak reconciliation sweep over HTTP so an
// external scheduler can trigger it.
type MaintenanceHandler struct {
	facade MaintenanceFacade
	secret string
}

// NewMaintenanceHandler creates MaintenanceHandler instance. An empty secret
// leaves the endpoint open.
func NewMaintenanceHandler(facade MaintenanceFacade, secret string) *MaintenanceHandler {
	return &MaintenanceHandler{facade: facade, secret: secret}
}

// UpdateDashboardCache handles GET /api/internal/update-dashboard-cache.
func (h *MaintenanceHandler) UpdateDashboardCache(c *gin.Context) {
	if h.secret != "" {
		got := c.GetHeader(CronAuthHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "unauthorized"})
			return
		}
	}

	if err := h.facade.Reconcile(c.Request.Context(), time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "dashboard cache updated"})
}
