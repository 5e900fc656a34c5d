package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/streakmart/internal/server/http/dto"
)

// DashboardHandler serves the streak leaderboard.
type DashboardHandler struct {
	facade DashboardFacade
}

// NewDashboardHandler creates DashboardHandler instance.
func NewDashboardHandler(facade DashboardFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// Dashboard handles GET /api/dashboard. Returns the top entries by default;
// ?all=true returns the whole board.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	showAll := c.Query("all") == "true"

	entries, err := h.facade.Dashboard(c.Request.Context(), showAll)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		return
	}

	rows := make([]dto.DashboardEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, dto.DashboardEntry{Username: e.Username, Streak: e.Streak})
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Message:   "dashboard data",
		Dashboard: rows,
	})
}
