package controllers

import (
	"rento/response"
	"rento/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (ctrl *DashboardController) GetStats(c *gin.Context) {
	stats, err := ctrl.dashboard.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, stats)
}
