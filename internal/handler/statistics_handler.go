package handler

import (
	"net/http"

	"github.com/RohitYadav0014/AccelQuote/internal/middleware"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/service"
	"github.com/RohitYadav0014/AccelQuote/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/statistics", middleware.RequireRole(model.RoleAdmin, model.RoleSalesEngineer, model.RoleSalesDirector))
	{
		stats.GET("/workflow", h.GetWorkflow)
	}
}

// GetWorkflow handles GET /statistics/workflow
// @Summary      Workflow statistics
// @Description  Summarizes document extraction and discount approval activity
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.WorkflowStatistics}
// @Failure      500  {object}  response.Response
// @Router       /statistics/workflow [get]
func (h *StatisticsHandler) GetWorkflow(c *gin.Context) {
	stats, err := h.statisticsService.GetWorkflowStatistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to compute statistics"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
