package handler

import (
	"net/http"

	"github.com/RohitYadav0014/AccelQuote/internal/middleware"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/service"
	"github.com/RohitYadav0014/AccelQuote/pkg/pagination"
	"github.com/RohitYadav0014/AccelQuote/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", middleware.RequireRole(model.RoleAdmin, model.RoleSalesDirector), h.List)
}

// List handles GET /audit-logs
// @Summary      List audit logs
// @Description  Retrieves a paginated audit trail, optionally filtered by action
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        action  query     string  false  "Filter by action"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	params := pagination.Parse(c)
	action := c.Query("action")

	logs, total, err := h.auditService.List(c.Request.Context(), action, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch audit logs"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}
