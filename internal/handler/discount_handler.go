package handler

import (
	"net/http"

	"github.com/RohitYadav0014/AccelQuote/internal/middleware"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/service"
	"github.com/RohitYadav0014/AccelQuote/pkg/response"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	discountService service.DiscountService
}

func NewDiscountHandler(discountService service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DiscountHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSalesEngineer, model.RoleSalesDirector)
	workflowRole := middleware.RequireRole(model.RoleSalesEngineer, model.RoleSalesDirector)

	docs := router.Group("/documents")
	{
		docs.GET("/:id/discounts/applied", anyRole, h.GetLedger)
		docs.POST("/:id/discounts/submit", workflowRole, h.Submit)
	}
}

// Submit handles POST /documents/:id/discounts/submit
// @Summary      Submit discounts
// @Description  Commits per-item discount percents under the caller's role. Sales Engineer submissions are proposals awaiting approval; Sales Director submissions are decisions. Values above the role's authorization ceiling are clamped and reported back.
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Document file id"
// @Param        payload  body      service.SubmitDiscountsRequest  true  "Discount percents by item id"
// @Success      200      {object}  response.Response{data=service.SubmitDiscountsResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /documents/{id}/discounts/submit [post]
func (h *DiscountHandler) Submit(c *gin.Context) {
	userID, role := currentUser(c)

	var req service.SubmitDiscountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	result, err := h.discountService.SubmitDiscounts(c.Request.Context(), c.Param("id"), userID, role, req.Discounts)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetLedger handles GET /documents/:id/discounts/applied
// @Summary      Get applied-discount ledger
// @Description  Returns every item's workflow position with the effective percent resolved for the caller's role
// @Tags         discounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=service.LedgerView}
// @Failure      500  {object}  response.Response
// @Router       /documents/{id}/discounts/applied [get]
func (h *DiscountHandler) GetLedger(c *gin.Context) {
	_, role := currentUser(c)

	view, err := h.discountService.GetLedger(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}
