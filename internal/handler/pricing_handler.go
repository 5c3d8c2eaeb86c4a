package handler

import (
	"net/http"

	"github.com/RohitYadav0014/AccelQuote/internal/middleware"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/service"
	"github.com/RohitYadav0014/AccelQuote/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ComputePricingRequest selects the quoting currency; empty means the
// document's geography default.
type ComputePricingRequest struct {
	Currency string `json:"currency,omitempty"`
}

// PreviewPricingRequest carries in-progress edit values to price without
// committing them to the ledger.
type PreviewPricingRequest struct {
	Currency  string                     `json:"currency,omitempty"`
	Overrides map[string]decimal.Decimal `json:"overrides" binding:"required"`
}

type PricingHandler struct {
	pricingService service.PricingService
}

func NewPricingHandler(pricingService service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSalesEngineer, model.RoleSalesDirector)

	docs := router.Group("/documents", anyRole)
	{
		docs.POST("/:id/prices/fetch", h.FetchItemPrices)
		docs.GET("/:id/prices", h.GetItemPrices)
		docs.POST("/:id/discounts/fetch", h.FetchDiscountInfo)
		docs.GET("/:id/discounts", h.GetDiscountTable)
		docs.POST("/:id/pricing/compute", h.Compute)
		docs.POST("/:id/pricing/preview", h.Preview)
		docs.GET("/:id/pricing", h.GetSnapshot)
	}
}

// FetchItemPrices handles POST /documents/:id/prices/fetch
// @Summary      Fetch item prices
// @Description  Looks up global list prices for the document's catalog and caches them
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=model.PriceTable}
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /documents/{id}/prices/fetch [post]
func (h *PricingHandler) FetchItemPrices(c *gin.Context) {
	userID, _ := currentUser(c)

	table, err := h.pricingService.FetchItemPrices(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, table))
}

// FetchDiscountInfo handles POST /documents/:id/discounts/fetch
// @Summary      Fetch discount info
// @Description  Looks up per-manufacturer CNP factors and role discount ceilings and caches them
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=model.DiscountTable}
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /documents/{id}/discounts/fetch [post]
func (h *PricingHandler) FetchDiscountInfo(c *gin.Context) {
	userID, _ := currentUser(c)

	table, err := h.pricingService.FetchDiscountInfo(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, table))
}

// GetItemPrices handles GET /documents/:id/prices
// @Summary      Get cached item prices
// @Description  Returns the stored price table from the last fetch
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=model.PriceTable}
// @Failure      409  {object}  response.Response
// @Router       /documents/{id}/prices [get]
func (h *PricingHandler) GetItemPrices(c *gin.Context) {
	table, err := h.pricingService.GetItemPrices(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, table))
}

// GetDiscountTable handles GET /documents/:id/discounts
// @Summary      Get cached discount info
// @Description  Returns the stored CNP factor and ceiling table from the last fetch
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=model.DiscountTable}
// @Failure      409  {object}  response.Response
// @Router       /documents/{id}/discounts [get]
func (h *PricingHandler) GetDiscountTable(c *gin.Context) {
	table, err := h.pricingService.GetDiscountTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, table))
}

// Compute handles POST /documents/:id/pricing/compute
// @Summary      Compute final pricing
// @Description  Builds the final pricing table for the caller's role and caches it as the document snapshot
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true   "Document file id"
// @Param        payload  body      ComputePricingRequest  false  "Currency selection"
// @Success      200      {object}  response.Response{data=service.FinalPricingResult}
// @Failure      409      {object}  response.Response
// @Router       /documents/{id}/pricing/compute [post]
func (h *PricingHandler) Compute(c *gin.Context) {
	userID, role := currentUser(c)

	var req ComputePricingRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	result, err := h.pricingService.ComputeFinalPricing(c.Request.Context(), c.Param("id"), userID, role, req.Currency)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Preview handles POST /documents/:id/pricing/preview
// @Summary      Preview pricing with edits
// @Description  Recomputes the pricing table with in-progress discount edits without persisting anything
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Document file id"
// @Param        payload  body      PreviewPricingRequest  true  "Edit values by item id"
// @Success      200      {object}  response.Response{data=service.FinalPricingResult}
// @Failure      409      {object}  response.Response
// @Router       /documents/{id}/pricing/preview [post]
func (h *PricingHandler) Preview(c *gin.Context) {
	_, role := currentUser(c)

	var req PreviewPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	result, err := h.pricingService.Preview(c.Request.Context(), c.Param("id"), role, req.Currency, req.Overrides)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetSnapshot handles GET /documents/:id/pricing
// @Summary      Get cached final pricing
// @Description  Returns the last computed pricing table, or 404 when it was invalidated by a newer change
// @Tags         pricing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=service.FinalPricingResult}
// @Failure      404  {object}  response.Response
// @Router       /documents/{id}/pricing [get]
func (h *PricingHandler) GetSnapshot(c *gin.Context) {
	result, err := h.pricingService.GetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "No pricing snapshot for this document"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
