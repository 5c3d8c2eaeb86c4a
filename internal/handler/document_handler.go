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

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSalesEngineer, model.RoleSalesDirector)

	docs := router.Group("/documents", anyRole)
	{
		docs.GET("", h.ListFiles)
		docs.GET("/extracted", h.ListExtracted)
		docs.GET("/:id", h.GetDocument)
		docs.GET("/:id/extraction", h.GetDocument)
		docs.POST("/:id/extract", h.Extract)
	}
}

// ListFiles handles GET /documents, merging the backend file list with local
// extraction state
// @Summary      List quote documents
// @Description  Lists all request-for-quote files known to the backend, annotated with extraction status
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.FileInfo}
// @Failure      502  {object}  response.Response
// @Router       /documents [get]
func (h *DocumentHandler) ListFiles(c *gin.Context) {
	files, err := h.documentService.ListFiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, files))
}

// ListExtracted handles GET /documents/extracted
// @Summary      List extracted documents
// @Description  Retrieves a paginated list of locally extracted documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /documents/extracted [get]
func (h *DocumentHandler) ListExtracted(c *gin.Context) {
	params := pagination.Parse(c)

	docs, total, err := h.documentService.ListDocuments(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch documents"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetDocument handles GET /documents/:id
// @Summary      Get extracted document
// @Description  Returns the parsed catalog and quote metadata of an extracted document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=service.DocumentDetail}
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	fileID := c.Param("id")

	detail, err := h.documentService.GetDocument(c.Request.Context(), fileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Document has not been extracted"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// Extract handles POST /documents/:id/extract
// @Summary      Extract a document
// @Description  Runs the extraction backend over the PDF and stores the parsed catalog for all users
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document file id"
// @Success      200  {object}  response.Response{data=service.DocumentDetail}
// @Failure      502  {object}  response.Response
// @Router       /documents/{id}/extract [post]
func (h *DocumentHandler) Extract(c *gin.Context) {
	fileID := c.Param("id")
	userID, _ := currentUser(c)

	detail, err := h.documentService.Extract(c.Request.Context(), fileID, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}
