package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/web2print/backend/internal/application/store"
	"github.com/web2print/backend/internal/interfaces/http/dto"
)

// StoreHandler handles public store directory requests
type StoreHandler struct {
	BaseHandler
	storeService *store.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *store.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// ListStores godoc
// @Summary      List stores
// @Description  List registered stores with pagination and optional name search
// @Tags         stores
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Filter by store name"
// @Success      200 {object} dto.Response{data=[]store.StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /stores [get]
func (h *StoreHandler) ListStores(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.storeService.ListStores(c.Request.Context(), store.ListStoresRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// GetStore godoc
// @Summary      Get store
// @Description  Get a single store by ID
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID"
// @Success      200 {object} dto.Response{data=store.StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /stores/{id} [get]
func (h *StoreHandler) GetStore(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	storeID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	result, err := h.storeService.GetStore(c.Request.Context(), store.GetStoreRequest{
		StoreID: storeID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
