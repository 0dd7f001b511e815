package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/web2print/backend/internal/application/intake"
	"github.com/web2print/backend/internal/domain/identity"
	"github.com/web2print/backend/internal/interfaces/http/dto"
	"github.com/web2print/backend/internal/interfaces/http/middleware"
)

// maxDocumentSize caps a single uploaded document. The body limit
// middleware enforces the transport level cap; this guards the
// multipart part itself.
const maxDocumentSize = 20 << 20 // 20MB

// OrderHandler handles print order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *intake.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *intake.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// getActor builds the intake actor from JWT claims
func getActor(c *gin.Context) (intake.Actor, error) {
	userID, err := getUserID(c)
	if err != nil {
		return intake.Actor{}, err
	}
	return intake.Actor{
		UserID: userID,
		Role:   identity.Role(middleware.GetJWTRole(c)),
	}, nil
}

// UpdateStatusBody is the request body for the payment endpoint.
// Status is optional; when omitted the order advances to printing.
type UpdateStatusBody struct {
	Status string `json:"status" binding:"omitempty,oneof=pending printing completed"`
}

// SubmitOrder godoc
// @Summary      Submit print order
// @Description  Upload a document with print options as multipart form data
// @Tags         orders
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Document to print"
// @Param        store_id formData string true "Target store ID"
// @Param        page_size formData string false "Page size (A4 or A3)" default(A4)
// @Param        print_mode formData string false "Print mode (black_white or color)" default(black_white)
// @Param        copies formData int false "Number of copies" default(1)
// @Success      201 {object} dto.Response{data=intake.SubmitOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := uuid.Parse(c.PostForm("store_id"))
	if err != nil {
		h.BadRequest(c, "store_id is required and must be a valid UUID")
		return
	}

	copies := 1
	if raw := c.PostForm("copies"); raw != "" {
		copies, err = strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "copies must be a number")
			return
		}
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxDocumentSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "document exceeds maximum size of 20MB")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize+1))
	if err != nil {
		h.InternalError(c, "failed to read uploaded document")
		return
	}
	if int64(len(data)) > maxDocumentSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "document exceeds maximum size of 20MB")
		return
	}

	req := intake.SubmitOrderRequest{
		StoreID:     storeID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		PageSize:    c.DefaultPostForm("page_size", "A4"),
		PrintMode:   c.DefaultPostForm("print_mode", "black_white"),
		Copies:      copies,
	}

	result, err := h.orderService.SubmitOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetOrder godoc
// @Summary      Get print order
// @Description  Get a single order visible to the authenticated account
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=intake.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := h.bindOrderID(c)
	if err != nil {
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListOrders godoc
// @Summary      List print orders
// @Description  List orders scoped to the authenticated role
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]intake.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), actor, intake.ListOrdersRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// UpdatePayment godoc
// @Summary      Record payment
// @Description  Advance an order's status after payment; defaults to printing
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateStatusBody false "Target status"
// @Success      200 {object} dto.Response{data=intake.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/payment [patch]
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := h.bindOrderID(c)
	if err != nil {
		return
	}

	var body UpdateStatusBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), userID, orderID, intake.UpdateStatusRequest{
		Status: body.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DownloadDocument godoc
// @Summary      Download document
// @Description  Returns a presigned URL for plain documents or the decrypted bytes for encrypted ones
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        key query string false "Hex-encoded AES key for encrypted documents"
// @Success      200 {object} dto.Response{data=intake.DownloadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/document [get]
func (h *OrderHandler) DownloadDocument(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := h.bindOrderID(c)
	if err != nil {
		return
	}

	result, err := h.orderService.DownloadDocument(c.Request.Context(), actor, orderID, intake.DownloadRequest{
		Key: c.Query("key"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Encrypted documents are decrypted server side and streamed inline;
	// plain documents redirect the client to blob storage via URL.
	if len(result.Data) > 0 {
		c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
		contentType := result.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, result.Data)
		return
	}

	h.Success(c, result)
}

// bindOrderID parses the order ID path parameter, writing the error
// response itself on failure
func (h *OrderHandler) bindOrderID(c *gin.Context) (uuid.UUID, error) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, err
	}
	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, err
	}
	return orderID, nil
}
