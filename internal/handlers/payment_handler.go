package handlers

import (
	"net/http"

	"memberhub_backend/internal/services"
	"memberhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
	receiptService services.ReceiptService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService, receiptService services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
		receiptService: receiptService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordPayment)
		payments.GET("", h.GetPayments)
		payments.GET("/:id", h.GetPayment)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.GET("/:paymentId/html", h.GetReceiptHTML)
		receipts.GET("/:paymentId/link", h.GetReceiptLink)
	}
}

// RecordPayment godoc
// @Summary Record a payment
// @Description The membership's paid amount becomes the sum of all its payments. Overpayment is accepted.
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentDTO
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "Membership not found"
// @Router /api/v1/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), h.GetDB(c), businessID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments godoc
// @Summary List payments, newest first
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param membership_id query string false "Filter by membership"
// @Success 200 {array} dto.PaymentDTO
// @Router /api/v1/payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.GetPayments(c.Request.Context(), h.GetDB(c), businessID, c.Query("membership_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), h.GetDB(c), businessID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetReceiptHTML godoc
// @Summary Printable receipt
// @Tags Receipts
// @Security BearerAuth
// @Produce html
// @Param paymentId path string true "Payment ID"
// @Success 200 {string} string "HTML receipt"
// @Router /api/v1/receipts/{paymentId}/html [get]
func (h *PaymentHandler) GetReceiptHTML(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	body, err := h.receiptService.RenderHTML(c.Request.Context(), h.GetDB(c), businessID, c.Param("paymentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (h *PaymentHandler) GetReceiptLink(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	link, err := h.receiptService.ShareableLink(c.Request.Context(), h.GetDB(c), businessID, c.Param("paymentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}
