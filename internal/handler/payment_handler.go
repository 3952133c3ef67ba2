package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"payment_portal/internal/audit"
	"payment_portal/internal/middleware"
	"payment_portal/internal/model"
	"payment_portal/internal/service"
	"payment_portal/internal/validate"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment lifecycle requests
type PaymentHandler struct {
	service  service.PaymentService
	recorder audit.Recorder
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(s service.PaymentService, recorder audit.Recorder) *PaymentHandler {
	return &PaymentHandler{service: s, recorder: recorder}
}

// GetMyPayments returns payments where the caller is sender or receiver
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	userID, err := middleware.AuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	payments, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching user payments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error fetching payments."})
		return
	}

	h.recorder.Record(&userID, "Viewed Own Payment History", audit.Meta(c))
	c.JSON(http.StatusOK, payments)
}

// CreatePayment records a new payment request in status Pending
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, err := middleware.AuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request: " + err.Error()})
		return
	}

	if fieldErrs := validate.Payment(req); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Validation error", "errors": fieldErrs})
		return
	}

	payment, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiverNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Receiver account not found."})
		case errors.Is(err, service.ErrSelfPayment):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Cannot send funds to your own account."})
		default:
			log.Printf("Payment creation error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error during payment creation."})
		}
		return
	}

	h.recorder.Record(&userID, fmt.Sprintf("Created Payment %d", payment.ID), audit.Meta(c))
	c.JSON(http.StatusCreated, gin.H{"msg": "Payment processed successfully.", "payment": payment})
}

// --- Admin Routes ---

// GetAllPayments returns every payment, newest first
func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching all payments for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error."})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// VerifyPayment advances Pending -> Verified
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	h.advance(c, h.service.Verify, "Payment verified.", "Verified Payment %d")
}

// SubmitPayment advances Verified -> Submitted
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	h.advance(c, h.service.Submit, "Payment submitted to SWIFT (simulated).", "Submitted Payment %d")
}

func (h *PaymentHandler) advance(c *gin.Context, op func(ctx context.Context, id int64) (*model.Payment, error), okMsg, auditFmt string) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid payment ID"})
		return
	}

	payment, err := op(c.Request.Context(), paymentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Payment not found."})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		default:
			log.Printf("Payment status error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error."})
		}
		return
	}

	if adminID, err := middleware.AuthUserID(c); err == nil {
		h.recorder.Record(&adminID, fmt.Sprintf(auditFmt, payment.ID), audit.Meta(c))
	}
	c.JSON(http.StatusOK, gin.H{"msg": okMsg, "payment": payment})
}

// RegisterPaymentRoutes registers customer and admin payment routes
func (h *PaymentHandler) RegisterPaymentRoutes(rg *gin.RouterGroup, authMW, csrfMW, customerMW, adminMW gin.HandlerFunc) {
	paymentRoutes := rg.Group("/payments")
	paymentRoutes.Use(authMW)
	{
		paymentRoutes.GET("/me", h.GetMyPayments)
		paymentRoutes.POST("", csrfMW, customerMW, h.CreatePayment)
	}

	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/payments", h.GetAllPayments)
		adminRoutes.POST("/payments/:id/verify", h.VerifyPayment)
		adminRoutes.POST("/payments/:id/submit", h.SubmitPayment)
	}
}
