package handler

import (
	"log"
	"net/http"

	"payment_portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CSRFHandler issues anti-forgery tokens
type CSRFHandler struct {
	guard *middleware.CSRFGuard
}

// NewCSRFHandler creates a new CSRFHandler
func NewCSRFHandler(guard *middleware.CSRFGuard) *CSRFHandler {
	return &CSRFHandler{guard: guard}
}

// GetToken binds a secret cookie to the client and returns the derived
// token in the body. The secret cookie itself stays HTTP-only; only the
// token is readable so the client can echo it back in a header.
func (h *CSRFHandler) GetToken(c *gin.Context) {
	token, err := h.guard.Token(c)
	if err != nil {
		log.Printf("Error issuing CSRF token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

// RegisterCSRFRoutes registers the token issuance route
func (h *CSRFHandler) RegisterCSRFRoutes(rg *gin.RouterGroup) {
	rg.GET("/csrf-token", h.GetToken)
}
