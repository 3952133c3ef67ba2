package handler

import (
	"errors"
	"log"
	"net/http"

	"payment_portal/internal/audit"
	"payment_portal/internal/config"
	"payment_portal/internal/middleware"
	"payment_portal/internal/model"
	"payment_portal/internal/service"
	"payment_portal/internal/validate"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	service  service.AuthService
	recorder audit.Recorder
	cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, recorder audit.Recorder, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: s, recorder: recorder, cfg: cfg}
}

// setSessionCookie conveys the session token as an HTTP-only cookie. The
// token never appears in a response body.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if h.cfg.Production {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.cfg.Production, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request: " + err.Error()})
		return
	}

	if fieldErrs := validate.Register(req); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Validation error", "errors": fieldErrs})
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrAccountExists) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Account already exists."})
			return
		}
		log.Printf("Error during registration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error during registration."})
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	h.recorder.Record(&user.ID, "User Registered", audit.Meta(c))

	c.JSON(http.StatusOK, gin.H{
		"msg":  "Registration successful",
		"user": user.ToProfile(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request: " + err.Error()})
		return
	}

	if fieldErrs := validate.Login(req); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Validation error", "errors": fieldErrs})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.AccountNumber, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials."})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error during login."})
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	h.recorder.Record(&user.ID, "User Logged In", audit.Meta(c))

	c.JSON(http.StatusOK, gin.H{"msg": "Login successful", "role": user.Role})
}

// Logout clears the session cookie with matching attributes. It sits
// behind the session and CSRF gates, so reaching here implies a valid
// session; repeating it yields the same client-side clearing.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)

	if userID, err := middleware.AuthUserID(c); err == nil {
		h.recorder.Record(&userID, "User Logged Out", audit.Meta(c))
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Logout successful"})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW, csrfMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", csrfMW, h.Register)
		authGroup.POST("/login", csrfMW, h.Login)
		authGroup.POST("/logout", authMW, csrfMW, h.Logout)
	}
}
