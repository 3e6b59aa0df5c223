package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/employeems/employee-management-api/internal/constants"
	"github.com/employeems/employee-management-api/internal/dto"
	apierrors "github.com/employeems/employee-management-api/internal/errors"
	"github.com/employeems/employee-management-api/internal/middleware"
	"github.com/employeems/employee-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// AdminRegister registers a new admin account.
func (h *AuthHandler) AdminRegister(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	admin, err := h.authService.RegisterAdmin(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin account created successfully",
		"admin":   dto.ToAdminDTO(*admin),
	})
}

// AdminLogin authenticates an admin and sets the session cookie.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	admin, token, err := h.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"login_status": true,
		"role":         constants.RoleAdmin,
		"id":           admin.ID,
	})
}

// EmployeeLogin authenticates an employee and sets the session cookie.
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	employee, token, err := h.authService.LoginEmployee(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"login_status": true,
		"role":         constants.RoleEmployee,
		"id":           employee.ID,
	})
}

// EmployeeRegister registers an employee account with default salary and
// no category; admins fill those in later.
func (h *AuthHandler) EmployeeRegister(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Address  string `json:"address"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name, email, and password are required")
		return
	}

	employee, err := h.authService.RegisterEmployee(services.RegisterEmployeeInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful. Please log in.",
		"employee": dto.ToEmployeeDTO(*employee),
	})
}

// Logout clears the session cookie. Already-issued tokens stay valid
// until expiry (stateless token model).
func (h *AuthHandler) Logout(c *gin.Context) {
	h.applySameSite(c)
	c.SetCookie(constants.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Verify returns the role and id decoded from the session cookie.
func (h *AuthHandler) Verify(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"role":   identity.Role,
		"id":     identity.ID,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	h.applySameSite(c)
	maxAge := int(h.authService.TokenTTL().Seconds())
	c.SetCookie(constants.SessionCookieName, token, maxAge, "/", "", h.secureCookies, true)
}

func (h *AuthHandler) applySameSite(c *gin.Context) {
	if h.secureCookies {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidEmail):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters long", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
