package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/dto"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/httpresp"
	"github.com/BruksfildServices01/estate-listings/internal/identity"
	"github.com/BruksfildServices01/estate-listings/internal/models"
	"github.com/BruksfildServices01/estate-listings/internal/usecase/session"
)

type registerer interface {
	Execute(ctx context.Context, in session.RegisterInput) (*models.User, error)
}

type authenticator interface {
	Execute(ctx context.Context, email, password string) (*models.User, string, error)
}

type AuthHandler struct {
	register     registerer
	login        authenticator
	secureCookie bool
}

func NewAuthHandler(register registerer, login authenticator, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		register:     register,
		login:        login,
		secureCookie: secureCookie,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"lastName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required,min=10"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration data")
		return
	}

	user, err := h.register.Execute(c.Request.Context(), session.RegisterInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "conflict"):
			httperr.Conflict(c, "email_taken", "User with this email already exists")
		case httperr.IsBusiness(err, "invalid_email_domain"):
			httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid")
		default:
			writeError(c, err, "Failed to register user")
		}
		return
	}

	httpresp.Created(c, "User registered successfully", gin.H{"user": dto.NewCurrentUser(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid login data")
		return
	}

	user, token, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
			return
		}
		writeError(c, err, "Failed to log in")
		return
	}

	identity.SetSessionCookie(c, token, h.secureCookie)

	httpresp.Result(c, http.StatusOK, "Logged in successfully", gin.H{"user": dto.NewCurrentUser(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	identity.ClearSessionCookie(c, h.secureCookie)

	httpresp.Result(c, http.StatusOK, "Logged out", nil)
}
