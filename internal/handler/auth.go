package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
	log *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an identity and returns a bearer token for it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Username, email and password"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	const op = "handler.AuthHandler.Register"

	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("invalid register body", slog.String("op", op), slog.Any("error", err))
		abortWithMessage(c, http.StatusBadRequest, "invalid input")
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, op, err)
		return
	}

	c.JSON(http.StatusCreated, h.authResponse(user, token))
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	const op = "handler.AuthHandler.Login"

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "invalid input")
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, op, err)
		return
	}

	c.JSON(http.StatusOK, h.authResponse(user, token))
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	const op = "handler.AuthHandler.Me"

	principal, ok := GetPrincipal(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
		return
	}

	user, err := h.svc.Me(c.Request.Context(), principal)
	if err != nil {
		writeError(c, h.log, op, err)
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

func (h *AuthHandler) authResponse(user *model.User, token string) model.AuthResponse {
	return model.AuthResponse{
		User:      user.Response(),
		Token:     token,
		ExpiresIn: int64(h.svc.TokenTTL().Seconds()),
	}
}
