package handler

import (
	"errors"
	"net/http"
	"strings"

	"user-account-service/internal/service"
	"user-account-service/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the unauthenticated login and session routes.
type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a token with the projected
// user view. All failure causes map to the same 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email and password are required")
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Session decodes the bearer token from the Authorization header and
// returns its claims. The route is public; the strict "Bearer " prefix
// check still applies.
func (h *AuthHandler) Session(c *gin.Context) {
	const prefix = "Bearer "
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, prefix) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authorization header missing or malformed")
		return
	}

	claims, err := h.Service.ValidateSession(authHeader[len(prefix):])
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

// writeServiceError maps service error kinds onto the HTTP error
// envelope. Unrecognized errors never leak details to the client.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, err.Error())
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
	}
}
