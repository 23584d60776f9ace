package handler

import (
	"net/http"
	"strconv"
	"time"

	"user-account-service/internal/service"
	"user-account-service/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the protected user and role management routes.
type UserHandler struct {
	Service *service.AuthService
}

func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{Service: svc}
}

type createUserReq struct {
	Username   string     `json:"username" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required"`
	DNI        string     `json:"dni"`
	CreateTime *time.Time `json:"create_time"`
}

type updateUserReq struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	DNI      string  `json:"dni"`
	RoleIDs  *[]uint `json:"listUserRoles"`
}

// SearchUser returns a single user projection with nested role and
// permission data.
func (h *UserHandler) SearchUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user id")
		return
	}

	user, err := h.Service.GetUser(c.Request.Context(), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if user == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns the first page of user projections.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := h.Service.ListUsers(c.Request.Context(), 1)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page.Users)
}

// ListUsersPage returns one page of users with pagination metadata.
// The page query parameter is 1-indexed and defaults to 1.
func (h *UserHandler) ListUsersPage(c *gin.Context) {
	pageNum := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid page number")
			return
		}
		pageNum = n
	}

	page, err := h.Service.ListUsers(c.Request.Context(), pageNum)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListRoles returns all roles with nested permissions.
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.Service.ListRoles(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// CreateUser creates an account. The password is hashed before it is
// persisted.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username, email and password are required")
		return
	}

	in := service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		DNI:      req.DNI,
	}
	if req.CreateTime != nil {
		in.CreateTime = *req.CreateTime
	}

	resp, err := h.Service.CreateUser(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateUser updates scalar fields and replaces the user's role
// assignments with the supplied id list.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	in := service.UpdateUserInput{
		ID:       req.ID,
		Username: req.Username,
		Email:    req.Email,
		DNI:      req.DNI,
	}
	if req.RoleIDs != nil {
		in.RoleIDs = *req.RoleIDs
	}

	resp, err := h.Service.UpdateUser(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser removes a user and returns the deleted record.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("idUser"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user id")
		return
	}

	user, err := h.Service.DeleteUser(c.Request.Context(), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
