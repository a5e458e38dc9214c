package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// RegisterUserRoutes registers all user-related routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers) // admin only, enforced by the service
		users.GET("/me", h.me)
		users.GET("/:id", h.getUser) // own or admin
		users.POST("", h.createUser) // admin only, enforced by the service
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deactivateUser)
	}
}

// me godoc
// @Summary Current user
// @Description Returns the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 401 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) me(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	respondOK(c, http.StatusOK, "User retrieved", dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Administrators may read any user, everyone else only themselves
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if userID != identity.UserID && !identity.IsAdministrator() {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("User forbidden to read another user", slog.Int64("target_user_id", userID))
		c.JSON(http.StatusForbidden, dto.Fail("You do not have permission to perform this action"))
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	respondOK(c, http.StatusOK, "User retrieved", dto.ToUserResponse(user))
}

// createUser godoc
// @Summary Register a new user
// @Description Creates a new user. Administrators only.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 400 {object} dto.Envelope "Invalid input or unknown role"
// @Failure 403 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope "Email already registered"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, identity)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	logger.Info("User created", slog.Int64("new_user_id", user.UserID))
	respondOK(c, http.StatusCreated, "User registered successfully", dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Lists every user, inactive ones included. Administrators only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.UserResponse}
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	respondOK(c, http.StatusOK, "Users retrieved", lo.Map(users, func(u domain.User, _ int) dto.UserResponse {
		return dto.ToUserResponse(&u)
	}))
}

// updateUser godoc
// @Summary Update a user
// @Description Users may update themselves; administrators may update anyone, including role and status
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope "Email already registered"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.UpdateUser(c.Request.Context(), userID, req, identity); err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	respondOK(c, http.StatusOK, "User updated successfully", nil)
}

// deactivateUser godoc
// @Summary Deactivate a user
// @Description Disables a user's account. Administrators only.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deactivateUser(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID, identity); err != nil {
		respondError(c, err, "Failed to deactivate user")
		return
	}
	respondOK(c, http.StatusOK, "User deactivated successfully", nil)
}
