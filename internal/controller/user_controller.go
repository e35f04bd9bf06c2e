package controller

import (
	"errors"
	"strconv"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/service"
	"vidyasetu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "student|teacher|admin"
// @Param search query string false "match against name and email"
// @Param page query int false "page, 1-based"
// @Param limit query int false "page size, max 100"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	page, limit = util.NormalizePaging(page, limit)

	users, total, err := c.UserService.ListUsers(model.UserRole(ctx.Query("role")), ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, "failed to list users", err)
		return
	}
	util.Paginated(ctx, users, util.NewPagination(total, page, limit))
}

// Get godoc
// @Summary Fetch one user (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	user, err := c.UserService.GetUser(id)
	if err != nil {
		respondUserError(ctx, err, "failed to fetch user")
		return
	}
	util.Success(ctx, user)
}

// Update godoc
// @Summary Patch a user's profile, role or active flag (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param body body service.UserUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	var req service.UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))

	user, err := c.UserService.UpdateUser(id, req)
	if err != nil {
		respondUserError(ctx, err, "failed to update user")
		return
	}
	util.SuccessMessage(ctx, "User updated", user)
}

// Delete godoc
// @Summary Soft delete a user (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.UserID == id {
		util.BadRequest(ctx, "Admins cannot delete their own account")
		return
	}

	if err := c.UserService.DeleteUser(id); err != nil {
		respondUserError(ctx, err, "failed to delete user")
		return
	}
	util.SuccessMessage(ctx, "User deleted", nil)
}

// Statistics godoc
// @Summary Platform-wide counts and recent activity (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.PlatformStatistics}
// @Router /api/users/admin/statistics [get]
func (c *UserController) Statistics(ctx *gin.Context) {
	stats, err := c.UserService.PlatformStatistics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, "failed to build platform statistics", err)
		return
	}
	util.Success(ctx, stats)
}

func respondUserError(ctx *gin.Context, err error, logMessage string) {
	if errors.Is(err, util.ErrUserNotFound) {
		util.NotFound(ctx, "User not found")
		return
	}
	util.LogInternalError(ctx, logMessage, err)
}
