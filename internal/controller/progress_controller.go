package controller

import (
	"errors"
	"strconv"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/service"
	"vidyasetu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Upsert godoc
// @Summary Create or patch the caller's progress on a content item
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProgressUpsertRequest true "contentId plus fields to change, timeSpent is added"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress [post]
func (c *ProgressController) Upsert(ctx *gin.Context) {
	var req service.ProgressUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.UpsertProgress(claims.UserID, req.ContentID, req)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx, "Content not found")
		} else {
			util.LogInternalError(ctx, "failed to update progress", err)
		}
		return
	}
	util.SuccessMessage(ctx, "Progress updated", progress)
}

// List godoc
// @Summary List the caller's progress records
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param status query string false "not-started|in-progress|completed"
// @Param subject query string false "filter by content subject"
// @Param grade query string false "filter by content grade"
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	f := repository.ProgressFilter{
		Status:  model.ProgressStatus(ctx.Query("status")),
		Subject: model.Subject(ctx.Query("subject")),
		Grade:   ctx.Query("grade"),
	}

	items, err := c.ProgressService.ListProgress(claims.UserID, f)
	if err != nil {
		util.LogInternalError(ctx, "failed to list progress", err)
		return
	}
	util.Success(ctx, items)
}

// GetByContent godoc
// @Summary Fetch the caller's progress on one content item
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param contentId path int true "content id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{contentId} [get]
func (c *ProgressController) GetByContent(ctx *gin.Context) {
	contentID := util.MustParseUint(ctx.Param("contentId"))
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetByContent(claims.UserID, contentID)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx, "No progress for this content yet")
		} else {
			util.LogInternalError(ctx, "failed to fetch progress", err)
		}
		return
	}
	util.Success(ctx, progress)
}

// ToggleBookmark godoc
// @Summary Bookmark or unbookmark a content item
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param contentId path int true "content id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{contentId}/bookmark [patch]
func (c *ProgressController) ToggleBookmark(ctx *gin.Context) {
	contentID := util.MustParseUint(ctx.Param("contentId"))
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.ToggleBookmark(claims.UserID, contentID)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx, "Content not found")
		} else {
			util.LogInternalError(ctx, "failed to toggle bookmark", err)
		}
		return
	}
	util.Success(ctx, progress)
}

// Dashboard godoc
// @Summary Aggregate learning overview for the caller
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.DashboardStats}
// @Router /api/progress/dashboard/stats [get]
func (c *ProgressController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ProgressService.DashboardStats(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "failed to build dashboard", err)
		return
	}
	util.Success(ctx, stats)
}

// Analytics godoc
// @Summary Quiz performance and learning time for the caller
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param period query int false "window in days, default 30"
// @Success 200 {object} util.Response{data=model.Analytics}
// @Router /api/progress/analytics [get]
func (c *ProgressController) Analytics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	period, _ := strconv.Atoi(ctx.DefaultQuery("period", "30"))
	analytics, err := c.ProgressService.Analytics(claims.UserID, period)
	if err != nil {
		util.LogInternalError(ctx, "failed to build analytics", err)
		return
	}
	util.Success(ctx, analytics)
}
