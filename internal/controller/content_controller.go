package controller

import (
	"errors"
	"net/http"
	"strconv"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/service"
	"vidyasetu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// CreateContentRequest is the multipart form for new content. The file and
// thumbnail arrive as form files alongside these fields.
type CreateContentRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	Subject     string `form:"subject" binding:"required,oneof=Mathematics Science English 'Social Studies' Hindi 'Computer Science' 'General Knowledge' Other"`
	Grade       string `form:"grade" binding:"required,oneof=1 2 3 4 5 6 7 8 9 10 11 12 All"`
	ContentType string `form:"contentType" binding:"required,oneof=video audio pdf text image"`
	TextContent string `form:"textContent"`
	Duration    int    `form:"duration"`
	Tags        string `form:"tags"`
	Difficulty  string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Order       int    `form:"order"`
}

// Create godoc
// @Summary Upload new learning content
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "title"
// @Param subject formData string true "subject"
// @Param grade formData string true "grade"
// @Param contentType formData string true "video|audio|pdf|text|image"
// @Param file formData file false "content file"
// @Param thumbnail formData file false "thumbnail image"
// @Success 201 {object} util.Response{data=model.Content}
// @Failure 400 {object} util.Response
// @Router /api/content [post]
func (c *ContentController) Create(ctx *gin.Context) {
	var req CreateContentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	difficulty := model.DifficultyBeginner
	if req.Difficulty != "" {
		difficulty = model.Difficulty(req.Difficulty)
	}

	content := &model.Content{
		Title:       req.Title,
		Description: req.Description,
		Subject:     model.Subject(req.Subject),
		Grade:       req.Grade,
		ContentType: model.ContentType(req.ContentType),
		TextContent: req.TextContent,
		Duration:    req.Duration,
		Tags:        model.ParseTagList(req.Tags),
		Difficulty:  difficulty,
		Order:       req.Order,
		CreatedByID: claims.UserID,
	}

	file, _ := ctx.FormFile("file")
	thumbnail, _ := ctx.FormFile("thumbnail")

	if content.ContentType != model.ContentText && file == nil {
		util.BadRequest(ctx, "A file upload is required for this content type")
		return
	}

	if err := c.ContentService.CreateContent(ctx.Request.Context(), content, file, thumbnail); err != nil {
		switch {
		case errors.Is(err, util.ErrFileTooLarge):
			util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, util.ErrInvalidMimeType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, "failed to create content", err)
		}
		return
	}

	util.Created(ctx, "Content created", content)
}

// List godoc
// @Summary List published content
// @Tags content
// @Produce json
// @Param subject query string false "filter by subject"
// @Param grade query string false "filter by grade"
// @Param contentType query string false "filter by type"
// @Param difficulty query string false "filter by difficulty"
// @Param search query string false "search in title, description and tags"
// @Param page query int false "page, 1-based"
// @Param limit query int false "page size, max 100"
// @Param sort query string false "createdAt|-createdAt|title|-title|views|-views"
// @Success 200 {object} util.Response{data=[]model.Content}
// @Router /api/content [get]
func (c *ContentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	page, limit = util.NormalizePaging(page, limit)

	f := repository.ContentFilter{
		Subject:     model.Subject(ctx.Query("subject")),
		Grade:       ctx.Query("grade"),
		ContentType: model.ContentType(ctx.Query("contentType")),
		Difficulty:  model.Difficulty(ctx.Query("difficulty")),
		Search:      ctx.Query("search"),
		Page:        page,
		Limit:       limit,
		Sort:        ctx.Query("sort"),
	}

	items, total, err := c.ContentService.ListContent(f)
	if err != nil {
		util.LogInternalError(ctx, "failed to list content", err)
		return
	}

	util.Paginated(ctx, items, util.NewPagination(total, f.Page, f.Limit))
}

// Get godoc
// @Summary Fetch one content item and record a view
// @Tags content
// @Produce json
// @Param id path int true "content id"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 404 {object} util.Response
// @Router /api/content/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	content, err := c.ContentService.GetContent(id)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx, "Content not found")
		} else {
			util.LogInternalError(ctx, "failed to fetch content", err)
		}
		return
	}
	util.Success(ctx, content)
}

// Update godoc
// @Summary Patch a content item (owner or admin)
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Param body body service.ContentUpdateRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/content/{id} [put]
func (c *ContentController) Update(ctx *gin.Context) {
	var req service.ContentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	content, err := c.ContentService.UpdateContent(id, claims, req)
	if err != nil {
		respondContentError(ctx, err, "failed to update content")
		return
	}
	util.SuccessMessage(ctx, "Content updated", content)
}

// Delete godoc
// @Summary Delete a content item (owner or admin)
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/content/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	if err := c.ContentService.DeleteContent(id, claims); err != nil {
		respondContentError(ctx, err, "failed to delete content")
		return
	}
	util.SuccessMessage(ctx, "Content deleted", nil)
}

// TogglePublish godoc
// @Summary Publish or unpublish a content item (owner or admin)
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response{data=model.Content}
// @Router /api/content/{id}/publish [patch]
func (c *ContentController) TogglePublish(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	content, err := c.ContentService.TogglePublish(id, claims)
	if err != nil {
		respondContentError(ctx, err, "failed to toggle publish state")
		return
	}

	message := "Content unpublished"
	if content.IsPublished {
		message = "Content published"
	}
	util.SuccessMessage(ctx, message, content)
}

// ToggleLike godoc
// @Summary Like or unlike a content item
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/content/{id}/like [post]
func (c *ContentController) ToggleLike(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	liked, count, err := c.ContentService.ToggleLike(id, claims.UserID)
	if err != nil {
		respondContentError(ctx, err, "failed to toggle like")
		return
	}
	util.Success(ctx, gin.H{"liked": liked, "likes": count})
}

// Download godoc
// @Summary Record a download of a content item
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/content/{id}/download [post]
func (c *ContentController) Download(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.ContentService.IncrementDownload(id); err != nil {
		respondContentError(ctx, err, "failed to record download")
		return
	}
	util.SuccessMessage(ctx, "Download recorded", nil)
}

func respondContentError(ctx *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, util.ErrContentNotFound):
		util.NotFound(ctx, "Content not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "Not allowed to modify this content")
	default:
		util.LogInternalError(ctx, logMessage, err)
	}
}
