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

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// QuestionRequest is one authored question with its answer key.
type QuestionRequest struct {
	QuestionText string  `json:"questionText" binding:"required"`
	QuestionType string  `json:"questionType" binding:"required,oneof=mcq true-false short-answer"`
	Options      []struct {
		Text      string `json:"text" binding:"required"`
		IsCorrect bool   `json:"isCorrect"`
	} `json:"options"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	Explanation   string `json:"explanation"`
	Points        int    `json:"points"`
	Order         int    `json:"order"`
}

// CreateQuizRequest is the authoring payload.
// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description" binding:"required"`
	Subject        string            `json:"subject" binding:"required,oneof=Mathematics Science English 'Social Studies' Hindi 'Computer Science' 'General Knowledge' Other"`
	Grade          string            `json:"grade" binding:"required,oneof=1 2 3 4 5 6 7 8 9 10 11 12 All"`
	RelatedContent *uint             `json:"relatedContent"`
	Questions      []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
	Duration       int               `json:"duration"`
	PassingScore   float64           `json:"passingScore" binding:"omitempty,min=0,max=100"`
	Difficulty     string            `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags           []string          `json:"tags"`
}

// UpdateQuizRequest is the authoring patch payload. A supplied question
// list replaces the whole set and is validated the same way as creation.
type UpdateQuizRequest struct {
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	Subject        *string           `json:"subject" binding:"omitempty,oneof=Mathematics Science English 'Social Studies' Hindi 'Computer Science' 'General Knowledge' Other"`
	Grade          *string           `json:"grade" binding:"omitempty,oneof=1 2 3 4 5 6 7 8 9 10 11 12 All"`
	RelatedContent *uint             `json:"relatedContent"`
	Questions      []QuestionRequest `json:"questions" binding:"omitempty,min=1,dive"`
	Duration       *int              `json:"duration"`
	PassingScore   *float64          `json:"passingScore" binding:"omitempty,min=0,max=100"`
	Difficulty     *string           `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags           *[]string         `json:"tags"`
}

func (r UpdateQuizRequest) toPatch() service.QuizUpdateRequest {
	patch := service.QuizUpdateRequest{
		Title:            r.Title,
		Description:      r.Description,
		Grade:            r.Grade,
		RelatedContentID: r.RelatedContent,
		Duration:         r.Duration,
		PassingScore:     r.PassingScore,
		Tags:             r.Tags,
	}
	if r.Subject != nil {
		subject := model.Subject(*r.Subject)
		patch.Subject = &subject
	}
	if r.Difficulty != nil {
		difficulty := model.Difficulty(*r.Difficulty)
		patch.Difficulty = &difficulty
	}
	if len(r.Questions) > 0 {
		patch.Questions = buildQuestions(r.Questions)
	}
	return patch
}

func buildQuestions(reqs []QuestionRequest) []model.Question {
	questions := make([]model.Question, 0, len(reqs))
	for i, q := range reqs {
		question := model.Question{
			QuestionText:  q.QuestionText,
			QuestionType:  model.QuestionType(q.QuestionType),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Points:        q.Points,
			Order:         q.Order,
		}
		if question.Points <= 0 {
			question.Points = 1
		}
		if question.Order == 0 {
			question.Order = i
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.QuestionOption{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, question)
	}
	return questions
}

// Create godoc
// @Summary Author a new quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateQuizRequest true "quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz := &model.Quiz{
		Title:            req.Title,
		Description:      req.Description,
		Subject:          model.Subject(req.Subject),
		Grade:            req.Grade,
		RelatedContentID: req.RelatedContent,
		Questions:        buildQuestions(req.Questions),
		Duration:         req.Duration,
		PassingScore:     req.PassingScore,
		Difficulty:       model.Difficulty(req.Difficulty),
		Tags:             model.StringList(req.Tags),
		CreatedByID:      claims.UserID,
	}
	if quiz.Duration == 0 {
		quiz.Duration = 30
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 60
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = model.DifficultyBeginner
	}

	if err := c.QuizService.CreateQuiz(quiz); err != nil {
		util.LogInternalError(ctx, "failed to create quiz", err)
		return
	}
	util.Created(ctx, "Quiz created", quiz)
}

// List godoc
// @Summary List published quizzes without answer keys
// @Tags quizzes
// @Produce json
// @Param subject query string false "filter by subject"
// @Param grade query string false "filter by grade"
// @Param difficulty query string false "filter by difficulty"
// @Param page query int false "page, 1-based"
// @Param limit query int false "page size, max 100"
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	page, limit = util.NormalizePaging(page, limit)

	f := repository.QuizFilter{
		Subject:    model.Subject(ctx.Query("subject")),
		Grade:      ctx.Query("grade"),
		Difficulty: model.Difficulty(ctx.Query("difficulty")),
		Page:       page,
		Limit:      limit,
		Sort:       ctx.Query("sort"),
	}

	quizzes, total, err := c.QuizService.ListQuizzes(f)
	if err != nil {
		util.LogInternalError(ctx, "failed to list quizzes", err)
		return
	}
	util.Paginated(ctx, quizzes, util.NewPagination(total, f.Page, f.Limit))
}

// Get godoc
// @Summary Fetch a quiz for taking, answer keys stripped
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	quiz, err := c.QuizService.GetQuiz(id, claims)
	if err != nil {
		respondQuizError(ctx, err, "failed to fetch quiz")
		return
	}
	util.Success(ctx, quiz)
}

// GetFull godoc
// @Summary Fetch a quiz with answer keys (owner or admin)
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response
// @Router /api/quizzes/{id}/full [get]
func (c *QuizController) GetFull(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	quiz, err := c.QuizService.GetFullQuiz(id, claims)
	if err != nil {
		respondQuizError(ctx, err, "failed to fetch quiz")
		return
	}
	util.Success(ctx, quiz)
}

// Update godoc
// @Summary Patch a quiz (owner or admin)
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param body body controller.UpdateQuizRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	var req UpdateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	quiz, err := c.QuizService.UpdateQuiz(id, claims, req.toPatch())
	if err != nil {
		respondQuizError(ctx, err, "failed to update quiz")
		return
	}
	util.SuccessMessage(ctx, "Quiz updated", quiz)
}

// Delete godoc
// @Summary Delete a quiz and its questions (owner or admin)
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	if err := c.QuizService.DeleteQuiz(id, claims); err != nil {
		respondQuizError(ctx, err, "failed to delete quiz")
		return
	}
	util.SuccessMessage(ctx, "Quiz deleted", nil)
}

// TogglePublish godoc
// @Summary Publish or unpublish a quiz (owner or admin)
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id}/publish [patch]
func (c *QuizController) TogglePublish(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	quiz, err := c.QuizService.TogglePublish(id, claims)
	if err != nil {
		respondQuizError(ctx, err, "failed to toggle publish state")
		return
	}

	message := "Quiz unpublished"
	if quiz.IsPublished {
		message = "Quiz published"
	}
	util.SuccessMessage(ctx, message, quiz)
}

// Submit godoc
// @Summary Submit answers and receive the graded result
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param body body service.QuizSubmission true "answers with the attempt start time"
// @Success 201 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var submission service.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.SubmitQuiz(id, claims.UserID, submission)
	if err != nil {
		if errors.Is(err, util.ErrInvalidStartedAt) {
			util.BadRequest(ctx, err.Error())
			return
		}
		respondQuizError(ctx, err, "failed to submit quiz")
		return
	}
	util.Created(ctx, "Quiz submitted", result)
}

// Results godoc
// @Summary List the caller's attempts for a quiz, newest first
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/quizzes/{id}/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.QuizService.QuizResults(id, claims.UserID)
	if err != nil {
		respondQuizError(ctx, err, "failed to list quiz results")
		return
	}
	util.Success(ctx, results)
}

func respondQuizError(ctx *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, "Quiz not found")
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Error(ctx, http.StatusForbidden, "Quiz is not published yet")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "Not allowed to access this quiz")
	default:
		util.LogInternalError(ctx, logMessage, err)
	}
}
