package service

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"
	"vidyasetu_backend/pkg/logger"
	"vidyasetu_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	ResultRepo *repository.QuizResultRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, resultRepo *repository.QuizResultRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, ResultRepo: resultRepo}
}

// OptionView is an answer-safe projection of a question option.
type OptionView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionView hides the correct answer and the explanation.
type QuestionView struct {
	ID           uint               `json:"id"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	Options      []OptionView       `json:"options"`
	Points       int                `json:"points"`
	Order        int                `json:"order"`
}

// QuizView is the student-facing shape of a quiz. Scoring fields stay,
// answer keys do not.
type QuizView struct {
	ID               uint             `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Subject          model.Subject    `json:"subject"`
	Grade            string           `json:"grade"`
	RelatedContentID *uint            `json:"relatedContent,omitempty"`
	Questions        []QuestionView   `json:"questions"`
	Duration         int              `json:"duration"`
	PassingScore     float64          `json:"passingScore"`
	TotalPoints      int              `json:"totalPoints"`
	Difficulty       model.Difficulty `json:"difficulty"`
	Attempts         int64            `json:"attempts"`
	IsPublished      bool             `json:"isPublished"`
	Tags             []string         `json:"tags"`
	CreatedByID      uint             `json:"createdBy"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func projectQuiz(quiz *model.Quiz) *QuizView {
	view := &QuizView{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		Subject:          quiz.Subject,
		Grade:            quiz.Grade,
		RelatedContentID: quiz.RelatedContentID,
		Questions:        make([]QuestionView, 0, len(quiz.Questions)),
		Duration:         quiz.Duration,
		PassingScore:     quiz.PassingScore,
		TotalPoints:      quiz.TotalPoints,
		Difficulty:       quiz.Difficulty,
		Attempts:         quiz.Attempts,
		IsPublished:      quiz.IsPublished,
		Tags:             quiz.Tags,
		CreatedByID:      quiz.CreatedByID,
		CreatedAt:        quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		qv := QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Options:      make([]OptionView, 0, len(q.Options)),
			Points:       q.Points,
			Order:        q.Order,
		}
		for _, o := range q.Options {
			qv.Options = append(qv.Options, OptionView{ID: o.ID, Text: o.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

// CreateQuiz persists the quiz unpublished with its total points derived
// from the questions.
func (s *QuizService) CreateQuiz(quiz *model.Quiz) error {
	quiz.IsPublished = false
	quiz.ComputeTotalPoints()
	return s.QuizRepo.Create(quiz)
}

func (s *QuizService) ListQuizzes(f repository.QuizFilter) ([]*QuizView, int64, error) {
	quizzes, total, err := s.QuizRepo.ListPublished(f)
	if err != nil {
		return nil, 0, err
	}
	views := make([]*QuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, projectQuiz(&quizzes[i]))
	}
	return views, total, nil
}

// GetQuiz returns the answer-safe view. Unpublished quizzes are only
// visible to their owner or an admin, and even then without answer keys;
// GetFullQuiz serves the authoring view.
func (s *QuizService) GetQuiz(id uint, claims *util.Claims) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !quiz.IsPublished && !util.IsOwnerOrAdmin(claims, quiz.CreatedByID) {
		return nil, util.ErrQuizNotPublished
	}

	return projectQuiz(quiz), nil
}

// GetFullQuiz returns the quiz with correct answers and explanations.
// Owner or admin only.
func (s *QuizService) GetFullQuiz(id uint, claims *util.Claims) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !util.IsOwnerOrAdmin(claims, quiz.CreatedByID) {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

// QuizUpdateRequest is a partial patch: nil means "leave unchanged".
// Supplying Questions replaces the whole question set.
type QuizUpdateRequest struct {
	Title            *string           `json:"title"`
	Description      *string           `json:"description"`
	Subject          *model.Subject    `json:"subject"`
	Grade            *string           `json:"grade"`
	RelatedContentID *uint             `json:"relatedContent"`
	Duration         *int              `json:"duration"`
	PassingScore     *float64          `json:"passingScore"`
	Difficulty       *model.Difficulty `json:"difficulty"`
	Tags             *[]string         `json:"tags"`
	Questions        []model.Question  `json:"questions"`
}

func (s *QuizService) UpdateQuiz(id uint, claims *util.Claims, req QuizUpdateRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !util.IsOwnerOrAdmin(claims, quiz.CreatedByID) {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Subject != nil {
		quiz.Subject = *req.Subject
	}
	if req.Grade != nil {
		quiz.Grade = *req.Grade
	}
	if req.RelatedContentID != nil {
		quiz.RelatedContentID = req.RelatedContentID
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.Difficulty != nil {
		quiz.Difficulty = *req.Difficulty
	}
	if req.Tags != nil {
		quiz.Tags = model.StringList(*req.Tags)
	}

	if req.Questions != nil {
		if err := s.QuizRepo.ReplaceQuestions(quiz, req.Questions); err != nil {
			return nil, err
		}
	} else if err := s.QuizRepo.Save(quiz); err != nil {
		return nil, err
	}

	return s.QuizRepo.FindByID(id)
}

func (s *QuizService) DeleteQuiz(id uint, claims *util.Claims) error {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}

	if !util.IsOwnerOrAdmin(claims, quiz.CreatedByID) {
		return util.ErrPermissionDenied
	}
	return s.QuizRepo.Delete(id)
}

func (s *QuizService) TogglePublish(id uint, claims *util.Claims) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !util.IsOwnerOrAdmin(claims, quiz.CreatedByID) {
		return nil, util.ErrPermissionDenied
	}

	quiz.IsPublished = !quiz.IsPublished
	if err := s.QuizRepo.Save(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// SubmittedAnswer is one entry of a submission payload.
type SubmittedAnswer struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// QuizSubmission is the submit payload. StartedAt is RFC3339.
type QuizSubmission struct {
	Answers   []SubmittedAnswer `json:"answers" binding:"required"`
	StartedAt string            `json:"startedAt" binding:"required"`
}

func answerMatches(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}

// GradeQuiz scores a submission against the quiz's questions. Answers
// whose question id does not belong to the quiz are skipped, and
// unanswered questions earn zero. Short answers are compared case
// insensitively after trimming whitespace.
func GradeQuiz(quiz *model.Quiz, answers []SubmittedAnswer) (graded []model.QuizAnswer, score int) {
	byID := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		byID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	for _, a := range answers {
		question, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		correct := answerMatches(a.Answer, question.CorrectAnswer)
		earned := 0
		if correct {
			earned = question.Points
			score += earned
		}
		graded = append(graded, model.QuizAnswer{
			QuestionID:   a.QuestionID,
			UserAnswer:   a.Answer,
			IsCorrect:    correct,
			PointsEarned: earned,
		})
	}
	return graded, score
}

// SubmitQuiz grades a submission, stores the attempt and bumps the quiz
// attempt counter. The stored total points snapshot the quiz at
// submission time so later edits do not rewrite history.
// AnswerReview pairs a graded answer with its question's key so the
// caller can render a post-submission review screen.
type AnswerReview struct {
	QuestionID    uint   `json:"questionId"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
	IsCorrect     bool   `json:"isCorrect"`
	PointsEarned  int    `json:"pointsEarned"`
}

type SubmissionResult struct {
	*model.QuizResult
	Review []AnswerReview `json:"review"`
}

func (s *QuizService) SubmitQuiz(quizID, studentID uint, submission QuizSubmission) (*SubmissionResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	now := time.Now()
	startedAt, err := time.Parse(time.RFC3339, submission.StartedAt)
	if err != nil || startedAt.After(now) {
		return nil, util.ErrInvalidStartedAt
	}

	graded, score := GradeQuiz(quiz, submission.Answers)

	percentage := 0.0
	if quiz.TotalPoints > 0 {
		percentage = float64(score) / float64(quiz.TotalPoints) * 100
	}
	passed := percentage >= quiz.PassingScore

	timeTaken := int(math.Round(now.Sub(startedAt).Minutes()))
	if timeTaken < 0 {
		timeTaken = 0
	}

	result := &model.QuizResult{
		QuizID:      quizID,
		StudentID:   studentID,
		Answers:     graded,
		Score:       score,
		TotalPoints: quiz.TotalPoints,
		Percentage:  percentage,
		Passed:      passed,
		TimeTaken:   timeTaken,
		StartedAt:   startedAt,
		SubmittedAt: now,
	}

	if err := s.ResultRepo.CreateNumbered(result); err != nil {
		return nil, err
	}
	// The result is already recorded, a lost counter bump is acceptable.
	if err := s.QuizRepo.IncrementAttempts(quizID); err != nil {
		logger.Log.Warn("failed to bump quiz attempts", zap.Uint("quizId", quizID), zap.Error(err))
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(passed)).Inc()

	byID := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		byID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}
	review := make([]AnswerReview, 0, len(graded))
	for _, a := range graded {
		q := byID[a.QuestionID]
		review = append(review, AnswerReview{
			QuestionID:    a.QuestionID,
			QuestionText:  q.QuestionText,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			IsCorrect:     a.IsCorrect,
			PointsEarned:  a.PointsEarned,
		})
	}

	return &SubmissionResult{QuizResult: result, Review: review}, nil
}

// QuizResults lists the caller's attempts for one quiz, newest first.
func (s *QuizService) QuizResults(quizID, studentID uint) ([]model.QuizResult, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.ResultRepo.ListByQuizAndStudent(quizID, studentID)
}
