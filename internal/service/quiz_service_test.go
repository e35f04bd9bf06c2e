package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"
	"vidyasetu_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newQuizService(t *testing.T) (*QuizService, *gorm.DB) {
	db := setupTestDB(t)
	return NewQuizService(repository.NewQuizRepository(db), repository.NewQuizResultRepository(db)), db
}

func seedQuiz(t *testing.T, svc *QuizService, published bool) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		Title:        "Fractions basics",
		Description:  "Adding and comparing fractions",
		Subject:      model.SubjectMathematics,
		Grade:        "6",
		Duration:     15,
		PassingScore: 60,
		Difficulty:   model.DifficultyBeginner,
		CreatedByID:  1,
		Questions: []model.Question{
			{
				QuestionText:  "1/2 + 1/4 = ?",
				QuestionType:  model.QuestionMCQ,
				CorrectAnswer: "3/4",
				Points:        2,
				Options: []model.QuestionOption{
					{Text: "3/4", IsCorrect: true},
					{Text: "2/6"},
				},
			},
			{
				QuestionText:  "Is 1/3 greater than 1/2?",
				QuestionType:  model.QuestionTrueFalse,
				CorrectAnswer: "false",
				Points:        1,
			},
			{
				QuestionText:  "Name the top number of a fraction.",
				QuestionType:  model.QuestionShortAnswer,
				CorrectAnswer: "Numerator",
				Points:        2,
			},
		},
	}
	if err := svc.CreateQuiz(quiz); err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}
	if published {
		quiz.IsPublished = true
		if err := svc.QuizRepo.Save(quiz); err != nil {
			t.Fatalf("failed to publish quiz: %v", err)
		}
	}
	return quiz
}

func TestGradeQuiz(t *testing.T) {
	quiz := &model.Quiz{
		Questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 1}, CorrectAnswer: "3/4", Points: 2},
			{BaseModel: model.BaseModel{ID: 2}, CorrectAnswer: "false", Points: 1},
			{BaseModel: model.BaseModel{ID: 3}, CorrectAnswer: "Numerator", Points: 2},
		},
	}

	tests := []struct {
		name      string
		answers   []SubmittedAnswer
		wantScore int
		wantCount int
	}{
		{
			name: "all correct",
			answers: []SubmittedAnswer{
				{QuestionID: 1, Answer: "3/4"},
				{QuestionID: 2, Answer: "false"},
				{QuestionID: 3, Answer: "Numerator"},
			},
			wantScore: 5,
			wantCount: 3,
		},
		{
			name: "case and whitespace are forgiven",
			answers: []SubmittedAnswer{
				{QuestionID: 2, Answer: "  FALSE "},
				{QuestionID: 3, Answer: "numerator"},
			},
			wantScore: 3,
			wantCount: 2,
		},
		{
			name: "wrong answers earn zero",
			answers: []SubmittedAnswer{
				{QuestionID: 1, Answer: "2/6"},
				{QuestionID: 2, Answer: "true"},
			},
			wantScore: 0,
			wantCount: 2,
		},
		{
			name: "unknown question ids are skipped",
			answers: []SubmittedAnswer{
				{QuestionID: 99, Answer: "3/4"},
				{QuestionID: 1, Answer: "3/4"},
			},
			wantScore: 2,
			wantCount: 1,
		},
		{
			name:      "empty submission",
			answers:   nil,
			wantScore: 0,
			wantCount: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			graded, score := GradeQuiz(quiz, tc.answers)
			if score != tc.wantScore {
				t.Errorf("score = %d, want %d", score, tc.wantScore)
			}
			if len(graded) != tc.wantCount {
				t.Errorf("graded answers = %d, want %d", len(graded), tc.wantCount)
			}
			for _, g := range graded {
				if g.IsCorrect && g.PointsEarned == 0 {
					t.Errorf("question %d marked correct but earned 0", g.QuestionID)
				}
				if !g.IsCorrect && g.PointsEarned != 0 {
					t.Errorf("question %d marked wrong but earned %d", g.QuestionID, g.PointsEarned)
				}
			}
		})
	}
}

func TestSubmitQuizGradesAndNumbersAttempts(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, true)

	submission := QuizSubmission{
		StartedAt: time.Now().Add(-10 * time.Minute).Format(time.RFC3339),
		Answers: []SubmittedAnswer{
			{QuestionID: quiz.Questions[0].ID, Answer: "3/4"},
			{QuestionID: quiz.Questions[1].ID, Answer: "true"},
			{QuestionID: quiz.Questions[2].ID, Answer: "numerator"},
		},
	}

	first, err := svc.SubmitQuiz(quiz.ID, 7, submission)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if first.Score != 4 {
		t.Errorf("score = %d, want 4", first.Score)
	}
	if first.TotalPoints != 5 {
		t.Errorf("totalPoints = %d, want 5", first.TotalPoints)
	}
	if first.Percentage != 80 {
		t.Errorf("percentage = %v, want 80", first.Percentage)
	}
	if !first.Passed {
		t.Error("expected 80% to pass a 60% threshold")
	}
	if first.AttemptNumber != 1 {
		t.Errorf("attemptNumber = %d, want 1", first.AttemptNumber)
	}
	if first.TimeTaken != 10 {
		t.Errorf("timeTaken = %d, want 10", first.TimeTaken)
	}
	if len(first.Review) != 3 {
		t.Fatalf("review entries = %d, want 3", len(first.Review))
	}
	if first.Review[2].CorrectAnswer != "Numerator" || !first.Review[2].IsCorrect {
		t.Errorf("review[2] = %+v, want the key revealed after grading", first.Review[2])
	}

	second, err := svc.SubmitQuiz(quiz.ID, 7, submission)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if second.AttemptNumber != 2 {
		t.Errorf("attemptNumber = %d, want 2", second.AttemptNumber)
	}

	// another student starts back at 1
	other, err := svc.SubmitQuiz(quiz.ID, 8, submission)
	if err != nil {
		t.Fatalf("other student submit failed: %v", err)
	}
	if other.AttemptNumber != 1 {
		t.Errorf("other student attemptNumber = %d, want 1", other.AttemptNumber)
	}

	reloaded, err := svc.QuizRepo.FindByID(quiz.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Attempts != 3 {
		t.Errorf("quiz attempts = %d, want 3", reloaded.Attempts)
	}
}

func TestSubmitQuizRejectsBadStartedAt(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, true)

	for _, startedAt := range []string{
		"not-a-timestamp",
		time.Now().Add(2 * time.Hour).Format(time.RFC3339),
		"",
	} {
		_, err := svc.SubmitQuiz(quiz.ID, 7, QuizSubmission{StartedAt: startedAt})
		if !errors.Is(err, util.ErrInvalidStartedAt) {
			t.Errorf("startedAt %q: got %v, want ErrInvalidStartedAt", startedAt, err)
		}
	}
}

func TestSubmitQuizRequiresPublished(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, false)

	_, err := svc.SubmitQuiz(quiz.ID, 7, QuizSubmission{
		StartedAt: time.Now().Format(time.RFC3339),
	})
	if !errors.Is(err, util.ErrQuizNotPublished) {
		t.Errorf("got %v, want ErrQuizNotPublished", err)
	}
}

func TestQuizViewHidesAnswerKeys(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, true)

	view, err := svc.GetQuiz(quiz.ID, &util.Claims{UserID: 42, Role: model.Student})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	payload, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, leaked := range []string{"correctAnswer", "isCorrect", "explanation", "Numerator"} {
		if strings.Contains(string(payload), leaked) {
			t.Errorf("student view leaks %q: %s", leaked, payload)
		}
	}
	if len(view.Questions) != 3 {
		t.Errorf("questions = %d, want 3", len(view.Questions))
	}
	if view.TotalPoints != 5 {
		t.Errorf("totalPoints = %d, want 5", view.TotalPoints)
	}
}

func TestUnpublishedQuizHiddenFromStudents(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, false)

	if _, err := svc.GetQuiz(quiz.ID, &util.Claims{UserID: 42, Role: model.Student}); !errors.Is(err, util.ErrQuizNotPublished) {
		t.Errorf("student: got %v, want ErrQuizNotPublished", err)
	}
	if _, err := svc.GetQuiz(quiz.ID, &util.Claims{UserID: quiz.CreatedByID, Role: model.Teacher}); err != nil {
		t.Errorf("owner: unexpected error %v", err)
	}
}

func TestGetFullQuizIsOwnerOrAdminOnly(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, true)

	if _, err := svc.GetFullQuiz(quiz.ID, &util.Claims{UserID: 42, Role: model.Student}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("student: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.GetFullQuiz(quiz.ID, &util.Claims{UserID: 42, Role: model.Teacher}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("other teacher: got %v, want ErrPermissionDenied", err)
	}

	full, err := svc.GetFullQuiz(quiz.ID, &util.Claims{UserID: 99, Role: model.Admin})
	if err != nil {
		t.Fatalf("admin: unexpected error %v", err)
	}
	if full.Questions[0].CorrectAnswer == "" {
		t.Error("full view should include answer keys")
	}
}

func TestUpdateQuizReplacesQuestionsAndTotals(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, true)

	updated, err := svc.UpdateQuiz(quiz.ID, &util.Claims{UserID: quiz.CreatedByID, Role: model.Teacher}, QuizUpdateRequest{
		Questions: []model.Question{
			{QuestionText: "2+2?", QuestionType: model.QuestionShortAnswer, CorrectAnswer: "4", Points: 3},
			{QuestionText: "3+3?", QuestionType: model.QuestionShortAnswer, CorrectAnswer: "6"}, // no points, counts as 1
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Questions) != 2 {
		t.Errorf("questions = %d, want 2", len(updated.Questions))
	}
	if updated.TotalPoints != 4 {
		t.Errorf("totalPoints = %d, want 4", updated.TotalPoints)
	}
}

func TestSubmittedResultSurvivesQuizEdit(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc, true)

	result, err := svc.SubmitQuiz(quiz.ID, 7, QuizSubmission{
		StartedAt: time.Now().Add(-time.Minute).Format(time.RFC3339),
		Answers:   []SubmittedAnswer{{QuestionID: quiz.Questions[0].ID, Answer: "3/4"}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.UpdateQuiz(quiz.ID, &util.Claims{UserID: quiz.CreatedByID, Role: model.Teacher}, QuizUpdateRequest{
		Questions: []model.Question{
			{QuestionText: "new", QuestionType: model.QuestionShortAnswer, CorrectAnswer: "x", Points: 10},
		},
	}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	stored, err := svc.ResultRepo.FindByID(result.ID)
	if err != nil {
		t.Fatalf("reload result failed: %v", err)
	}
	if stored.TotalPoints != 5 {
		t.Errorf("stored totalPoints = %d, want the snapshot 5", stored.TotalPoints)
	}
}
