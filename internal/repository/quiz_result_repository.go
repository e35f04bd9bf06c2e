package repository

import (
	"time"

	"vidyasetu_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// CreateNumbered assigns the attempt number and inserts the result in one
// transaction, closing the count-then-insert race between concurrent
// submissions by the same student.
func (r *QuizResultRepository) CreateNumbered(result *model.QuizResult) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&model.QuizResult{}).
			Where("quiz_id = ? AND student_id = ?", result.QuizID, result.StudentID).
			Count(&prior).Error; err != nil {
			return err
		}
		result.AttemptNumber = int(prior) + 1
		return tx.Create(result).Error
	})
}

func (r *QuizResultRepository) FindByID(id uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.
		Preload("Answers").
		Preload("Quiz", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "subject", "grade", "passing_score")
		}).
		First(&result, id).Error
	return &result, err
}

// ListByQuizAndStudent returns the caller's own attempts, newest first.
func (r *QuizResultRepository) ListByQuizAndStudent(quizID, studentID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Preload("Answers").
		Preload("Quiz", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "subject", "grade")
		}).
		Order("submitted_at desc").
		Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

func (r *QuizResultRepository) CountPassedByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Where("student_id = ? AND passed = ?", studentID, true).Count(&count).Error
	return count, err
}

func (r *QuizResultRepository) AveragePercentageByStudent(studentID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.QuizResult{}).
		Where("student_id = ?", studentID).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *QuizResultRepository) FindRecentByStudent(studentID uint, limit int) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.
		Where("student_id = ?", studentID).
		Preload("Quiz", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "subject", "grade")
		}).
		Order("submitted_at desc").Limit(limit).
		Find(&results).Error
	return results, err
}

// PerformanceSince is the time-windowed percentage series, oldest first.
func (r *QuizResultRepository) PerformanceSince(studentID uint, since time.Time) ([]model.QuizPerformancePoint, error) {
	var points []model.QuizPerformancePoint
	err := r.DB.Model(&model.QuizResult{}).
		Select("quiz_results.quiz_id, quizzes.title as quiz_title, quizzes.subject, quiz_results.percentage, quiz_results.submitted_at").
		Joins("JOIN quizzes ON quizzes.id = quiz_results.quiz_id").
		Where("quiz_results.student_id = ? AND quiz_results.submitted_at >= ?", studentID, since).
		Order("quiz_results.submitted_at asc").
		Scan(&points).Error
	return points, err
}

// SubjectPerformance groups the student's results by quiz subject.
func (r *QuizResultRepository) SubjectPerformance(studentID uint) ([]model.SubjectPerformance, error) {
	var rows []model.SubjectPerformance
	err := r.DB.Model(&model.QuizResult{}).
		Select("quizzes.subject, AVG(quiz_results.percentage) as average_score, COUNT(*) as total_attempts, SUM(CASE WHEN quiz_results.passed THEN 1 ELSE 0 END) as passed").
		Joins("JOIN quizzes ON quizzes.id = quiz_results.quiz_id").
		Where("quiz_results.student_id = ?", studentID).
		Group("quizzes.subject").
		Scan(&rows).Error
	return rows, err
}

func (r *QuizResultRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).Count(&count).Error
	return count, err
}
