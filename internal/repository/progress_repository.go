package repository

import (
	"time"

	"vidyasetu_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

type ProgressFilter struct {
	Status  model.ProgressStatus
	Subject model.Subject
	Grade   string
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) Update(progress *model.Progress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) FindByStudentAndContent(studentID, contentID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("student_id = ? AND content_id = ?", studentID, contentID).
		First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) FindByIDWithContent(id uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Preload("Content", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "subject", "grade", "content_type", "thumbnail", "duration")
	}).First(&progress, id).Error
	return &progress, err
}

// ListByStudent joins content so subject/grade filters apply; newest access
// first.
func (r *ProgressRepository) ListByStudent(studentID uint, f ProgressFilter) ([]model.Progress, error) {
	var records []model.Progress

	query := r.DB.Model(&model.Progress{}).
		Joins("JOIN contents ON contents.id = progresses.content_id").
		Where("progresses.student_id = ?", studentID)

	if f.Status != "" {
		query = query.Where("progresses.status = ?", f.Status)
	}
	if f.Subject != "" {
		query = query.Where("contents.subject = ?", f.Subject)
	}
	if f.Grade != "" {
		query = query.Where("contents.grade = ?", f.Grade)
	}

	err := query.Preload("Content", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "subject", "grade", "content_type", "thumbnail", "duration")
	}).Order("progresses.last_accessed_at desc").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountByStudentAndStatus(studentID uint, status model.ProgressStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Where("student_id = ? AND status = ?", studentID, status).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) SumTimeSpent(studentID uint) (int64, error) {
	var total *int64
	err := r.DB.Model(&model.Progress{}).
		Where("student_id = ?", studentID).
		Select("SUM(time_spent)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *ProgressRepository) FindRecentByStudent(studentID uint, limit int) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.Where("student_id = ?", studentID).
		Preload("Content", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "subject", "grade", "content_type")
		}).
		Order("last_accessed_at desc").Limit(limit).
		Find(&records).Error
	return records, err
}

// SubjectRollup joins progress to content and groups by subject.
func (r *ProgressRepository) SubjectRollup(studentID uint) ([]model.SubjectProgress, error) {
	var rows []model.SubjectProgress
	err := r.DB.Model(&model.Progress{}).
		Select("contents.subject, COUNT(*) as total, SUM(CASE WHEN progresses.status = ? THEN 1 ELSE 0 END) as completed, AVG(progresses.progress_percentage) as avg_progress", model.StatusCompleted).
		Joins("JOIN contents ON contents.id = progresses.content_id").
		Where("progresses.student_id = ?", studentID).
		Group("contents.subject").
		Scan(&rows).Error
	return rows, err
}

// DailyLearningTime buckets accumulated minutes by calendar date of the last
// access, within the window.
func (r *ProgressRepository) DailyLearningTime(studentID uint, since time.Time) ([]model.DailyLearningTime, error) {
	var rows []model.DailyLearningTime
	err := r.DB.Model(&model.Progress{}).
		Select("DATE(last_accessed_at) as date, SUM(time_spent) as total_time").
		Where("student_id = ? AND last_accessed_at >= ?", studentID, since).
		Group("DATE(last_accessed_at)").
		Order("date asc").
		Scan(&rows).Error
	return rows, err
}
