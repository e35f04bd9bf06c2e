package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"
	"vidyasetu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dashboardCacheTTL    = 5 * time.Minute
	defaultAnalyticsDays = 30
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	ContentRepo  *repository.ContentRepository
	ResultRepo   *repository.QuizResultRepository
	Redis        *redis.Client
}

func NewProgressService(progressRepo *repository.ProgressRepository, contentRepo *repository.ContentRepository, resultRepo *repository.QuizResultRepository, rdb *redis.Client) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ContentRepo:  contentRepo,
		ResultRepo:   resultRepo,
		Redis:        rdb,
	}
}

// ProgressUpsertRequest is a partial patch: nil means "leave unchanged".
// TimeSpent is an increment, not a replacement.
type ProgressUpsertRequest struct {
	ContentID          uint                  `json:"contentId" binding:"required"`
	Status             *model.ProgressStatus `json:"status"`
	ProgressPercentage *float64              `json:"progressPercentage" binding:"omitempty,min=0,max=100"`
	TimeSpent          *int                  `json:"timeSpent" binding:"omitempty,min=0"`
	Notes              *string               `json:"notes"`
	Bookmarked         *bool                 `json:"bookmarked"`
}

// UpsertProgress creates or patches the (student, content) record.
// LastAccessedAt is refreshed on every call. Marking a record completed
// forces the percentage to 100 and stamps CompletedAt exactly once, so
// re-submitting completion keeps the original timestamp.
func (s *ProgressService) UpsertProgress(studentID, contentID uint, req ProgressUpsertRequest) (*model.Progress, error) {
	if _, err := s.ContentRepo.FindByID(contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByStudentAndContent(studentID, contentID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.Progress{
			StudentID: studentID,
			ContentID: contentID,
			Status:    model.StatusInProgress,
		}
		created = true
	}

	if req.Status != nil {
		progress.Status = *req.Status
	}
	if req.ProgressPercentage != nil {
		progress.ProgressPercentage = *req.ProgressPercentage
	}
	if req.TimeSpent != nil {
		progress.TimeSpent += *req.TimeSpent
	}
	if req.Notes != nil {
		progress.Notes = *req.Notes
	}
	if req.Bookmarked != nil {
		progress.Bookmarked = *req.Bookmarked
	}

	now := time.Now()
	progress.LastAccessedAt = now

	if progress.Status == model.StatusCompleted {
		progress.ProgressPercentage = 100
		if progress.CompletedAt == nil {
			progress.CompletedAt = &now
		}
	}

	if created {
		err = s.ProgressRepo.Create(progress)
	} else {
		err = s.ProgressRepo.Update(progress)
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) ListProgress(studentID uint, f repository.ProgressFilter) ([]model.Progress, error) {
	return s.ProgressRepo.ListByStudent(studentID, f)
}

func (s *ProgressService) GetByContent(studentID, contentID uint) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByStudentAndContent(studentID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// ToggleBookmark flips the bookmark flag without touching the access
// timestamp, so bookmarking does not count as studying. The first toggle
// on a content item lazily creates the record with bookmarked=true.
func (s *ProgressService) ToggleBookmark(studentID, contentID uint) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByStudentAndContent(studentID, contentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if _, err := s.ContentRepo.FindByID(contentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrContentNotFound
			}
			return nil, err
		}
		// Bookmarking alone does not start the lesson.
		progress = &model.Progress{
			StudentID:  studentID,
			ContentID:  contentID,
			Status:     model.StatusNotStarted,
			Bookmarked: true,
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	progress.Bookmarked = !progress.Bookmarked
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// DashboardStats assembles the student's overview. The result is cached
// in Redis for a few minutes since the dashboard is the hottest read.
func (s *ProgressService) DashboardStats(ctx context.Context, studentID uint) (*model.DashboardStats, error) {
	cacheKey := fmt.Sprintf("dashboard:%d", studentID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats model.DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &model.DashboardStats{}
	var err error

	if stats.Overview.TotalLessons, err = s.ProgressRepo.CountByStudent(studentID); err != nil {
		return nil, err
	}
	if stats.Overview.CompletedLessons, err = s.ProgressRepo.CountByStudentAndStatus(studentID, model.StatusCompleted); err != nil {
		return nil, err
	}
	if stats.Overview.InProgressLessons, err = s.ProgressRepo.CountByStudentAndStatus(studentID, model.StatusInProgress); err != nil {
		return nil, err
	}
	if stats.Overview.TotalQuizzes, err = s.ResultRepo.CountByStudent(studentID); err != nil {
		return nil, err
	}
	if stats.Overview.PassedQuizzes, err = s.ResultRepo.CountPassedByStudent(studentID); err != nil {
		return nil, err
	}
	if stats.Overview.AverageScore, err = s.ResultRepo.AveragePercentageByStudent(studentID); err != nil {
		return nil, err
	}
	if stats.Overview.TotalTimeSpent, err = s.ProgressRepo.SumTimeSpent(studentID); err != nil {
		return nil, err
	}

	if stats.RecentProgress, err = s.ProgressRepo.FindRecentByStudent(studentID, 5); err != nil {
		return nil, err
	}
	if stats.RecentQuizzes, err = s.ResultRepo.FindRecentByStudent(studentID, 5); err != nil {
		return nil, err
	}
	if stats.SubjectProgress, err = s.ProgressRepo.SubjectRollup(studentID); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("dashboard cache write failed", zap.Uint("student", studentID), zap.Error(err))
			}
		}
	}
	return stats, nil
}

// Analytics covers the last 30 days of quiz performance and learning
// time, plus the all-time per-subject quiz averages.
func (s *ProgressService) Analytics(studentID uint, days int) (*model.Analytics, error) {
	if days <= 0 {
		days = defaultAnalyticsDays
	}
	since := time.Now().AddDate(0, 0, -days)

	analytics := &model.Analytics{}
	var err error

	if analytics.QuizPerformance, err = s.ResultRepo.PerformanceSince(studentID, since); err != nil {
		return nil, err
	}
	if analytics.LearningTime, err = s.ProgressRepo.DailyLearningTime(studentID, since); err != nil {
		return nil, err
	}
	if analytics.SubjectPerformance, err = s.ResultRepo.SubjectPerformance(studentID); err != nil {
		return nil, err
	}
	return analytics, nil
}
