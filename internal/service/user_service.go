package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"
	"vidyasetu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const statsCacheKey = "platform:statistics"
const statsCacheTTL = 10 * time.Minute

type UserService struct {
	UserRepo    *repository.UserRepository
	ContentRepo *repository.ContentRepository
	QuizRepo    *repository.QuizRepository
	ResultRepo  *repository.QuizResultRepository
	Redis       *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, contentRepo *repository.ContentRepository, quizRepo *repository.QuizRepository, resultRepo *repository.QuizResultRepository, rdb *redis.Client) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		ContentRepo: contentRepo,
		QuizRepo:    quizRepo,
		ResultRepo:  resultRepo,
		Redis:       rdb,
	}
}

func (s *UserService) ListUsers(role model.UserRole, search string, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(role, search, page, limit)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UserUpdateRequest is a partial patch: nil means "leave unchanged".
// Email and password are not editable here.
type UserUpdateRequest struct {
	Name     *string         `json:"name"`
	Role     *model.UserRole `json:"role" binding:"omitempty,oneof=student teacher admin"`
	Grade    *string         `json:"grade"`
	School   *string         `json:"school"`
	Location *string         `json:"location"`
	IsActive *bool           `json:"isActive"`
}

func (s *UserService) UpdateUser(id uint, req UserUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Grade != nil {
		user.Grade = *req.Grade
	}
	if req.School != nil {
		user.School = *req.School
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(id uint) error {
	if _, err := s.UserRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.UserRepo.Delete(id)
}

// PlatformStatistics assembles the admin overview, cached in Redis since
// the counts span every table.
func (s *UserService) PlatformStatistics(ctx context.Context) (*model.PlatformStatistics, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats model.PlatformStatistics
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &model.PlatformStatistics{}
	var err error

	if stats.Users.Total, err = s.UserRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Users.Students, err = s.UserRepo.CountByRole(model.Student); err != nil {
		return nil, err
	}
	if stats.Users.Teachers, err = s.UserRepo.CountByRole(model.Teacher); err != nil {
		return nil, err
	}
	if stats.Users.Active, err = s.UserRepo.CountActive(); err != nil {
		return nil, err
	}

	if stats.Content.Total, err = s.ContentRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Content.Published, err = s.ContentRepo.CountPublished(); err != nil {
		return nil, err
	}
	if stats.Content.ByType, err = s.ContentRepo.CountByType(); err != nil {
		return nil, err
	}

	if stats.Quizzes.Total, err = s.QuizRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Quizzes.Published, err = s.QuizRepo.CountPublished(); err != nil {
		return nil, err
	}
	if stats.Quizzes.Attempts, err = s.ResultRepo.Count(); err != nil {
		return nil, err
	}

	if stats.RecentActivity.Users, err = s.UserRepo.FindRecent(5); err != nil {
		return nil, err
	}
	if stats.RecentActivity.Content, err = s.ContentRepo.FindRecent(5); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				logger.Log.Warn("statistics cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}
