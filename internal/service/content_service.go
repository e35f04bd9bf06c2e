package service

import (
	"context"
	"errors"
	"io"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"vidyasetu_backend/internal/config"
	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"
	"vidyasetu_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContentService struct {
	ContentRepo    *repository.ContentRepository
	StorageService *StorageService
	Cfg            *config.Config
}

func NewContentService(contentRepo *repository.ContentRepository, storageService *StorageService, cfg *config.Config) *ContentService {
	return &ContentService{
		ContentRepo:    contentRepo,
		StorageService: storageService,
		Cfg:            cfg,
	}
}

// uploadSubdir mirrors the on-disk layout under /uploads.
func uploadSubdir(contentType model.ContentType) string {
	switch contentType {
	case model.ContentVideo:
		return "videos"
	case model.ContentAudio:
		return "audio"
	case model.ContentPDF:
		return "documents"
	case model.ContentImage:
		return "images"
	default:
		return "misc"
	}
}

func allowedMimeTypes(contentType model.ContentType) []string {
	switch contentType {
	case model.ContentVideo:
		return []string{util.MimeVideo, util.MimeOctetStream}
	case model.ContentAudio:
		return []string{util.MimeAudio, util.MimeVideo, util.MimeOctetStream}
	case model.ContentPDF:
		return []string{util.MimePDF}
	case model.ContentImage:
		return []string{util.MimeImage}
	default:
		return []string{"text/plain", util.MimeOctetStream}
	}
}

func (s *ContentService) storeUpload(ctx context.Context, file *multipart.FileHeader, subdir string, allowed []string) (string, string, error) {
	if file.Size > s.Cfg.Upload.MaxFileSize {
		return "", "", util.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, allowed); err != nil {
		return "", "", err
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := filepath.Ext(file.Filename)
	filename := subdir + "/" + time.Now().Format("20060102150405") + "_" + uuid.NewString() + ext

	url, err := s.StorageService.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", "", err
	}
	return url, filename, nil
}

// CreateContent stores the uploaded assets and persists the record
// unpublished with the caller as immutable owner. For local video uploads
// the duration is probed and a thumbnail generated when the client supplied
// neither.
func (s *ContentService) CreateContent(ctx context.Context, content *model.Content, file, thumbnail *multipart.FileHeader) error {
	if file != nil {
		url, storedName, err := s.storeUpload(ctx, file, uploadSubdir(content.ContentType), allowedMimeTypes(content.ContentType))
		if err != nil {
			return err
		}
		content.FileURL = url
		content.FileSize = file.Size

		if content.ContentType == model.ContentVideo {
			s.enrichVideo(content, storedName)
		}
	}

	if thumbnail != nil {
		url, _, err := s.storeUpload(ctx, thumbnail, "images", []string{util.MimeImage})
		if err != nil {
			return err
		}
		content.Thumbnail = url
	}

	content.IsPublished = false
	return s.ContentRepo.Create(content)
}

// enrichVideo fills duration and thumbnail from the stored file. Best
// effort: a probe failure never fails the upload.
func (s *ContentService) enrichVideo(content *model.Content, storedName string) {
	localPath := s.StorageService.LocalPath(storedName)
	if localPath == "" {
		return
	}

	if content.Duration == 0 {
		if info, err := util.ProbeVideo(localPath); err == nil {
			content.Duration = int(math.Round(info.Duration / 60))
		} else {
			logger.Log.Warn("video probe failed", zap.String("file", storedName), zap.Error(err))
		}
	}

	if content.Thumbnail == "" {
		thumbName := "images/" + strings.TrimSuffix(filepath.Base(storedName), filepath.Ext(storedName)) + ".jpg"
		thumbPath := s.StorageService.LocalPath(thumbName)
		if err := util.GenerateThumbnail(localPath, thumbPath, "00:00:01"); err == nil {
			content.Thumbnail = s.StorageService.GetURL(thumbName)
		} else {
			logger.Log.Warn("thumbnail generation failed", zap.String("file", storedName), zap.Error(err))
		}
	}
}

func (s *ContentService) ListContent(f repository.ContentFilter) ([]model.Content, int64, error) {
	return s.ContentRepo.ListPublished(f)
}

// GetContent fetches one item and bumps its view counter. Mutating a read
// is deliberate: views track popularity.
func (s *ContentService) GetContent(id uint) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	if err := s.ContentRepo.IncrementViews(id); err != nil {
		return nil, err
	}
	content.Views++
	return content, nil
}

// ContentUpdateRequest is a partial patch: nil means "leave unchanged".
type ContentUpdateRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Subject     *model.Subject     `json:"subject"`
	Grade       *string            `json:"grade"`
	ContentType *model.ContentType `json:"contentType"`
	TextContent *string            `json:"textContent"`
	Duration    *int               `json:"duration"`
	Tags        *[]string          `json:"tags"`
	Difficulty  *model.Difficulty  `json:"difficulty"`
	Order       *int               `json:"order"`
}

func (s *ContentService) UpdateContent(id uint, claims *util.Claims, req ContentUpdateRequest) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	if !util.IsOwnerOrAdmin(claims, content.CreatedByID) {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Description != nil {
		content.Description = *req.Description
	}
	if req.Subject != nil {
		content.Subject = *req.Subject
	}
	if req.Grade != nil {
		content.Grade = *req.Grade
	}
	if req.ContentType != nil {
		content.ContentType = *req.ContentType
	}
	if req.TextContent != nil {
		content.TextContent = *req.TextContent
	}
	if req.Duration != nil {
		content.Duration = *req.Duration
	}
	if req.Tags != nil {
		content.Tags = model.StringList(*req.Tags)
	}
	if req.Difficulty != nil {
		content.Difficulty = *req.Difficulty
	}
	if req.Order != nil {
		content.Order = *req.Order
	}

	if err := s.ContentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *ContentService) DeleteContent(id uint, claims *util.Claims) error {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrContentNotFound
		}
		return err
	}

	if !util.IsOwnerOrAdmin(claims, content.CreatedByID) {
		return util.ErrPermissionDenied
	}

	return s.ContentRepo.Delete(id)
}

func (s *ContentService) TogglePublish(id uint, claims *util.Claims) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	if !util.IsOwnerOrAdmin(claims, content.CreatedByID) {
		return nil, util.ErrPermissionDenied
	}

	content.IsPublished = !content.IsPublished
	if err := s.ContentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

// ToggleLike flips the caller's like and returns the new state with the
// resulting like count.
func (s *ContentService) ToggleLike(contentID, userID uint) (bool, int64, error) {
	if _, err := s.ContentRepo.FindByID(contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, util.ErrContentNotFound
		}
		return false, 0, err
	}

	liked, err := s.ContentRepo.ToggleLike(contentID, userID)
	if err != nil {
		return false, 0, err
	}

	count, err := s.ContentRepo.LikeCount(contentID)
	return liked, count, err
}

// IncrementDownload bumps the counter on every call; repeat downloads by the
// same user all count.
func (s *ContentService) IncrementDownload(contentID uint) error {
	if _, err := s.ContentRepo.FindByID(contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrContentNotFound
		}
		return err
	}
	return s.ContentRepo.IncrementDownloads(contentID)
}
