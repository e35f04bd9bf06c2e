package repository

import (
	"errors"

	"vidyasetu_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// ContentFilter narrows the public listing. Zero values mean "no filter".
type ContentFilter struct {
	Subject     model.Subject
	Grade       string
	ContentType model.ContentType
	Difficulty  model.Difficulty
	Search      string
	Page        int
	Limit       int
	Sort        string
}

// listing sort keys accepted from the query string, mapped to columns.
var contentSortColumns = map[string]string{
	"createdAt":  "created_at asc",
	"-createdAt": "created_at desc",
	"title":      "title asc",
	"-title":     "title desc",
	"views":      "views asc",
	"-views":     "views desc",
	"order":      "sort_order asc",
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "role")
	}).First(&content, id).Error
	if err != nil {
		return nil, err
	}

	content.LikeCount, err = r.LikeCount(id)
	return &content, err
}

// ListPublished returns only published items; unpublished content is never
// visible through the public listing.
func (r *ContentRepository) ListPublished(f ContentFilter) ([]model.Content, int64, error) {
	var contents []model.Content
	var total int64

	query := r.DB.Model(&model.Content{}).Where("is_published = ?", true)

	if f.Subject != "" {
		query = query.Where("subject = ?", f.Subject)
	}
	if f.Grade != "" {
		query = query.Where("grade = ?", f.Grade)
	}
	if f.ContentType != "" {
		query = query.Where("content_type = ?", f.ContentType)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := contentSortColumns[f.Sort]
	if !ok {
		order = contentSortColumns["-createdAt"]
	}

	offset := (f.Page - 1) * f.Limit
	err := query.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).Order(order).Offset(offset).Limit(f.Limit).Find(&contents).Error
	return contents, total, err
}

func (r *ContentRepository) Update(content *model.Content) error {
	return r.DB.Save(content).Error
}

func (r *ContentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Content{}, id).Error
}

// IncrementViews bumps the counter atomically in the database instead of
// read-then-save.
func (r *ContentRepository) IncrementViews(id uint) error {
	return r.DB.Model(&model.Content{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *ContentRepository) IncrementDownloads(id uint) error {
	return r.DB.Model(&model.Content{}).Where("id = ?", id).
		Update("downloads", gorm.Expr("downloads + 1")).Error
}

// ToggleLike flips the user's like inside one transaction: delete the row if
// present, insert it otherwise. Returns whether the content is now liked.
func (r *ContentRepository) ToggleLike(contentID, userID uint) (bool, error) {
	liked := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var like model.ContentLike
		err := tx.Where("content_id = ? AND user_id = ?", contentID, userID).
			First(&like).Error
		if err == nil {
			return tx.Unscoped().Delete(&like).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		liked = true
		return tx.Create(&model.ContentLike{ContentID: contentID, UserID: userID}).Error
	})
	return liked, err
}

func (r *ContentRepository) LikeCount(contentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ContentLike{}).
		Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}

func (r *ContentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Content{}).Count(&count).Error
	return count, err
}

func (r *ContentRepository) CountPublished() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Content{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

func (r *ContentRepository) CountByType() ([]model.ContentTypeCount, error) {
	var rows []model.ContentTypeCount
	err := r.DB.Model(&model.Content{}).
		Select("content_type, COUNT(*) as count").
		Group("content_type").
		Scan(&rows).Error
	return rows, err
}

func (r *ContentRepository) FindRecent(limit int) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).Order("created_at desc").Limit(limit).Find(&contents).Error
	return contents, err
}
