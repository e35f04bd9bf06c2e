package repository

import (
	"vidyasetu_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

type QuizFilter struct {
	Subject    model.Subject
	Grade      string
	Difficulty model.Difficulty
	Page       int
	Limit      int
	Sort       string
}

var quizSortColumns = map[string]string{
	"createdAt":  "created_at asc",
	"-createdAt": "created_at desc",
	"title":      "title asc",
	"-title":     "title desc",
	"attempts":   "attempts asc",
	"-attempts":  "attempts desc",
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Questions.Options").
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("RelatedContent", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "subject")
		}).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) ListPublished(f QuizFilter) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	query := r.DB.Model(&model.Quiz{}).Where("is_published = ?", true)

	if f.Subject != "" {
		query = query.Where("subject = ?", f.Subject)
	}
	if f.Grade != "" {
		query = query.Where("grade = ?", f.Grade)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := quizSortColumns[f.Sort]
	if !ok {
		order = quizSortColumns["-createdAt"]
	}

	offset := (f.Page - 1) * f.Limit
	err := query.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Questions.Options").
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("RelatedContent", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "subject")
		}).
		Order(order).Offset(offset).Limit(f.Limit).Find(&quizzes).Error
	return quizzes, total, err
}

// Save persists scalar fields only.
func (r *QuizRepository) Save(quiz *model.Quiz) error {
	return r.DB.Omit("Questions").Save(quiz).Error
}

// ReplaceQuestions swaps the embedded question list and the recomputed total
// in a single transaction, so grading can never observe a quiz whose total
// disagrees with its questions.
func (r *QuizRepository) ReplaceQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var oldIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).
			Pluck("id", &oldIDs).Error; err != nil {
			return err
		}
		if len(oldIDs) > 0 {
			if err := tx.Unscoped().Where("question_id IN ?", oldIDs).
				Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).
				Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].QuizID = quiz.ID
			for j := range questions[i].Options {
				questions[i].Options[j].ID = 0
			}
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}

		quiz.Questions = questions
		quiz.ComputeTotalPoints()
		return tx.Omit("Questions").Save(quiz).Error
	})
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func (r *QuizRepository) IncrementAttempts(id uint) error {
	return r.DB.Model(&model.Quiz{}).Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *QuizRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

func (r *QuizRepository) CountPublished() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}
