package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title            string     `gorm:"size:200;not null" json:"title"`
	Description      string     `gorm:"size:1000;not null" json:"description"`
	Subject          Subject    `gorm:"size:50;not null;index:idx_quiz_listing" json:"subject"`
	Grade            string     `gorm:"size:10;not null;index:idx_quiz_listing" json:"grade"`
	RelatedContentID *uint      `gorm:"index" json:"relatedContentId,omitempty"`
	RelatedContent   *Content   `gorm:"foreignKey:RelatedContentID" json:"relatedContent,omitempty"`
	Questions        []Question `gorm:"foreignKey:QuizID" json:"questions"`
	Duration         int        `gorm:"default:30" json:"duration"`     // minutes
	PassingScore     float64    `gorm:"default:60" json:"passingScore"` // percentage
	TotalPoints      int        `gorm:"default:0" json:"totalPoints"`   // derived from questions
	Difficulty       Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	IsPublished      bool       `gorm:"default:false;index:idx_quiz_listing" json:"isPublished"`
	Attempts         int64      `gorm:"default:0" json:"attempts"`
	CreatedByID      uint       `gorm:"not null;index" json:"createdById"`
	CreatedBy        *User      `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Tags             StringList `gorm:"size:500" json:"tags"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// ComputeTotalPoints derives the quiz total from its questions. Questions
// with no explicit points count as 1. Grading divides by this value, so it
// must be recomputed before every persist that touches the question list.
func (q *Quiz) ComputeTotalPoints() {
	total := 0
	for _, question := range q.Questions {
		if question.Points <= 0 {
			total++
			continue
		}
		total += question.Points
	}
	q.TotalPoints = total
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint             `gorm:"not null;index" json:"quizId"`
	QuestionText  string           `gorm:"size:2000;not null" json:"questionText"`
	QuestionType  QuestionType     `gorm:"size:20;not null" json:"questionType"`
	Options       []QuestionOption `gorm:"foreignKey:QuestionID" json:"options"`
	CorrectAnswer string           `gorm:"size:1000;not null" json:"correctAnswer"`
	Explanation   string           `gorm:"size:2000" json:"explanation"`
	Points        int              `gorm:"default:1" json:"points"`
	Order         int              `gorm:"column:sort_order;default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Text       string `gorm:"size:1000;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
