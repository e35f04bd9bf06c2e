package model

import "time"

// QuizResult is an immutable record of one graded attempt. TotalPoints and
// Percentage are frozen at submission time; editing the quiz afterwards does
// not rewrite history.
//
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	QuizID        uint         `gorm:"not null;index:idx_student_quiz,priority:2" json:"quizId"`
	Quiz          *Quiz        `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentID     uint         `gorm:"not null;index:idx_student_quiz,priority:1;index:idx_student_submitted,priority:1" json:"studentId"`
	Answers       []QuizAnswer `gorm:"foreignKey:QuizResultID" json:"answers"`
	Score         int          `gorm:"not null" json:"score"`
	TotalPoints   int          `gorm:"not null" json:"totalPoints"`
	Percentage    float64      `gorm:"not null" json:"percentage"`
	Passed        bool         `gorm:"default:false" json:"passed"`
	TimeTaken     int          `gorm:"default:0" json:"timeTaken"` // minutes
	StartedAt     time.Time    `gorm:"not null" json:"startedAt"`
	SubmittedAt   time.Time    `gorm:"not null;index:idx_student_submitted,priority:2" json:"submittedAt"`
	AttemptNumber int          `gorm:"default:1" json:"attemptNumber"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// swagger:model QuizAnswer
type QuizAnswer struct {
	BaseModel
	QuizResultID uint   `gorm:"not null;index" json:"quizResultId"`
	QuestionID   uint   `gorm:"not null" json:"questionId"`
	UserAnswer   string `gorm:"size:1000;not null" json:"userAnswer"`
	IsCorrect    bool   `gorm:"not null" json:"isCorrect"`
	PointsEarned int    `gorm:"default:0" json:"pointsEarned"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
