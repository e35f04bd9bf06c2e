package model

import "time"

// Aggregate row types scanned out of group-by queries and assembled into
// dashboard / analytics / admin statistics payloads.

type DashboardOverview struct {
	TotalLessons      int64   `json:"totalLessons"`
	CompletedLessons  int64   `json:"completedLessons"`
	InProgressLessons int64   `json:"inProgressLessons"`
	TotalQuizzes      int64   `json:"totalQuizzes"`
	PassedQuizzes     int64   `json:"passedQuizzes"`
	AverageScore      float64 `json:"averageScore"`
	TotalTimeSpent    int64   `json:"totalTimeSpent"`
}

type SubjectProgress struct {
	Subject     Subject `gorm:"column:subject" json:"subject"`
	Total       int64   `gorm:"column:total" json:"total"`
	Completed   int64   `gorm:"column:completed" json:"completed"`
	AvgProgress float64 `gorm:"column:avg_progress" json:"avgProgress"`
}

type DashboardStats struct {
	Overview        DashboardOverview `json:"overview"`
	RecentProgress  []Progress        `json:"recentProgress"`
	RecentQuizzes   []QuizResult      `json:"recentQuizzes"`
	SubjectProgress []SubjectProgress `json:"subjectProgress"`
}

type QuizPerformancePoint struct {
	QuizID      uint      `gorm:"column:quiz_id" json:"quizId"`
	QuizTitle   string    `gorm:"column:quiz_title" json:"quizTitle"`
	Subject     Subject   `gorm:"column:subject" json:"subject"`
	Percentage  float64   `gorm:"column:percentage" json:"percentage"`
	SubmittedAt time.Time `gorm:"column:submitted_at" json:"submittedAt"`
}

type DailyLearningTime struct {
	Date      string `gorm:"column:date" json:"date"` // YYYY-MM-DD
	TotalTime int64  `gorm:"column:total_time" json:"totalTime"`
}

type SubjectPerformance struct {
	Subject       Subject `gorm:"column:subject" json:"subject"`
	AverageScore  float64 `gorm:"column:average_score" json:"averageScore"`
	TotalAttempts int64   `gorm:"column:total_attempts" json:"totalAttempts"`
	Passed        int64   `gorm:"column:passed" json:"passed"`
}

type Analytics struct {
	QuizPerformance    []QuizPerformancePoint `json:"quizPerformance"`
	LearningTime       []DailyLearningTime    `json:"learningTime"`
	SubjectPerformance []SubjectPerformance   `json:"subjectPerformance"`
}

type ContentTypeCount struct {
	ContentType ContentType `gorm:"column:content_type" json:"contentType"`
	Count       int64       `gorm:"column:count" json:"count"`
}

type UserStatistics struct {
	Total    int64 `json:"total"`
	Students int64 `json:"students"`
	Teachers int64 `json:"teachers"`
	Active   int64 `json:"active"`
}

type ContentStatistics struct {
	Total     int64              `json:"total"`
	Published int64              `json:"published"`
	ByType    []ContentTypeCount `json:"byType"`
}

type QuizStatistics struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Attempts  int64 `json:"attempts"`
}

type RecentActivity struct {
	Users   []User    `json:"users"`
	Content []Content `json:"content"`
}

type PlatformStatistics struct {
	Users          UserStatistics    `json:"users"`
	Content        ContentStatistics `json:"content"`
	Quizzes        QuizStatistics    `json:"quizzes"`
	RecentActivity RecentActivity    `json:"recentActivity"`
}
