package model

import "time"

// Progress is one student's state on one content item. The unique
// (student, content) pair is the upsert key.
//
// swagger:model Progress
type Progress struct {
	BaseModel
	StudentID          uint           `gorm:"not null;uniqueIndex:idx_student_content" json:"studentId"`
	ContentID          uint           `gorm:"not null;uniqueIndex:idx_student_content" json:"contentId"`
	Content            *Content       `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	Status             ProgressStatus `gorm:"size:20;default:'not-started';index:idx_student_status,priority:2" json:"status"`
	ProgressPercentage float64        `gorm:"default:0" json:"progressPercentage"`
	TimeSpent          int            `gorm:"default:0" json:"timeSpent"` // cumulative minutes
	LastAccessedAt     time.Time      `json:"lastAccessedAt"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty"`
	Notes              string         `gorm:"size:2000" json:"notes"`
	Bookmarked         bool           `gorm:"default:false" json:"bookmarked"`
}

func (Progress) TableName() string {
	return "progresses"
}
