package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

type Subject string

const (
	SubjectMathematics      Subject = "Mathematics"
	SubjectScience          Subject = "Science"
	SubjectEnglish          Subject = "English"
	SubjectSocialStudies    Subject = "Social Studies"
	SubjectHindi            Subject = "Hindi"
	SubjectComputerScience  Subject = "Computer Science"
	SubjectGeneralKnowledge Subject = "General Knowledge"
	SubjectOther            Subject = "Other"
)

type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
	ContentPDF   ContentType = "pdf"
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionTrueFalse   QuestionType = "true-false"
	QuestionShortAnswer QuestionType = "short-answer"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not-started"
	StatusInProgress ProgressStatus = "in-progress"
	StatusCompleted  ProgressStatus = "completed"
)
