package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Weekly quiz variant kinds.
const (
	QuizTypeMain      = "main"
	QuizTypeRefresher = "refresher"
	QuizTypeDynamic   = "dynamic"
)

// WeeklyQuiz is a generated question set for one course week. main and
// refresher quizzes have at most one current instance per (course, week,
// kind); saving a new one replaces the previous. dynamic quizzes are
// personalized and append-only, the most recent instance is the current one.
type WeeklyQuiz struct {
	ID          string                      `gorm:"primaryKey" json:"id"`
	CourseID    string                      `gorm:"not null;index:idx_quiz_scope" json:"course_id"`
	WeekNumber  int                         `gorm:"not null;index:idx_quiz_scope" json:"week_number"`
	QuizType    string                      `gorm:"not null;index:idx_quiz_scope" json:"quiz_type"`
	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `json:"description,omitempty"`
	Questions   []QuizQuestion              `gorm:"foreignKey:QuizID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions,omitempty"`
	TopicIDs    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"topic_ids"`
	MaxScore    int                         `gorm:"not null" json:"max_score"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`
}

type QuizQuestion struct {
	ID         uint                        `gorm:"primarykey" json:"-"`
	QuizID     string                      `gorm:"not null;index" json:"-"`
	QuestionID string                      `gorm:"not null" json:"id"`
	Text       string                      `gorm:"type:text;not null" json:"question"`
	Options    datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"options"`
	// Index into Options; always within range, enforced at decode time.
	CorrectIndex    int            `gorm:"not null" json:"correct_index"`
	TopicID         string         `json:"topic_id,omitempty"`
	TopicTitle      string         `json:"topic_title,omitempty"`
	ConceptID       string         `json:"concept_id,omitempty"`
	DifficultyLevel string         `json:"difficulty_level,omitempty"`
	IsBonus         bool           `json:"is_bonus,omitempty"`
	Position        int            `gorm:"not null" json:"position"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// WeeklyQuizAttempt records one graded weekly quiz submission together with
// the analysis snapshot computed at grading time. The mastery aggregator
// refolds these snapshots, it never re-grades raw answers.
type WeeklyQuizAttempt struct {
	ID          string                             `gorm:"primaryKey" json:"id"`
	StudentID   string                             `gorm:"not null;index:idx_quiz_attempt_scope" json:"student_id"`
	CourseID    string                             `gorm:"not null;index:idx_quiz_attempt_scope" json:"course_id"`
	WeekNumber  int                                `gorm:"not null;index:idx_quiz_attempt_scope" json:"week_number"`
	QuizID      string                             `gorm:"not null" json:"quiz_id"`
	QuizType    string                             `gorm:"not null" json:"quiz_type"`
	Answers     datatypes.JSONType[map[string]int] `gorm:"type:jsonb" json:"answers"`
	Score       int                                `gorm:"not null" json:"score"`
	MaxScore    int                                `gorm:"not null" json:"max_score"`
	Percentage  float64                            `gorm:"not null" json:"percentage"`
	Analysis    datatypes.JSONType[QuizAnalysis]   `gorm:"type:jsonb" json:"analysis"`
	CompletedAt time.Time                          `json:"completed_at"`
	CreatedAt   time.Time                          `json:"-"`
	UpdatedAt   time.Time                          `json:"-"`
	DeletedAt   gorm.DeletedAt                     `gorm:"index" json:"-"`
}
