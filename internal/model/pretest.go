package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pretest is the single diagnostic question set for a course. Regenerating a
// pretest replaces the current one; FindByCourse always returns the latest.
type Pretest struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	CourseID  string            `gorm:"not null;index" json:"course_id"`
	Questions []PretestQuestion `gorm:"foreignKey:PretestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions,omitempty"`
	MaxScore  int               `gorm:"not null" json:"max_score"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

type PretestQuestion struct {
	ID         uint                         `gorm:"primarykey" json:"-"`
	PretestID  string                       `gorm:"not null;index" json:"-"`
	QuestionID string                       `gorm:"not null" json:"id"`
	Text       string                       `gorm:"type:text;not null" json:"question"`
	Options    datatypes.JSONSlice[string]  `gorm:"type:jsonb;not null" json:"options"`
	// Index into Options; always within range, enforced at decode time.
	CorrectIndex int            `gorm:"not null" json:"correct_index"`
	TopicID      string         `json:"topic_id,omitempty"`
	TopicTitle   string         `json:"topic_title,omitempty"`
	Position     int            `gorm:"not null" json:"position"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// PretestAttempt records one graded pretest submission.
type PretestAttempt struct {
	ID          string                              `gorm:"primaryKey" json:"id"`
	StudentID   string                              `gorm:"not null;index:idx_pretest_attempt_scope" json:"student_id"`
	CourseID    string                              `gorm:"not null;index:idx_pretest_attempt_scope" json:"course_id"`
	PretestID   string                              `gorm:"not null" json:"pretest_id"`
	Answers     datatypes.JSONType[map[string]int]  `gorm:"type:jsonb" json:"answers"`
	Score       int                                 `gorm:"not null" json:"score"`
	MaxScore    int                                 `gorm:"not null" json:"max_score"`
	Percentage  float64                             `gorm:"not null" json:"percentage"`
	CompletedAt time.Time                           `json:"completed_at"`
	CreatedAt   time.Time                           `json:"-"`
	UpdatedAt   time.Time                           `json:"-"`
	DeletedAt   gorm.DeletedAt                      `gorm:"index" json:"-"`
}
