package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentPerformance is the durable mastery profile for one (student, course)
// pair: lifetime per-topic percentages folded from every weekly quiz attempt.
// It is fully recomputed and replaced on every weekly quiz submission; it is
// never updated incrementally.
type StudentPerformance struct {
	ID               uint                                   `gorm:"primarykey" json:"-"`
	StudentID        string                                 `gorm:"not null;index:idx_performance_scope" json:"student_id"`
	CourseID         string                                 `gorm:"not null;index:idx_performance_scope" json:"course_id"`
	Strengths        datatypes.JSONSlice[string]            `gorm:"type:jsonb" json:"strengths"`
	Weaknesses       datatypes.JSONSlice[string]            `gorm:"type:jsonb" json:"weaknesses"`
	TopicPercentages datatypes.JSONType[map[string]float64] `gorm:"type:jsonb" json:"topic_percentages"`
	LastUpdated      time.Time                              `json:"last_updated"`
	CreatedAt        time.Time                              `json:"-"`
	UpdatedAt        time.Time                              `json:"-"`
	DeletedAt        gorm.DeletedAt                         `gorm:"index" json:"-"`
}
