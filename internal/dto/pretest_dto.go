package dto

import (
	"time"

	"github.com/lmnhat/Goldcrest/internal/model"
)

// QuestionDTO is the student-facing question shape. The correct option index
// is deliberately absent.
type QuestionDTO struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	TopicID         string   `json:"topicId,omitempty"`
	TopicTitle      string   `json:"topicTitle,omitempty"`
	ConceptID       string   `json:"conceptId,omitempty"`
	DifficultyLevel string   `json:"difficultyLevel,omitempty"`
	IsBonus         bool     `json:"isBonus,omitempty"`
}

type PretestDTO struct {
	ID        string        `json:"id"`
	CourseID  string        `json:"courseId"`
	Questions []QuestionDTO `json:"questions"`
	MaxScore  int           `json:"maxScore"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PretestSubmissionRequest struct {
	StudentID string         `json:"studentId" binding:"required"`
	CourseID  string         `json:"courseId" binding:"required"`
	PretestID string         `json:"pretestId" binding:"required"`
	Answers   map[string]int `json:"answers" binding:"required"`
}

type PretestAttemptDTO struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"studentId"`
	CourseID    string         `json:"courseId"`
	PretestID   string         `json:"pretestId"`
	Answers     map[string]int `json:"answers"`
	Score       int            `json:"score"`
	MaxScore    int            `json:"maxScore"`
	Percentage  float64        `json:"percentage"`
	CompletedAt time.Time      `json:"completedAt"`
}

type PretestResultDTO struct {
	Attempt        PretestAttemptDTO     `json:"attempt"`
	Analysis       model.QuizAnalysis    `json:"analysis"`
	Recommendation *model.Recommendation `json:"recommendation,omitempty"`
}
