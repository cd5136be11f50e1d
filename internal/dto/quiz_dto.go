package dto

import (
	"time"

	"github.com/lmnhat/Goldcrest/internal/model"
)

type WeeklyQuizDTO struct {
	ID          string        `json:"id"`
	CourseID    string        `json:"courseId"`
	WeekNumber  int           `json:"weekNumber"`
	QuizType    string        `json:"quizType"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []QuestionDTO `json:"questions"`
	TopicIDs    []string      `json:"topicIds"`
	MaxScore    int           `json:"maxScore"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type QuizSubmissionRequest struct {
	StudentID  string         `json:"studentId" binding:"required"`
	CourseID   string         `json:"courseId" binding:"required"`
	WeekNumber int            `json:"weekNumber" binding:"required"`
	QuizID     string         `json:"quizId" binding:"required"`
	QuizType   string         `json:"quizType" binding:"required,oneof=main refresher dynamic"`
	Answers    map[string]int `json:"answers" binding:"required"`
}

type QuizAttemptDTO struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"studentId"`
	CourseID    string         `json:"courseId"`
	WeekNumber  int            `json:"weekNumber"`
	QuizID      string         `json:"quizId"`
	QuizType    string         `json:"quizType"`
	Answers     map[string]int `json:"answers"`
	Score       int            `json:"score"`
	MaxScore    int            `json:"maxScore"`
	Percentage  float64        `json:"percentage"`
	CompletedAt time.Time      `json:"completedAt"`
}

type QuizSubmissionResponse struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Attempt  QuizAttemptDTO     `json:"attempt"`
	Analysis model.QuizAnalysis `json:"analysis"`
}

type QuizAvailabilityDTO struct {
	WeekNumber            int      `json:"weekNumber"`
	MainQuizAvailable     bool     `json:"mainQuizAvailable"`
	MainQuizCompleted     bool     `json:"mainQuizCompleted"`
	MainQuizScore         *float64 `json:"mainQuizScore,omitempty"`
	RefresherQuizAvailable bool    `json:"refresherQuizAvailable"`
	DynamicQuizAvailable  bool     `json:"dynamicQuizAvailable"`
	DynamicQuizRequired   bool     `json:"dynamicQuizRequired"`
	DynamicQuizCompleted  bool     `json:"dynamicQuizCompleted"`
}

type WeekLockDTO struct {
	WeekNumber int  `json:"weekNumber"`
	Locked     bool `json:"locked"`
}

type PerformanceDTO struct {
	StudentID        string             `json:"studentId"`
	CourseID         string             `json:"courseId"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
	TopicPercentages map[string]float64 `json:"topicPercentages"`
	LastUpdated      time.Time          `json:"lastUpdated"`
}
