package model

// TopicPerformance is one topic's line in an analysis breakdown. Topics keep
// the order in which they first appear in the question set.
type TopicPerformance struct {
	TopicID          string  `json:"topicId"`
	TopicTitle       string  `json:"topicTitle"`
	QuestionsCount   int     `json:"questionsCount"`
	CorrectCount     int     `json:"correctCount"`
	IncorrectCount   int     `json:"incorrectCount,omitempty"`
	Percentage       float64 `json:"percentage"`
	PerformanceLevel string  `json:"performanceLevel"`
}

// QuizAnalysis is the performance report computed when an attempt is graded.
// Strengths and Weaknesses are only populated for pretest analyses.
type QuizAnalysis struct {
	OverallScore     float64            `json:"overallScore"`
	MaxScore         float64            `json:"maxScore"`
	Percentage       float64            `json:"percentage"`
	PerformanceLevel string             `json:"performanceLevel"`
	TopicBreakdown   []TopicPerformance `json:"topicBreakdown"`
	CorrectCount     int                `json:"correctCount"`
	IncorrectCount   int                `json:"incorrectCount"`
	Strengths        []string           `json:"strengths,omitempty"`
	Weaknesses       []string           `json:"weaknesses,omitempty"`
}

// Recommendation is a remediation resource for the weakest topic of an
// analysis. Produced at most once per analysis and never persisted.
type Recommendation struct {
	TopicID        string `json:"topicId"`
	TopicTitle     string `json:"topicTitle"`
	Recommendation string `json:"recommendation"`
	ResourceURL    string `json:"resourceUrl"`
	ResourceType   string `json:"resourceType"`
}
