package repair

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Question is a decoded, validated question record. It carries no storage
// concerns; callers map it onto their own persistence models.
type Question struct {
	ID              string
	Text            string
	Options         []string
	CorrectIndex    int
	TopicID         string
	TopicTitle      string
	ConceptID       string
	DifficultyLevel string
	IsBonus         bool
}

// Recommendation is a decoded single-object remediation payload.
type Recommendation struct {
	TopicID        string `json:"topicId"`
	TopicTitle     string `json:"topicTitle"`
	Recommendation string `json:"recommendation"`
	ResourceURL    string `json:"resourceUrl"`
	ResourceType   string `json:"resourceType"`
}

type questionPayload struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	CorrectAnswer   *int     `json:"correctAnswer"`
	TopicID         string   `json:"topicId"`
	TopicTitle      string   `json:"topicTitle"`
	ConceptID       string   `json:"conceptId"`
	DifficultyLevel string   `json:"difficultyLevel"`
	IsBonus         bool     `json:"isBonus"`
}

const contextWindow = 50

// DecodeQuestionSet runs the full repair pipeline over generator output and
// returns the validated question list. topicTitles maps topic id to title and
// backfills entries whose topicTitle the generator omitted. The decode is
// all-or-nothing: one bad entry fails the set.
func DecodeQuestionSet(text string, topicTitles map[string]string) ([]Question, error) {
	cleaned, err := Extract(text)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, invalidJSON(cleaned, err)
	}
	if len(payload.Questions) == 0 {
		return nil, &MissingFieldError{Field: "questions"}
	}

	questions := make([]Question, 0, len(payload.Questions))
	for i, raw := range payload.Questions {
		q, err := coerceQuestion(raw, i, topicTitles)
		if err != nil {
			return nil, &CoercionError{Index: i, Err: err}
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// DecodeRecommendation runs the repair pipeline over a single-object
// recommendation payload.
func DecodeRecommendation(text string) (*Recommendation, error) {
	cleaned, err := Extract(text)
	if err != nil {
		return nil, err
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return nil, invalidJSON(cleaned, err)
	}
	if rec.Recommendation == "" {
		return nil, &MissingFieldError{Field: "recommendation"}
	}

	switch rec.ResourceType {
	case "article", "video", "pdf", "course":
	default:
		rec.ResourceType = "article"
	}

	return &rec, nil
}

func coerceQuestion(raw json.RawMessage, index int, topicTitles map[string]string) (Question, error) {
	var p questionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Question{}, err
	}

	if p.Question == "" {
		return Question{}, errors.New("question text is empty")
	}
	if len(p.Options) < 2 {
		return Question{}, fmt.Errorf("question has %d options, need at least 2", len(p.Options))
	}

	correct := 0
	if p.CorrectAnswer != nil {
		correct = *p.CorrectAnswer
	}
	if correct < 0 || correct >= len(p.Options) {
		return Question{}, fmt.Errorf("correct answer index %d is out of range for %d options", correct, len(p.Options))
	}

	q := Question{
		ID:              p.ID,
		Text:            p.Question,
		Options:         p.Options,
		CorrectIndex:    correct,
		TopicID:         p.TopicID,
		TopicTitle:      p.TopicTitle,
		ConceptID:       p.ConceptID,
		DifficultyLevel: p.DifficultyLevel,
		IsBonus:         p.IsBonus,
	}
	if q.ID == "" {
		q.ID = fmt.Sprintf("q_%d", index+1)
	}
	if q.TopicTitle == "" {
		q.TopicTitle = topicTitles[q.TopicID]
	}
	if q.DifficultyLevel == "" {
		q.DifficultyLevel = "medium"
	}

	return q, nil
}

func invalidJSON(cleaned string, err error) error {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	start := offset - contextWindow
	if start < 0 {
		start = 0
	}
	end := offset + contextWindow
	if end > int64(len(cleaned)) {
		end = int64(len(cleaned))
	}

	return &InvalidJSONError{
		Offset:  offset,
		Context: cleaned[start:end],
		Err:     err,
	}
}
