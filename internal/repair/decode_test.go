package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var topicTitles = map[string]string{"t1": "Pointers", "t2": "Slices"}

func TestDecodeQuestionSet(t *testing.T) {
	text := "```json\n" + `{
	  "questions": [
	    {"id": "q_1", "question": "What is a pointer?", "options": ["A", "B", "C", "D"], "correctAnswer": 2, "topicId": "t1", "topicTitle": "Pointers", "difficultyLevel": "easy"},
	    {"question": "What is a slice?", "options": ["A", "B", "C", "D"], "topicId": "t2"}
	  ]
	}` + "\n```"

	questions, err := DecodeQuestionSet(text, topicTitles)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "q_1", questions[0].ID)
	assert.Equal(t, 2, questions[0].CorrectIndex)
	assert.Equal(t, "easy", questions[0].DifficultyLevel)

	// Missing id, correctAnswer, topicTitle and difficulty fall back to
	// defaults rather than failing the set.
	assert.Equal(t, "q_2", questions[1].ID)
	assert.Equal(t, 0, questions[1].CorrectIndex)
	assert.Equal(t, "Slices", questions[1].TopicTitle)
	assert.Equal(t, "medium", questions[1].DifficultyLevel)
}

func TestDecodeQuestionSetInvalidJSON(t *testing.T) {
	_, err := DecodeQuestionSet(`{"questions": [{"id": "q_1",}]}`, nil)

	var invalid *InvalidJSONError
	require.ErrorAs(t, err, &invalid)
	assert.Greater(t, invalid.Offset, int64(0))
	assert.NotEmpty(t, invalid.Context)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeQuestionSetEmptyQuestions(t *testing.T) {
	_, err := DecodeQuestionSet(`{"questions": []}`, nil)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "questions", missing.Field)
}

func TestDecodeQuestionSetRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty text", `{"questions": [{"question": "", "options": ["A", "B"]}]}`},
		{"one option", `{"questions": [{"question": "Q?", "options": ["A"]}]}`},
		{"index out of range", `{"questions": [{"question": "Q?", "options": ["A", "B"], "correctAnswer": 5}]}`},
		{"negative index", `{"questions": [{"question": "Q?", "options": ["A", "B"], "correctAnswer": -1}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeQuestionSet(tc.body, nil)
			var coercion *CoercionError
			require.ErrorAs(t, err, &coercion)
			assert.Equal(t, 0, coercion.Index)
		})
	}
}

func TestDecodeQuestionSetAllOrNothing(t *testing.T) {
	// One bad entry among good ones fails the whole set.
	text := `{"questions": [
	  {"question": "Fine", "options": ["A", "B"], "correctAnswer": 1},
	  {"question": "Broken", "options": []}
	]}`

	questions, err := DecodeQuestionSet(text, nil)
	assert.Nil(t, questions)
	var coercion *CoercionError
	require.ErrorAs(t, err, &coercion)
	assert.Equal(t, 1, coercion.Index)
}

func TestDecodeRecommendation(t *testing.T) {
	rec, err := DecodeRecommendation("```json\n" + `{
	  "topicId": "t1",
	  "topicTitle": "Pointers",
	  "recommendation": "Review pointer basics.",
	  "resourceUrl": "https://example.com/pointers",
	  "resourceType": "video"
	}` + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "video", rec.ResourceType)
	assert.Equal(t, "Review pointer basics.", rec.Recommendation)
}

func TestDecodeRecommendationDefaultsResourceType(t *testing.T) {
	rec, err := DecodeRecommendation(`{"recommendation": "Read the docs.", "resourceType": "webinar"}`)
	require.NoError(t, err)
	assert.Equal(t, "article", rec.ResourceType)
}

func TestDecodeRecommendationRequiresText(t *testing.T) {
	_, err := DecodeRecommendation(`{"topicId": "t1"}`)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "recommendation", missing.Field)
}
