package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionSet() []Question {
	return []Question{
		{ID: "q1", CorrectIndex: 0, TopicID: "t1", TopicTitle: "Pointers"},
		{ID: "q2", CorrectIndex: 1, TopicID: "t2", TopicTitle: "Slices"},
		{ID: "q3", CorrectIndex: 2, TopicID: "t1", TopicTitle: "Pointers"},
		{ID: "q4", CorrectIndex: 3, TopicID: "t2", TopicTitle: "Slices"},
	}
}

func TestGradeExactMatchOnly(t *testing.T) {
	res := Grade(questionSet(), map[string]int{"q1": 0, "q2": 0, "q3": 2, "q4": 1})

	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 4, res.MaxScore)
	assert.Equal(t, 50.0, res.Percentage)
}

func TestGradeUnansweredCountsIncorrect(t *testing.T) {
	// Sparse submissions are valid; missing answers are wrong, not errors.
	res := Grade(questionSet(), map[string]int{"q1": 0})

	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 4, res.MaxScore)
	assert.Equal(t, 25.0, res.Percentage)
}

func TestGradeEmptyQuestionSet(t *testing.T) {
	res := Grade(nil, map[string]int{"q1": 0})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.MaxScore)
	assert.Equal(t, 0.0, res.Percentage)
	assert.Empty(t, res.Tallies)
}

func TestGradeTopicOrderFollowsFirstAppearance(t *testing.T) {
	res := Grade(questionSet(), nil)

	require.Len(t, res.Tallies, 2)
	assert.Equal(t, "t1", res.Tallies[0].TopicID)
	assert.Equal(t, "t2", res.Tallies[1].TopicID)
	assert.Equal(t, 2, res.Tallies[0].Questions)
	assert.Equal(t, 2, res.Tallies[0].Incorrect)
}

func TestGradeUnknownTopicDefaults(t *testing.T) {
	res := Grade([]Question{{ID: "q1", CorrectIndex: 0}}, map[string]int{"q1": 0})

	require.Len(t, res.Tallies, 1)
	assert.Equal(t, "unknown", res.Tallies[0].TopicID)
	assert.Equal(t, "Unknown Topic", res.Tallies[0].TopicTitle)
}

func TestGradeIsDeterministic(t *testing.T) {
	answers := map[string]int{"q1": 0, "q2": 1, "q3": 0, "q4": 3}
	first := Grade(questionSet(), answers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Grade(questionSet(), answers))
	}
}

func TestPercentRounding(t *testing.T) {
	assert.Equal(t, 33.3, Percent(1, 3))
	assert.Equal(t, 66.7, Percent(2, 3))
	assert.Equal(t, 100.0, Percent(3, 3))
	assert.Equal(t, 0.0, Percent(0, 0))
}
