package grading

import (
	"testing"

	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisFor(topicID string, correct, attempted int) model.QuizAnalysis {
	return model.QuizAnalysis{
		TopicBreakdown: []model.TopicPerformance{
			{TopicID: topicID, QuestionsCount: attempted, CorrectCount: correct},
		},
	}
}

func TestFoldTopicTotalsAccumulatesAcrossAttempts(t *testing.T) {
	totals := FoldTopicTotals([]model.QuizAnalysis{
		analysisFor("t1", 1, 2),
		analysisFor("t1", 3, 4),
		analysisFor("t1", 0, 2),
	})

	require.Len(t, totals, 1)
	assert.Equal(t, 4, totals[0].Correct)
	assert.Equal(t, 8, totals[0].Attempted)

	// (1+3+0)/(2+4+2) = 50%: mastery-neutral, neither strength nor weakness.
	percentages, strengths, weaknesses := ClassifyMastery(totals)
	assert.Equal(t, 50.0, percentages["t1"])
	assert.Empty(t, strengths)
	assert.Empty(t, weaknesses)
}

func TestFoldTopicTotalsKeepsFirstAppearanceOrder(t *testing.T) {
	totals := FoldTopicTotals([]model.QuizAnalysis{
		analysisFor("t2", 1, 1),
		analysisFor("t1", 1, 1),
		analysisFor("t2", 0, 1),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, "t2", totals[0].TopicID)
	assert.Equal(t, "t1", totals[1].TopicID)
}

func TestClassifyMasteryThresholds(t *testing.T) {
	percentages, strengths, weaknesses := ClassifyMastery([]TopicTotals{
		{TopicID: "strong", Correct: 4, Attempted: 5},   // 80% > 75
		{TopicID: "edge", Correct: 3, Attempted: 4},     // exactly 75: neutral
		{TopicID: "neutral", Correct: 1, Attempted: 2},  // 50: neutral
		{TopicID: "weak", Correct: 1, Attempted: 3},     // 33.3 < 50
		{TopicID: "untouched", Correct: 0, Attempted: 0},
	})

	assert.Equal(t, []string{"strong"}, strengths)
	assert.Equal(t, []string{"weak"}, weaknesses)
	assert.NotContains(t, percentages, "untouched")
	assert.Equal(t, 75.0, percentages["edge"])
}
