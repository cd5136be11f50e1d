package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultWithPercentage(correct, total int) Result {
	return Result{
		Score:      correct,
		MaxScore:   total,
		Percentage: Percent(correct, total),
		Tallies: []TopicTally{
			{TopicID: "t1", TopicTitle: "Pointers", Questions: total, Correct: correct, Incorrect: total - correct},
		},
	}
}

func TestWeeklyBandBoundaries(t *testing.T) {
	cases := []struct {
		correct, total int
		band           string
	}{
		{11, 20, BandFail},          // 55%
		{12, 20, BandBelowModerate}, // exactly 60%
		{16, 20, BandBelowModerate}, // 80%
		{17, 20, BandModeratePlus},  // exactly 85%
		{20, 20, BandModeratePlus},
	}
	for _, tc := range cases {
		analysis := AnalyzeWeekly(resultWithPercentage(tc.correct, tc.total))
		assert.Equal(t, tc.band, analysis.PerformanceLevel, "%d/%d", tc.correct, tc.total)
	}
}

func TestPretestBandBoundaries(t *testing.T) {
	cases := []struct {
		correct, total int
		band           string
	}{
		{13, 20, BandFail},          // 65%: passes weekly, fails pretest
		{14, 20, BandBelowModerate}, // exactly 70%
		{17, 20, BandModeratePlus},  // exactly 85%
	}
	for _, tc := range cases {
		analysis := AnalyzePretest(resultWithPercentage(tc.correct, tc.total))
		assert.Equal(t, tc.band, analysis.PerformanceLevel, "%d/%d", tc.correct, tc.total)
	}
}

func TestTopicLevelBoundaries(t *testing.T) {
	assert.Equal(t, LevelStrong, topicLevel(80))
	assert.Equal(t, LevelModerate, topicLevel(79.9))
	assert.Equal(t, LevelModerate, topicLevel(60))
	assert.Equal(t, LevelWeak, topicLevel(59.9))
}

func TestAnalyzeWeeklyBreakdown(t *testing.T) {
	res := Grade([]Question{
		{ID: "q1", CorrectIndex: 0, TopicID: "t1", TopicTitle: "Pointers"},
		{ID: "q2", CorrectIndex: 0, TopicID: "t1", TopicTitle: "Pointers"},
		{ID: "q3", CorrectIndex: 0, TopicID: "t2", TopicTitle: "Slices"},
	}, map[string]int{"q1": 0, "q2": 1, "q3": 0})

	analysis := AnalyzeWeekly(res)
	require.Len(t, analysis.TopicBreakdown, 2)

	t1 := analysis.TopicBreakdown[0]
	assert.Equal(t, 2, t1.QuestionsCount)
	assert.Equal(t, 1, t1.CorrectCount)
	assert.Equal(t, 1, t1.IncorrectCount)
	assert.Equal(t, 50.0, t1.Percentage)
	assert.Equal(t, LevelWeak, t1.PerformanceLevel)

	assert.Equal(t, 2, analysis.CorrectCount)
	assert.Equal(t, 1, analysis.IncorrectCount)
	// Weekly analyses never carry the pretest-only partitions.
	assert.Empty(t, analysis.Strengths)
	assert.Empty(t, analysis.Weaknesses)
}

// Diagnostic scenario: two questions on one topic, one answered correctly.
func TestAnalyzePretestScenario(t *testing.T) {
	res := Grade([]Question{
		{ID: "q1", CorrectIndex: 0, TopicID: "t1", TopicTitle: "Pointers"},
		{ID: "q2", CorrectIndex: 1, TopicID: "t1", TopicTitle: "Pointers"},
	}, map[string]int{"q1": 0, "q2": 0})

	analysis := AnalyzePretest(res)

	assert.Equal(t, 1.0, analysis.OverallScore)
	assert.Equal(t, 2.0, analysis.MaxScore)
	assert.Equal(t, 50.0, analysis.Percentage)
	assert.Equal(t, BandFail, analysis.PerformanceLevel)

	require.Len(t, analysis.TopicBreakdown, 1)
	assert.Equal(t, LevelWeak, analysis.TopicBreakdown[0].PerformanceLevel)
	assert.Empty(t, analysis.Strengths)
	assert.Equal(t, []string{"Pointers"}, analysis.Weaknesses)
}
