package grading

import "github.com/lmnhat/Goldcrest/internal/model"

// TopicTotals is the lifetime correct/attempted accumulator for one topic
// across every historical attempt.
type TopicTotals struct {
	TopicID   string
	Correct   int
	Attempted int
}

// Mastery classification thresholds. These are intentionally different from
// the analyzer's 80/60 topic levels; a topic is only a durable strength above
// 75% lifetime accuracy and only a durable weakness below 50%, everything in
// [50, 75] is mastery-neutral.
const (
	masteryStrengthAbove = 75.0
	masteryWeaknessBelow = 50.0
)

// FoldTopicTotals accumulates per-topic correct/attempted counts across the
// topic breakdowns of every given analysis, ordered by first appearance.
func FoldTopicTotals(analyses []model.QuizAnalysis) []TopicTotals {
	var totals []TopicTotals
	index := make(map[string]int)

	for _, analysis := range analyses {
		for _, perf := range analysis.TopicBreakdown {
			i, ok := index[perf.TopicID]
			if !ok {
				i = len(totals)
				index[perf.TopicID] = i
				totals = append(totals, TopicTotals{TopicID: perf.TopicID})
			}
			totals[i].Correct += perf.CorrectCount
			totals[i].Attempted += perf.QuestionsCount
		}
	}

	return totals
}

// ClassifyMastery converts lifetime totals into the mastery profile
// collections: the percentage map plus strength/weakness topic-id lists.
// Topics with no attempted questions are dropped.
func ClassifyMastery(totals []TopicTotals) (percentages map[string]float64, strengths, weaknesses []string) {
	percentages = make(map[string]float64)

	for _, t := range totals {
		if t.Attempted <= 0 {
			continue
		}
		pct := Percent(t.Correct, t.Attempted)
		percentages[t.TopicID] = pct

		switch {
		case pct > masteryStrengthAbove:
			strengths = append(strengths, t.TopicID)
		case pct < masteryWeaknessBelow:
			weaknesses = append(weaknesses, t.TopicID)
		}
	}

	return percentages, strengths, weaknesses
}
