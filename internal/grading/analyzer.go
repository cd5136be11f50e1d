package grading

import "github.com/lmnhat/Goldcrest/internal/model"

// Overall performance bands.
const (
	BandFail          = "fail"
	BandBelowModerate = "below_moderate"
	BandModeratePlus  = "moderate_plus"
)

// Per-topic qualitative levels.
const (
	LevelStrong   = "strong"
	LevelModerate = "moderate"
	LevelWeak     = "weak"
)

// Band thresholds. Pretests fail below 70, weekly quizzes below 60; both
// share the 85 moderate_plus boundary.
const (
	pretestFailBelow  = 70.0
	weeklyFailBelow   = 60.0
	moderatePlusFloor = 85.0
)

// AnalyzeWeekly turns a grading result into a weekly quiz analysis:
// per-topic breakdown with incorrect counts, plus the overall band.
func AnalyzeWeekly(res Result) model.QuizAnalysis {
	analysis := model.QuizAnalysis{
		OverallScore:     float64(res.Score),
		MaxScore:         float64(res.MaxScore),
		Percentage:       res.Percentage,
		PerformanceLevel: weeklyBand(res.Percentage),
	}

	for _, tally := range res.Tallies {
		pct := Percent(tally.Correct, tally.Questions)
		analysis.TopicBreakdown = append(analysis.TopicBreakdown, model.TopicPerformance{
			TopicID:          tally.TopicID,
			TopicTitle:       tally.TopicTitle,
			QuestionsCount:   tally.Questions,
			CorrectCount:     tally.Correct,
			IncorrectCount:   tally.Incorrect,
			Percentage:       pct,
			PerformanceLevel: topicLevel(pct),
		})
		analysis.CorrectCount += tally.Correct
		analysis.IncorrectCount += tally.Incorrect
	}

	return analysis
}

// AnalyzePretest turns a grading result into a pretest analysis. On top of
// the breakdown it partitions topic titles into strengths (strong topics) and
// weaknesses (weak topics) for the recommendation flow.
func AnalyzePretest(res Result) model.QuizAnalysis {
	analysis := model.QuizAnalysis{
		OverallScore:     float64(res.Score),
		MaxScore:         float64(res.MaxScore),
		Percentage:       res.Percentage,
		PerformanceLevel: pretestBand(res.Percentage),
	}

	for _, tally := range res.Tallies {
		pct := Percent(tally.Correct, tally.Questions)
		level := topicLevel(pct)
		switch level {
		case LevelStrong:
			analysis.Strengths = append(analysis.Strengths, tally.TopicTitle)
		case LevelWeak:
			analysis.Weaknesses = append(analysis.Weaknesses, tally.TopicTitle)
		}

		analysis.TopicBreakdown = append(analysis.TopicBreakdown, model.TopicPerformance{
			TopicID:          tally.TopicID,
			TopicTitle:       tally.TopicTitle,
			QuestionsCount:   tally.Questions,
			CorrectCount:     tally.Correct,
			Percentage:       pct,
			PerformanceLevel: level,
		})
		analysis.CorrectCount += tally.Correct
		analysis.IncorrectCount += tally.Incorrect
	}

	return analysis
}

func weeklyBand(pct float64) string {
	switch {
	case pct < weeklyFailBelow:
		return BandFail
	case pct < moderatePlusFloor:
		return BandBelowModerate
	default:
		return BandModeratePlus
	}
}

func pretestBand(pct float64) string {
	switch {
	case pct < pretestFailBelow:
		return BandFail
	case pct < moderatePlusFloor:
		return BandBelowModerate
	default:
		return BandModeratePlus
	}
}

func topicLevel(pct float64) string {
	switch {
	case pct >= 80:
		return LevelStrong
	case pct >= 60:
		return LevelModerate
	default:
		return LevelWeak
	}
}
