// Package grading holds the pure scoring core: grading a sparse answer map
// against a question set, turning tallies into performance analyses, and
// folding historical analyses into lifetime mastery totals. Nothing in this
// package touches storage or the generator.
package grading

import "math"

// Question is the minimal question shape grading needs.
type Question struct {
	ID           string
	CorrectIndex int
	TopicID      string
	TopicTitle   string
}

// TopicTally accumulates correctness per topic, ordered by the topic's first
// appearance in the question set.
type TopicTally struct {
	TopicID    string
	TopicTitle string
	Questions  int
	Correct    int
	Incorrect  int
}

// Result is the raw grading outcome before any qualitative classification.
type Result struct {
	Score      int
	MaxScore   int
	Percentage float64
	Tallies    []TopicTally
}

// Grade scores answers against questions. A question counts as correct only
// when the submitted index matches exactly; unanswered questions count as
// incorrect. An empty question set grades to 0/0 with percentage 0.
func Grade(questions []Question, answers map[string]int) Result {
	var res Result
	res.MaxScore = len(questions)

	index := make(map[string]int)
	for _, q := range questions {
		topicID := q.TopicID
		topicTitle := q.TopicTitle
		if topicID == "" {
			topicID = "unknown"
		}
		if topicTitle == "" {
			topicTitle = "Unknown Topic"
		}

		i, ok := index[topicID]
		if !ok {
			i = len(res.Tallies)
			index[topicID] = i
			res.Tallies = append(res.Tallies, TopicTally{TopicID: topicID, TopicTitle: topicTitle})
		}

		tally := &res.Tallies[i]
		tally.Questions++

		answer, answered := answers[q.ID]
		if answered && answer == q.CorrectIndex {
			tally.Correct++
			res.Score++
		} else {
			tally.Incorrect++
		}
	}

	res.Percentage = Percent(res.Score, res.MaxScore)
	return res
}

// Percent returns 100*correct/total rounded to one decimal, and 0 for an
// empty total.
func Percent(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(correct) / float64(total) * 100)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
