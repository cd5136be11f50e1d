package service

import (
	"errors"
	"fmt"

	"github.com/lmnhat/Goldcrest/internal/grading"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/lmnhat/Goldcrest/internal/repair"
	"github.com/lmnhat/Goldcrest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RecommendationService produces at most one remediation resource per
// analysis, targeting the single weakest topic. Callers invoke it only when
// the analysis band demands remediation.
type RecommendationService interface {
	RecommendForAnalysis(courseID string, analysis model.QuizAnalysis) (*model.Recommendation, error)
}

type recommendationService struct {
	curriculumRepo repository.CurriculumRepository
	generator      QuizGenerator
}

func NewRecommendationService(curriculumRepo repository.CurriculumRepository, generator QuizGenerator) RecommendationService {
	return &recommendationService{curriculumRepo: curriculumRepo, generator: generator}
}

// RecommendForAnalysis picks the weakest topic of the analysis, asks the
// generator for one resource and decodes the reply. Returns (nil, nil) when
// no topic in the breakdown is below the moderate_plus boundary; a generator
// or decode failure is the caller's failure too.
func (s *recommendationService) RecommendForAnalysis(courseID string, analysis model.QuizAnalysis) (*model.Recommendation, error) {
	target := weakestTopic(analysis)
	if target == nil {
		return nil, nil
	}

	req := RecommendationPrompt{
		TopicID:    target.TopicID,
		TopicTitle: target.TopicTitle,
		StudentPerformance: fmt.Sprintf("Scored %d out of %d questions (%.1f%%)",
			target.CorrectCount, target.QuestionsCount, target.Percentage),
	}
	if desc, ok := s.topicDescription(courseID, target.TopicID); ok {
		req.TopicDescription = desc
	}

	raw, err := s.generator.GenerateRecommendation(req)
	if err != nil {
		return nil, fmt.Errorf("generating recommendation for topic %s: %w", target.TopicID, err)
	}

	decoded, err := repair.DecodeRecommendation(raw)
	if err != nil {
		log.Error().Err(err).Str("topicID", target.TopicID).Msg("Failed to decode recommendation payload")
		return nil, err
	}

	rec := &model.Recommendation{
		TopicID:        decoded.TopicID,
		TopicTitle:     decoded.TopicTitle,
		Recommendation: decoded.Recommendation,
		ResourceURL:    decoded.ResourceURL,
		ResourceType:   decoded.ResourceType,
	}
	if rec.TopicID == "" {
		rec.TopicID = target.TopicID
	}
	if rec.TopicTitle == "" {
		rec.TopicTitle = target.TopicTitle
	}
	return rec, nil
}

// weakestTopic returns the weak topic with the lowest percentage, keeping the
// first on ties. When no topic is weak it falls back to the first topic under
// the moderate_plus boundary, and nil when every topic is at or above it.
func weakestTopic(analysis model.QuizAnalysis) *model.TopicPerformance {
	var weakest *model.TopicPerformance
	for i := range analysis.TopicBreakdown {
		perf := &analysis.TopicBreakdown[i]
		if perf.PerformanceLevel != grading.LevelWeak {
			continue
		}
		if weakest == nil || perf.Percentage < weakest.Percentage {
			weakest = perf
		}
	}
	if weakest != nil {
		return weakest
	}

	for i := range analysis.TopicBreakdown {
		perf := &analysis.TopicBreakdown[i]
		if perf.Percentage < 85 {
			return perf
		}
	}
	return nil
}

func (s *recommendationService) topicDescription(courseID, topicID string) (string, bool) {
	curriculum, err := s.curriculumRepo.FindByCourse(courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("courseID", courseID).Msg("Could not load curriculum for recommendation context")
		}
		return "", false
	}
	for _, week := range curriculum.Weeks.Data() {
		for _, topic := range week.Topics {
			if topic.ID == topicID {
				return topic.Description, true
			}
		}
	}
	return "", false
}
