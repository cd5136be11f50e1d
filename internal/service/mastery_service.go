package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lmnhat/Goldcrest/internal/grading"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/lmnhat/Goldcrest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MasteryService owns the durable mastery profile. Nothing else writes it;
// the quiz generator and gating logic only read it.
type MasteryService interface {
	Recompute(studentID, courseID string) (*model.StudentPerformance, error)
	GetProfile(studentID, courseID string) (*model.StudentPerformance, error)
}

type masteryService struct {
	attemptRepo     repository.QuizAttemptRepository
	performanceRepo repository.PerformanceRepository
}

func NewMasteryService(
	attemptRepo repository.QuizAttemptRepository,
	performanceRepo repository.PerformanceRepository,
) MasteryService {
	return &masteryService{attemptRepo: attemptRepo, performanceRepo: performanceRepo}
}

// Recompute refolds every historical weekly attempt for the pair into a
// fresh profile and replace-saves it. Always a full recompute over the
// attempt log, never an incremental update; per-student attempt counts are
// small enough that correctness wins over O(attempts) work here.
func (s *masteryService) Recompute(studentID, courseID string) (*model.StudentPerformance, error) {
	attempts, err := s.attemptRepo.FindAllForStudentCourse(studentID, courseID)
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Str("courseID", courseID).Msg("Mastery recompute: failed to load attempts")
		return nil, fmt.Errorf("loading attempts for mastery recompute: %w", err)
	}

	analyses := make([]model.QuizAnalysis, 0, len(attempts))
	for _, attempt := range attempts {
		analyses = append(analyses, attempt.Analysis.Data())
	}

	totals := grading.FoldTopicTotals(analyses)
	percentages, strengths, weaknesses := grading.ClassifyMastery(totals)

	performance := &model.StudentPerformance{
		StudentID:        studentID,
		CourseID:         courseID,
		Strengths:        datatypes.NewJSONSlice(strengths),
		Weaknesses:       datatypes.NewJSONSlice(weaknesses),
		TopicPercentages: datatypes.NewJSONType(percentages),
		LastUpdated:      time.Now().UTC(),
	}

	if err := s.performanceRepo.Save(performance); err != nil {
		log.Error().Err(err).Str("studentID", studentID).Str("courseID", courseID).Msg("Mastery recompute: failed to save profile")
		return nil, fmt.Errorf("saving mastery profile: %w", err)
	}

	return performance, nil
}

// GetProfile returns the stored profile, lazily creating an empty one on
// first read.
func (s *masteryService) GetProfile(studentID, courseID string) (*model.StudentPerformance, error) {
	performance, err := s.performanceRepo.Find(studentID, courseID)
	if err == nil {
		return performance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loading mastery profile: %w", err)
	}

	performance = &model.StudentPerformance{
		StudentID:        studentID,
		CourseID:         courseID,
		Strengths:        datatypes.NewJSONSlice([]string{}),
		Weaknesses:       datatypes.NewJSONSlice([]string{}),
		TopicPercentages: datatypes.NewJSONType(map[string]float64{}),
		LastUpdated:      time.Now().UTC(),
	}
	if err := s.performanceRepo.Save(performance); err != nil {
		return nil, fmt.Errorf("creating empty mastery profile: %w", err)
	}
	return performance, nil
}
