package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/grading"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/lmnhat/Goldcrest/internal/repair"
	"github.com/lmnhat/Goldcrest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PretestService generates, serves and grades the per-course diagnostic
// pretest.
type PretestService interface {
	Generate(courseID string) (*dto.PretestDTO, error)
	Get(courseID string) (*dto.PretestDTO, error)
	Submit(req dto.PretestSubmissionRequest) (*dto.PretestResultDTO, error)
	GetResult(studentID, courseID string) (*dto.PretestResultDTO, error)
}

type pretestService struct {
	curriculumRepo repository.CurriculumRepository
	pretestRepo    repository.PretestRepository
	recommender    RecommendationService
	generator      QuizGenerator
}

func NewPretestService(
	curriculumRepo repository.CurriculumRepository,
	pretestRepo repository.PretestRepository,
	recommender RecommendationService,
	generator QuizGenerator,
) PretestService {
	return &pretestService{
		curriculumRepo: curriculumRepo,
		pretestRepo:    pretestRepo,
		recommender:    recommender,
		generator:      generator,
	}
}

// Generate builds a fresh diagnostic pretest covering the whole curriculum
// and replaces the current one for the course. A decode failure leaves the
// stored pretest untouched.
func (s *pretestService) Generate(courseID string) (*dto.PretestDTO, error) {
	curriculum, err := s.curriculumRepo.FindByCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("curriculum for course %s: %w", courseID, ErrNotFound)
		}
		return nil, err
	}

	raw, err := s.generator.GeneratePretest(curriculum.Weeks.Data())
	if err != nil {
		return nil, fmt.Errorf("generating pretest for course %s: %w", courseID, err)
	}

	decoded, err := repair.DecodeQuestionSet(raw, curriculum.TopicTitleMap())
	if err != nil {
		log.Error().Err(err).Str("courseID", courseID).Msg("Pretest payload failed to decode")
		return nil, err
	}

	pretest := &model.Pretest{
		ID:       fmt.Sprintf("pretest_%s_%s", courseID, shortID()),
		CourseID: courseID,
		MaxScore: len(decoded),
	}
	for i, q := range decoded {
		pretest.Questions = append(pretest.Questions, model.PretestQuestion{
			QuestionID:   q.ID,
			Text:         q.Text,
			Options:      datatypes.NewJSONSlice(q.Options),
			CorrectIndex: q.CorrectIndex,
			TopicID:      q.TopicID,
			TopicTitle:   q.TopicTitle,
			Position:     i,
		})
	}

	if err := s.pretestRepo.Replace(pretest); err != nil {
		return nil, fmt.Errorf("saving pretest for course %s: %w", courseID, err)
	}

	log.Info().Str("courseID", courseID).Str("pretestID", pretest.ID).Int("questions", len(decoded)).Msg("Pretest generated")
	return pretestToDTO(pretest), nil
}

func (s *pretestService) Get(courseID string) (*dto.PretestDTO, error) {
	pretest, err := s.findPretest(courseID)
	if err != nil {
		return nil, err
	}
	return pretestToDTO(pretest), nil
}

// Submit grades a pretest submission. When the overall band calls for
// remediation the recommendation is produced first; if it cannot be, the
// whole submit fails and no attempt is written.
func (s *pretestService) Submit(req dto.PretestSubmissionRequest) (*dto.PretestResultDTO, error) {
	pretest, err := s.findPretest(req.CourseID)
	if err != nil {
		return nil, err
	}
	if pretest.ID != req.PretestID {
		return nil, fmt.Errorf("pretest %s: %w", req.PretestID, ErrScopeMismatch)
	}

	res := grading.Grade(pretestGradingQuestions(pretest), req.Answers)
	analysis := grading.AnalyzePretest(res)

	var recommendation *model.Recommendation
	if analysis.PerformanceLevel != grading.BandModeratePlus {
		recommendation, err = s.recommender.RecommendForAnalysis(req.CourseID, analysis)
		if err != nil {
			return nil, fmt.Errorf("pretest submission requires a recommendation: %w", err)
		}
	}

	attempt := &model.PretestAttempt{
		ID:          fmt.Sprintf("pretest_attempt_%s", shortID()),
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		PretestID:   pretest.ID,
		Answers:     datatypes.NewJSONType(req.Answers),
		Score:       res.Score,
		MaxScore:    res.MaxScore,
		Percentage:  res.Percentage,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.pretestRepo.SaveAttempt(attempt); err != nil {
		return nil, fmt.Errorf("saving pretest attempt: %w", err)
	}

	log.Info().
		Str("studentID", req.StudentID).
		Str("courseID", req.CourseID).
		Float64("percentage", res.Percentage).
		Str("band", analysis.PerformanceLevel).
		Msg("Pretest submitted")

	return &dto.PretestResultDTO{
		Attempt:        pretestAttemptToDTO(attempt),
		Analysis:       analysis,
		Recommendation: recommendation,
	}, nil
}

// GetResult re-derives the analysis (and recommendation when warranted) for
// the student's latest attempt against the current pretest.
func (s *pretestService) GetResult(studentID, courseID string) (*dto.PretestResultDTO, error) {
	attempt, err := s.pretestRepo.FindLatestAttempt(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pretest attempt for student %s: %w", studentID, ErrNotFound)
		}
		return nil, err
	}

	pretest, err := s.findPretest(courseID)
	if err != nil {
		return nil, err
	}

	res := grading.Grade(pretestGradingQuestions(pretest), attempt.Answers.Data())
	analysis := grading.AnalyzePretest(res)

	var recommendation *model.Recommendation
	if analysis.PerformanceLevel != grading.BandModeratePlus {
		recommendation, err = s.recommender.RecommendForAnalysis(courseID, analysis)
		if err != nil {
			return nil, fmt.Errorf("building pretest result recommendation: %w", err)
		}
	}

	return &dto.PretestResultDTO{
		Attempt:        pretestAttemptToDTO(attempt),
		Analysis:       analysis,
		Recommendation: recommendation,
	}, nil
}

func (s *pretestService) findPretest(courseID string) (*model.Pretest, error) {
	pretest, err := s.pretestRepo.FindByCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pretest for course %s: %w", courseID, ErrNotFound)
		}
		return nil, err
	}
	return pretest, nil
}

func pretestGradingQuestions(pretest *model.Pretest) []grading.Question {
	questions := make([]grading.Question, 0, len(pretest.Questions))
	for _, q := range pretest.Questions {
		questions = append(questions, grading.Question{
			ID:           q.QuestionID,
			CorrectIndex: q.CorrectIndex,
			TopicID:      q.TopicID,
			TopicTitle:   q.TopicTitle,
		})
	}
	return questions
}

func pretestToDTO(pretest *model.Pretest) *dto.PretestDTO {
	out := &dto.PretestDTO{
		ID:        pretest.ID,
		CourseID:  pretest.CourseID,
		MaxScore:  pretest.MaxScore,
		CreatedAt: pretest.CreatedAt,
	}
	for _, q := range pretest.Questions {
		out.Questions = append(out.Questions, dto.QuestionDTO{
			ID:         q.QuestionID,
			Question:   q.Text,
			Options:    q.Options,
			TopicID:    q.TopicID,
			TopicTitle: q.TopicTitle,
		})
	}
	return out
}

func pretestAttemptToDTO(attempt *model.PretestAttempt) dto.PretestAttemptDTO {
	var out dto.PretestAttemptDTO
	copier.Copy(&out, attempt)
	out.Answers = attempt.Answers.Data()
	return out
}
