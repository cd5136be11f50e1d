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

// remediationBelow is the gating boundary: a main quiz under this percentage
// makes the week's dynamic quiz required and locks the following week until
// that dynamic quiz is attempted.
const remediationBelow = 60.0

// QuizService generates, serves and grades weekly quizzes, and answers the
// availability and week-lock questions derived from attempt history.
type QuizService interface {
	GenerateMainQuiz(courseID string, weekNumber int) (*dto.WeeklyQuizDTO, error)
	GenerateRefresherQuiz(courseID string, weekNumber int) (*dto.WeeklyQuizDTO, error)
	GenerateDynamicQuiz(studentID, courseID string, weekNumber int) (*dto.WeeklyQuizDTO, error)
	GetQuiz(courseID string, weekNumber int, quizType string) (*dto.WeeklyQuizDTO, error)
	SubmitQuiz(req dto.QuizSubmissionRequest) (*dto.QuizSubmissionResponse, error)
	GetAvailability(studentID, courseID string, weekNumber int) (*dto.QuizAvailabilityDTO, error)
	IsWeekLocked(studentID, courseID string, weekNumber int) (*dto.WeekLockDTO, error)
}

type quizService struct {
	curriculumRepo repository.CurriculumRepository
	quizRepo       repository.QuizRepository
	attemptRepo    repository.QuizAttemptRepository
	mastery        MasteryService
	generator      QuizGenerator
}

func NewQuizService(
	curriculumRepo repository.CurriculumRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.QuizAttemptRepository,
	mastery MasteryService,
	generator QuizGenerator,
) QuizService {
	return &quizService{
		curriculumRepo: curriculumRepo,
		quizRepo:       quizRepo,
		attemptRepo:    attemptRepo,
		mastery:        mastery,
		generator:      generator,
	}
}

// GenerateMainQuiz builds the week's main quiz from the current week's topics
// plus bonus questions from the previous week, replacing any prior main quiz
// for the scope.
func (s *quizService) GenerateMainQuiz(courseID string, weekNumber int) (*dto.WeeklyQuizDTO, error) {
	curriculum, week, err := s.findWeek(courseID, weekNumber)
	if err != nil {
		return nil, err
	}

	var previousTopics []model.Topic
	if prev := curriculum.WeekByNumber(weekNumber - 1); prev != nil {
		previousTopics = prev.Topics
	}

	raw, err := s.generator.GenerateMainQuiz(weekNumber, week.Topics, previousTopics)
	if err != nil {
		return nil, fmt.Errorf("generating main quiz for course %s week %d: %w", courseID, weekNumber, err)
	}

	return s.decodeAndSave(curriculum, raw, weekNumber, model.QuizTypeMain,
		fmt.Sprintf("Week %d Main Quiz", weekNumber),
		fmt.Sprintf("Graded quiz covering week %d: %s", weekNumber, week.Title),
		topicIDs(week.Topics))
}

// GenerateRefresherQuiz builds a fresh practice quiz over the same topics as
// the week's main quiz, replacing any prior refresher for the scope.
func (s *quizService) GenerateRefresherQuiz(courseID string, weekNumber int) (*dto.WeeklyQuizDTO, error) {
	curriculum, week, err := s.findWeek(courseID, weekNumber)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.GenerateRefresherQuiz(weekNumber, week.Topics)
	if err != nil {
		return nil, fmt.Errorf("generating refresher quiz for course %s week %d: %w", courseID, weekNumber, err)
	}

	return s.decodeAndSave(curriculum, raw, weekNumber, model.QuizTypeRefresher,
		fmt.Sprintf("Week %d Refresher Quiz", weekNumber),
		fmt.Sprintf("Practice quiz revisiting week %d: %s", weekNumber, week.Title),
		topicIDs(week.Topics))
}

// GenerateDynamicQuiz builds a personalized remediation quiz focused on the
// student's mastery weaknesses within the week. Each generation appends a new
// quiz instance. Falls back to every week topic when no tracked weakness
// belongs to the week.
func (s *quizService) GenerateDynamicQuiz(studentID, courseID string, weekNumber int) (*dto.WeeklyQuizDTO, error) {
	curriculum, week, err := s.findWeek(courseID, weekNumber)
	if err != nil {
		return nil, err
	}
	if len(week.Topics) == 0 {
		return nil, fmt.Errorf("week %d of course %s has no topics: %w", weekNumber, courseID, ErrEmptyFocusSet)
	}

	profile, err := s.mastery.GetProfile(studentID, courseID)
	if err != nil {
		return nil, err
	}

	weekTopicIDs := topicIDs(week.Topics)
	inWeek := make(map[string]bool, len(weekTopicIDs))
	for _, id := range weekTopicIDs {
		inWeek[id] = true
	}

	var focus []string
	for _, weakness := range profile.Weaknesses {
		if inWeek[weakness] {
			focus = append(focus, weakness)
		}
	}
	if len(focus) == 0 {
		focus = weekTopicIDs
	}

	raw, err := s.generator.GenerateDynamicQuiz(weekNumber, week.Topics, focus)
	if err != nil {
		return nil, fmt.Errorf("generating dynamic quiz for student %s week %d: %w", studentID, weekNumber, err)
	}

	return s.decodeAndSave(curriculum, raw, weekNumber, model.QuizTypeDynamic,
		fmt.Sprintf("Week %d Remediation Quiz", weekNumber),
		fmt.Sprintf("Personalized quiz targeting weak topics of week %d", weekNumber),
		focus)
}

func (s *quizService) GetQuiz(courseID string, weekNumber int, quizType string) (*dto.WeeklyQuizDTO, error) {
	quiz, err := s.findQuiz(courseID, weekNumber, quizType)
	if err != nil {
		return nil, err
	}
	return quizToDTO(quiz), nil
}

// SubmitQuiz grades a weekly quiz submission, persists the attempt with its
// analysis snapshot and recomputes the student's mastery profile. A main quiz
// may only be submitted once per (student, course, week); the duplicate check
// runs before anything is graded or written.
func (s *quizService) SubmitQuiz(req dto.QuizSubmissionRequest) (*dto.QuizSubmissionResponse, error) {
	quiz, err := s.findQuiz(req.CourseID, req.WeekNumber, req.QuizType)
	if err != nil {
		return nil, err
	}
	if quiz.ID != req.QuizID {
		return nil, fmt.Errorf("quiz %s: %w", req.QuizID, ErrScopeMismatch)
	}

	if req.QuizType == model.QuizTypeMain {
		taken, err := s.attemptRepo.HasAttempt(req.StudentID, req.CourseID, req.WeekNumber, model.QuizTypeMain)
		if err != nil {
			return nil, fmt.Errorf("checking prior main attempt: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("week %d: %w", req.WeekNumber, ErrDuplicateSubmission)
		}
	}

	res := grading.Grade(quizGradingQuestions(quiz), req.Answers)
	analysis := grading.AnalyzeWeekly(res)

	attempt := &model.WeeklyQuizAttempt{
		ID:          fmt.Sprintf("attempt_%s", shortID()),
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		WeekNumber:  req.WeekNumber,
		QuizID:      quiz.ID,
		QuizType:    req.QuizType,
		Answers:     datatypes.NewJSONType(req.Answers),
		Score:       res.Score,
		MaxScore:    res.MaxScore,
		Percentage:  res.Percentage,
		Analysis:    datatypes.NewJSONType(analysis),
		CompletedAt: time.Now().UTC(),
	}
	if err := s.attemptRepo.Save(attempt); err != nil {
		return nil, fmt.Errorf("saving quiz attempt: %w", err)
	}

	if _, err := s.mastery.Recompute(req.StudentID, req.CourseID); err != nil {
		return nil, err
	}

	log.Info().
		Str("studentID", req.StudentID).
		Str("courseID", req.CourseID).
		Int("weekNumber", req.WeekNumber).
		Str("quizType", req.QuizType).
		Float64("percentage", res.Percentage).
		Msg("Weekly quiz submitted")

	return &dto.QuizSubmissionResponse{
		Success:  true,
		Message:  submissionMessage(req.QuizType, res.Percentage),
		Attempt:  quizAttemptToDTO(attempt),
		Analysis: analysis,
	}, nil
}

// GetAvailability reports which quiz variants the student may take for the
// week. Pure read over attempt history.
func (s *quizService) GetAvailability(studentID, courseID string, weekNumber int) (*dto.QuizAvailabilityDTO, error) {
	out := &dto.QuizAvailabilityDTO{WeekNumber: weekNumber, MainQuizAvailable: true}

	main, err := s.attemptRepo.FindMainAttempt(studentID, courseID, weekNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if main == nil {
		return out, nil
	}

	out.MainQuizAvailable = false
	out.MainQuizCompleted = true
	out.MainQuizScore = &main.Percentage
	out.RefresherQuizAvailable = true

	if main.Percentage < remediationBelow {
		out.DynamicQuizAvailable = true
		out.DynamicQuizRequired = true
		done, err := s.attemptRepo.HasAttempt(studentID, courseID, weekNumber, model.QuizTypeDynamic)
		if err != nil {
			return nil, err
		}
		out.DynamicQuizCompleted = done
	}

	return out, nil
}

// IsWeekLocked reports whether the week is blocked pending remediation of the
// previous one. Week 1 has no predecessor and is never locked.
func (s *quizService) IsWeekLocked(studentID, courseID string, weekNumber int) (*dto.WeekLockDTO, error) {
	out := &dto.WeekLockDTO{WeekNumber: weekNumber}
	if weekNumber <= 1 {
		return out, nil
	}

	prevMain, err := s.attemptRepo.FindMainAttempt(studentID, courseID, weekNumber-1)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, nil
		}
		return nil, err
	}
	if prevMain.Percentage >= remediationBelow {
		return out, nil
	}

	remediated, err := s.attemptRepo.HasAttempt(studentID, courseID, weekNumber-1, model.QuizTypeDynamic)
	if err != nil {
		return nil, err
	}
	out.Locked = !remediated
	return out, nil
}

func (s *quizService) findWeek(courseID string, weekNumber int) (*model.Curriculum, *model.Week, error) {
	curriculum, err := s.curriculumRepo.FindByCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("curriculum for course %s: %w", courseID, ErrNotFound)
		}
		return nil, nil, err
	}
	week := curriculum.WeekByNumber(weekNumber)
	if week == nil {
		return nil, nil, fmt.Errorf("week %d of course %s: %w", weekNumber, courseID, ErrNotFound)
	}
	return curriculum, week, nil
}

func (s *quizService) findQuiz(courseID string, weekNumber int, quizType string) (*model.WeeklyQuiz, error) {
	quiz, err := s.quizRepo.FindCurrent(courseID, weekNumber, quizType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s quiz for course %s week %d: %w", quizType, courseID, weekNumber, ErrNotFound)
		}
		return nil, err
	}
	return quiz, nil
}

func (s *quizService) decodeAndSave(
	curriculum *model.Curriculum,
	raw string,
	weekNumber int,
	quizType, title, description string,
	focusTopicIDs []string,
) (*dto.WeeklyQuizDTO, error) {
	decoded, err := repair.DecodeQuestionSet(raw, curriculum.TopicTitleMap())
	if err != nil {
		log.Error().Err(err).
			Str("courseID", curriculum.CourseID).
			Int("weekNumber", weekNumber).
			Str("quizType", quizType).
			Msg("Quiz payload failed to decode")
		return nil, err
	}

	quiz := &model.WeeklyQuiz{
		ID:          fmt.Sprintf("quiz_%s_week%d_%s_%s", curriculum.CourseID, weekNumber, quizType, shortID()),
		CourseID:    curriculum.CourseID,
		WeekNumber:  weekNumber,
		QuizType:    quizType,
		Title:       title,
		Description: description,
		TopicIDs:    datatypes.NewJSONSlice(focusTopicIDs),
		MaxScore:    len(decoded),
	}
	for i, q := range decoded {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			QuestionID:      q.ID,
			Text:            q.Text,
			Options:         datatypes.NewJSONSlice(q.Options),
			CorrectIndex:    q.CorrectIndex,
			TopicID:         q.TopicID,
			TopicTitle:      q.TopicTitle,
			ConceptID:       q.ConceptID,
			DifficultyLevel: q.DifficultyLevel,
			IsBonus:         q.IsBonus,
			Position:        i,
		})
	}

	if err := s.quizRepo.Save(quiz); err != nil {
		return nil, fmt.Errorf("saving %s quiz for course %s week %d: %w", quizType, curriculum.CourseID, weekNumber, err)
	}

	log.Info().
		Str("courseID", curriculum.CourseID).
		Int("weekNumber", weekNumber).
		Str("quizType", quizType).
		Int("questions", len(decoded)).
		Msg("Weekly quiz generated")
	return quizToDTO(quiz), nil
}

func submissionMessage(quizType string, percentage float64) string {
	if quizType == model.QuizTypeMain && percentage < remediationBelow {
		return "Quiz graded. A remediation quiz is required before the next week unlocks."
	}
	return "Quiz graded."
}

func topicIDs(topics []model.Topic) []string {
	ids := make([]string, 0, len(topics))
	for _, topic := range topics {
		ids = append(ids, topic.ID)
	}
	return ids
}

func quizGradingQuestions(quiz *model.WeeklyQuiz) []grading.Question {
	questions := make([]grading.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, grading.Question{
			ID:           q.QuestionID,
			CorrectIndex: q.CorrectIndex,
			TopicID:      q.TopicID,
			TopicTitle:   q.TopicTitle,
		})
	}
	return questions
}

func quizAttemptToDTO(attempt *model.WeeklyQuizAttempt) dto.QuizAttemptDTO {
	var out dto.QuizAttemptDTO
	copier.Copy(&out, attempt)
	out.Answers = attempt.Answers.Data()
	return out
}

func quizToDTO(quiz *model.WeeklyQuiz) *dto.WeeklyQuizDTO {
	out := &dto.WeeklyQuizDTO{
		ID:          quiz.ID,
		CourseID:    quiz.CourseID,
		WeekNumber:  quiz.WeekNumber,
		QuizType:    quiz.QuizType,
		Title:       quiz.Title,
		Description: quiz.Description,
		TopicIDs:    quiz.TopicIDs,
		MaxScore:    quiz.MaxScore,
		CreatedAt:   quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		out.Questions = append(out.Questions, dto.QuestionDTO{
			ID:              q.QuestionID,
			Question:        q.Text,
			Options:         q.Options,
			TopicID:         q.TopicID,
			TopicTitle:      q.TopicTitle,
			ConceptID:       q.ConceptID,
			DifficultyLevel: q.DifficultyLevel,
			IsBonus:         q.IsBonus,
		})
	}
	return out
}
