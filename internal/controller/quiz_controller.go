package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/lmnhat/Goldcrest/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService    service.QuizService
	masteryService service.MasteryService
}

func NewQuizController(quizService service.QuizService, masteryService service.MasteryService) *QuizController {
	return &QuizController{quizService: quizService, masteryService: masteryService}
}

// GenerateQuiz godoc
// @Summary Generate a weekly quiz variant
// @Description Generates a main, refresher or dynamic quiz for the week. main/refresher replace the current instance; dynamic appends a new personalized one and requires student_id.
// @Tags Quizzes
// @Produce json
// @Param course_id path string true "Course ID"
// @Param week path int true "Week number"
// @Param kind path string true "Quiz kind" Enums(main, refresher, dynamic)
// @Param student_id query string false "Student ID (required for dynamic)"
// @Success 201 {object} dto.WeeklyQuizDTO
// @Failure 400 {object} dto.ErrorResponse "Bad week number, kind, or missing student_id"
// @Failure 404 {object} dto.ErrorResponse "No curriculum or week"
// @Failure 422 {object} dto.ErrorResponse "Week has no topics to focus on"
// @Failure 502 {object} dto.ErrorResponse "Generator payload unusable"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/weeks/{week}/quizzes/{kind} [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	weekNumber, ok := weekParam(ctx)
	if !ok {
		return
	}

	var quiz *dto.WeeklyQuizDTO
	var err error
	switch kind := ctx.Param("kind"); kind {
	case model.QuizTypeMain:
		quiz, err = c.quizService.GenerateMainQuiz(courseID, weekNumber)
	case model.QuizTypeRefresher:
		quiz, err = c.quizService.GenerateRefresherQuiz(courseID, weekNumber)
	case model.QuizTypeDynamic:
		studentID := ctx.Query("student_id")
		if studentID == "" {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required for dynamic quizzes"})
			return
		}
		quiz, err = c.quizService.GenerateDynamicQuiz(studentID, courseID, weekNumber)
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "quiz kind must be one of main, refresher, dynamic"})
		return
	}

	if err != nil {
		log.Error().Err(err).Str("courseID", courseID).Int("weekNumber", weekNumber).Msg("GenerateQuiz: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary Get the current quiz for a (course, week, kind) scope
// @Description Returns the live main/refresher quiz, or the most recently generated dynamic one. Correct answers are stripped.
// @Tags Quizzes
// @Produce json
// @Param course_id path string true "Course ID"
// @Param week path int true "Week number"
// @Param kind path string true "Quiz kind" Enums(main, refresher, dynamic)
// @Success 200 {object} dto.WeeklyQuizDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No quiz generated for this scope"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/weeks/{week}/quizzes/{kind} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	weekNumber, ok := weekParam(ctx)
	if !ok {
		return
	}

	quiz, err := c.quizService.GetQuiz(courseID, weekNumber, ctx.Param("kind"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit weekly quiz answers
// @Description Grades the submission, stores the attempt with its analysis snapshot and recomputes the student's mastery profile. A main quiz is one attempt only.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param submission body dto.QuizSubmissionRequest true "Answers keyed by question id"
// @Success 200 {object} dto.QuizSubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid submission payload"
// @Failure 404 {object} dto.ErrorResponse "No quiz for this scope"
// @Failure 409 {object} dto.ErrorResponse "Duplicate main submission or stale quiz id"
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req dto.QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid submission payload", Details: []string{err.Error()}})
		return
	}

	result, err := c.quizService.SubmitQuiz(req)
	if err != nil {
		log.Error().Err(err).Str("studentID", req.StudentID).Str("courseID", req.CourseID).Int("weekNumber", req.WeekNumber).Msg("SubmitQuiz: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAvailability godoc
// @Summary Get quiz availability for a student and week
// @Description Reports which quiz variants are offered: main until taken once, refresher after main, dynamic (required) when main scored under 60 percent.
// @Tags Quizzes
// @Produce json
// @Param course_id path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.QuizAvailabilityDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/weeks/{week}/availability [get]
func (c *QuizController) GetAvailability(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	weekNumber, ok := weekParam(ctx)
	if !ok {
		return
	}
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	availability, err := c.quizService.GetAvailability(studentID, courseID, weekNumber)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, availability)
}

// GetLockStatus godoc
// @Summary Get the lock status of a week
// @Description A week is locked when the previous week's main quiz scored under 60 percent and its remediation quiz has not been attempted. Week 1 is never locked.
// @Tags Quizzes
// @Produce json
// @Param course_id path string true "Course ID"
// @Param week path int true "Week number"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.WeekLockDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/weeks/{week}/lock-status [get]
func (c *QuizController) GetLockStatus(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	weekNumber, ok := weekParam(ctx)
	if !ok {
		return
	}
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	lock, err := c.quizService.IsWeekLocked(studentID, courseID, weekNumber)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lock)
}

// GetPerformance godoc
// @Summary Get a student's mastery profile for a course
// @Description Lifetime per-topic percentages with derived strength/weakness lists, recomputed on every weekly submission. Created empty on first read.
// @Tags Performance
// @Produce json
// @Param course_id path string true "Course ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.PerformanceDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/performance [get]
func (c *QuizController) GetPerformance(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	profile, err := c.masteryService.GetProfile(studentID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PerformanceDTO{
		StudentID:        profile.StudentID,
		CourseID:         profile.CourseID,
		Strengths:        profile.Strengths,
		Weaknesses:       profile.Weaknesses,
		TopicPercentages: profile.TopicPercentages.Data(),
		LastUpdated:      profile.LastUpdated,
	})
}

func weekParam(ctx *gin.Context) (int, bool) {
	week, err := strconv.Atoi(ctx.Param("week"))
	if err != nil || week < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid week number"})
		return 0, false
	}
	return week, true
}
