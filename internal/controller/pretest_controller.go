package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/service"
	"github.com/rs/zerolog/log"
)

type PretestController struct {
	pretestService service.PretestService
}

func NewPretestController(pretestService service.PretestService) *PretestController {
	return &PretestController{pretestService: pretestService}
}

// GeneratePretest godoc
// @Summary Generate the diagnostic pretest for a course
// @Description Builds a pretest covering every curriculum week and replaces the current one. Fails with 502 if the generator output cannot be repaired into a valid question set.
// @Tags Pretest
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 201 {object} dto.PretestDTO
// @Failure 404 {object} dto.ErrorResponse "No curriculum for this course"
// @Failure 502 {object} dto.ErrorResponse "Generator payload unusable"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/pretest [post]
func (c *PretestController) GeneratePretest(ctx *gin.Context) {
	courseID := ctx.Param("course_id")

	pretest, err := c.pretestService.Generate(courseID)
	if err != nil {
		log.Error().Err(err).Str("courseID", courseID).Msg("GeneratePretest: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pretest)
}

// GetPretest godoc
// @Summary Get the current pretest for a course
// @Description Returns the stored pretest with correct answers stripped.
// @Tags Pretest
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} dto.PretestDTO
// @Failure 404 {object} dto.ErrorResponse "No pretest generated yet"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/pretest [get]
func (c *PretestController) GetPretest(ctx *gin.Context) {
	courseID := ctx.Param("course_id")

	pretest, err := c.pretestService.Get(courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pretest)
}

// SubmitPretest godoc
// @Summary Submit pretest answers
// @Description Grades the submission and returns score, topic analysis and, below the moderate_plus band, a remediation recommendation.
// @Tags Pretest
// @Accept json
// @Produce json
// @Param submission body dto.PretestSubmissionRequest true "Answers keyed by question id"
// @Success 200 {object} dto.PretestResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid submission payload"
// @Failure 404 {object} dto.ErrorResponse "No pretest for this course"
// @Failure 409 {object} dto.ErrorResponse "Submitted pretest id is stale"
// @Failure 502 {object} dto.ErrorResponse "Recommendation payload unusable"
// @Failure 500 {object} dto.ErrorResponse
// @Router /pretest/submit [post]
func (c *PretestController) SubmitPretest(ctx *gin.Context) {
	var req dto.PretestSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid submission payload", Details: []string{err.Error()}})
		return
	}

	result, err := c.pretestService.Submit(req)
	if err != nil {
		log.Error().Err(err).Str("studentID", req.StudentID).Str("courseID", req.CourseID).Msg("SubmitPretest: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPretestResult godoc
// @Summary Get a student's pretest result
// @Description Re-derives analysis and recommendation for the student's latest attempt against the current pretest.
// @Tags Pretest
// @Produce json
// @Param course_id path string true "Course ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.PretestResultDTO
// @Failure 400 {object} dto.ErrorResponse "Missing student_id"
// @Failure 404 {object} dto.ErrorResponse "No attempt recorded"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/pretest/result [get]
func (c *PretestController) GetPretestResult(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	result, err := c.pretestService.GetResult(studentID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
