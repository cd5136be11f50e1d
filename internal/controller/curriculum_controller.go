package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/service"
	"github.com/rs/zerolog/log"
)

type CurriculumController struct {
	curriculumService service.CurriculumService
}

func NewCurriculumController(curriculumService service.CurriculumService) *CurriculumController {
	return &CurriculumController{curriculumService: curriculumService}
}

// UploadCurriculum godoc
// @Summary Ingest the week/topic outline for a course
// @Description Stores (or replaces) the curriculum weeks document quizzes are generated from. Resource entries may be bare URL strings or {url, type} objects.
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param curriculum body dto.CurriculumUploadDTO true "Curriculum weeks"
// @Success 200 {object} dto.CurriculumDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid curriculum payload"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/curriculum [put]
func (c *CurriculumController) UploadCurriculum(ctx *gin.Context) {
	courseID := ctx.Param("course_id")

	var req dto.CurriculumUploadDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid curriculum payload", Details: []string{err.Error()}})
		return
	}

	curriculum, err := c.curriculumService.Upload(courseID, req)
	if err != nil {
		log.Error().Err(err).Str("courseID", courseID).Msg("UploadCurriculum: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, curriculum)
}

// GetCurriculum godoc
// @Summary Get the stored curriculum for a course
// @Tags Curriculum
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} dto.CurriculumDTO
// @Failure 404 {object} dto.ErrorResponse "No curriculum for this course"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/curriculum [get]
func (c *CurriculumController) GetCurriculum(ctx *gin.Context) {
	courseID := ctx.Param("course_id")

	curriculum, err := c.curriculumService.Get(courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, curriculum)
}
