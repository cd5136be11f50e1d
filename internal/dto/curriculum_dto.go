package dto

import (
	"time"

	"github.com/lmnhat/Goldcrest/internal/model"
)

// CurriculumUploadDTO carries the week/topic tree produced by the curriculum
// generator. Resource entries may be bare URL strings or {url, type} objects;
// model.Resource normalizes both at bind time.
type CurriculumUploadDTO struct {
	Weeks []model.Week `json:"weeks" binding:"required"`
}

type CurriculumDTO struct {
	CourseID  string       `json:"course_id"`
	Weeks     []model.Week `json:"weeks"`
	UpdatedAt time.Time    `json:"updated_at"`
}
