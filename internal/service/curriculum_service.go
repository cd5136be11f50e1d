package service

import (
	"errors"
	"fmt"

	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/lmnhat/Goldcrest/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CurriculumService ingests and serves the week/topic outline the assessment
// engine generates quizzes from.
type CurriculumService interface {
	Upload(courseID string, req dto.CurriculumUploadDTO) (*dto.CurriculumDTO, error)
	Get(courseID string) (*dto.CurriculumDTO, error)
}

type curriculumService struct {
	curriculumRepo repository.CurriculumRepository
}

func NewCurriculumService(curriculumRepo repository.CurriculumRepository) CurriculumService {
	return &curriculumService{curriculumRepo: curriculumRepo}
}

func (s *curriculumService) Upload(courseID string, req dto.CurriculumUploadDTO) (*dto.CurriculumDTO, error) {
	curriculum := &model.Curriculum{
		CourseID: courseID,
		Weeks:    datatypes.NewJSONType(req.Weeks),
	}
	if err := s.curriculumRepo.Save(curriculum); err != nil {
		return nil, fmt.Errorf("saving curriculum for course %s: %w", courseID, err)
	}
	return curriculumToDTO(curriculum), nil
}

func (s *curriculumService) Get(courseID string) (*dto.CurriculumDTO, error) {
	curriculum, err := s.curriculumRepo.FindByCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("curriculum for course %s: %w", courseID, ErrNotFound)
		}
		return nil, err
	}
	return curriculumToDTO(curriculum), nil
}

func curriculumToDTO(curriculum *model.Curriculum) *dto.CurriculumDTO {
	return &dto.CurriculumDTO{
		CourseID:  curriculum.CourseID,
		Weeks:     curriculum.Weeks.Data(),
		UpdatedAt: curriculum.UpdatedAt,
	}
}
