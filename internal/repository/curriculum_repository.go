package repository

import (
	"github.com/lmnhat/Goldcrest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CurriculumRepository interface {
	Save(curriculum *model.Curriculum) error
	FindByCourse(courseID string) (*model.Curriculum, error)
}

type curriculumRepository struct {
	db *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) Save(curriculum *model.Curriculum) error {
	// One curriculum per course; saving again overwrites the weeks document.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		UpdateAll: true,
	}).Create(curriculum).Error
}

func (r *curriculumRepository) FindByCourse(courseID string) (*model.Curriculum, error) {
	var curriculum model.Curriculum
	if err := r.db.First(&curriculum, "course_id = ?", courseID).Error; err != nil {
		return nil, err
	}
	return &curriculum, nil
}
