package repository

import (
	"errors"

	"github.com/lmnhat/Goldcrest/internal/model"
	"gorm.io/gorm"
)

type PerformanceRepository interface {
	Save(performance *model.StudentPerformance) error
	Find(studentID, courseID string) (*model.StudentPerformance, error)
}

type performanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) PerformanceRepository {
	return &performanceRepository{db: db}
}

// Save upserts the full profile for the (student, course) pair. Profiles are
// always whole-record replacements, never partial field updates.
func (r *performanceRepository) Save(performance *model.StudentPerformance) error {
	var existing model.StudentPerformance
	err := r.db.
		Where("student_id = ? AND course_id = ?", performance.StudentID, performance.CourseID).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.Create(performance).Error
	case err != nil:
		return err
	default:
		performance.ID = existing.ID
		return r.db.Save(performance).Error
	}
}

func (r *performanceRepository) Find(studentID, courseID string) (*model.StudentPerformance, error) {
	var performance model.StudentPerformance
	err := r.db.
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&performance).Error
	if err != nil {
		return nil, err
	}
	return &performance, nil
}
