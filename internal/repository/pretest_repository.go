package repository

import (
	"github.com/lmnhat/Goldcrest/internal/model"
	"gorm.io/gorm"
)

type PretestRepository interface {
	Replace(pretest *model.Pretest) error
	FindByCourse(courseID string) (*model.Pretest, error)
	SaveAttempt(attempt *model.PretestAttempt) error
	FindLatestAttempt(studentID, courseID string) (*model.PretestAttempt, error)
}

type pretestRepository struct {
	db *gorm.DB
}

func NewPretestRepository(db *gorm.DB) PretestRepository {
	return &pretestRepository{db: db}
}

// Replace removes the current pretest for the course (if any) and stores the
// new one with its questions in a single transaction.
func (r *pretestRepository) Replace(pretest *model.Pretest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", pretest.CourseID).Delete(&model.Pretest{}).Error; err != nil {
			return err
		}
		return tx.Create(pretest).Error
	})
}

func (r *pretestRepository) FindByCourse(courseID string) (*model.Pretest, error) {
	var pretest model.Pretest
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("pretest_questions.position ASC")
		}).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		First(&pretest).Error
	if err != nil {
		return nil, err
	}
	return &pretest, nil
}

func (r *pretestRepository) SaveAttempt(attempt *model.PretestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *pretestRepository) FindLatestAttempt(studentID, courseID string) (*model.PretestAttempt, error) {
	var attempt model.PretestAttempt
	err := r.db.
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("completed_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
