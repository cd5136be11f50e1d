package repository

import (
	"errors"

	"github.com/lmnhat/Goldcrest/internal/model"
	"gorm.io/gorm"
)

type QuizAttemptRepository interface {
	Save(attempt *model.WeeklyQuizAttempt) error
	FindAllForStudentCourse(studentID, courseID string) ([]model.WeeklyQuizAttempt, error)
	FindMainAttempt(studentID, courseID string, weekNumber int) (*model.WeeklyQuizAttempt, error)
	HasAttempt(studentID, courseID string, weekNumber int, quizType string) (bool, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Save(attempt *model.WeeklyQuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *quizAttemptRepository) FindAllForStudentCourse(studentID, courseID string) ([]model.WeeklyQuizAttempt, error) {
	var attempts []model.WeeklyQuizAttempt
	err := r.db.
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *quizAttemptRepository) FindMainAttempt(studentID, courseID string, weekNumber int) (*model.WeeklyQuizAttempt, error) {
	var attempt model.WeeklyQuizAttempt
	err := r.db.
		Where("student_id = ? AND course_id = ? AND week_number = ? AND quiz_type = ?",
			studentID, courseID, weekNumber, model.QuizTypeMain).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) HasAttempt(studentID, courseID string, weekNumber int, quizType string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WeeklyQuizAttempt{}).
		Where("student_id = ? AND course_id = ? AND week_number = ? AND quiz_type = ?",
			studentID, courseID, weekNumber, quizType).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
