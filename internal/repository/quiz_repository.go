package repository

import (
	"github.com/lmnhat/Goldcrest/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Save(quiz *model.WeeklyQuiz) error
	FindCurrent(courseID string, weekNumber int, quizType string) (*model.WeeklyQuiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// Save persists a generated quiz. main and refresher quizzes replace the
// current instance for their (course, week, kind) scope; dynamic quizzes are
// append-only, each generation is a new row.
func (r *quizRepository) Save(quiz *model.WeeklyQuiz) error {
	if quiz.QuizType == model.QuizTypeDynamic {
		return r.db.Create(quiz).Error
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("course_id = ? AND week_number = ? AND quiz_type = ?",
				quiz.CourseID, quiz.WeekNumber, quiz.QuizType).
			Delete(&model.WeeklyQuiz{}).Error
		if err != nil {
			return err
		}
		return tx.Create(quiz).Error
	})
}

// FindCurrent returns the current quiz for the scope: the only live
// main/refresher instance, or the most recently generated dynamic one.
func (r *quizRepository) FindCurrent(courseID string, weekNumber int, quizType string) (*model.WeeklyQuiz, error) {
	var quiz model.WeeklyQuiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.position ASC")
		}).
		Where("course_id = ? AND week_number = ? AND quiz_type = ?", courseID, weekNumber, quizType).
		Order("created_at DESC").
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
