package service

import (
	"errors"

	"github.com/lmnhat/Goldcrest/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the GORM repositories' contracts,
// including gorm.ErrRecordNotFound on missing rows, so services are tested
// against the same error surface they see in production.

type fakeCurriculumRepo struct {
	curricula map[string]*model.Curriculum
}

func newFakeCurriculumRepo() *fakeCurriculumRepo {
	return &fakeCurriculumRepo{curricula: make(map[string]*model.Curriculum)}
}

func (r *fakeCurriculumRepo) Save(curriculum *model.Curriculum) error {
	r.curricula[curriculum.CourseID] = curriculum
	return nil
}

func (r *fakeCurriculumRepo) FindByCourse(courseID string) (*model.Curriculum, error) {
	curriculum, ok := r.curricula[courseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return curriculum, nil
}

type fakePretestRepo struct {
	pretests map[string]*model.Pretest
	attempts []*model.PretestAttempt
}

func newFakePretestRepo() *fakePretestRepo {
	return &fakePretestRepo{pretests: make(map[string]*model.Pretest)}
}

func (r *fakePretestRepo) Replace(pretest *model.Pretest) error {
	r.pretests[pretest.CourseID] = pretest
	return nil
}

func (r *fakePretestRepo) FindByCourse(courseID string) (*model.Pretest, error) {
	pretest, ok := r.pretests[courseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pretest, nil
}

func (r *fakePretestRepo) SaveAttempt(attempt *model.PretestAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *fakePretestRepo) FindLatestAttempt(studentID, courseID string) (*model.PretestAttempt, error) {
	for i := len(r.attempts) - 1; i >= 0; i-- {
		a := r.attempts[i]
		if a.StudentID == studentID && a.CourseID == courseID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeQuizRepo struct {
	quizzes []*model.WeeklyQuiz
}

func (r *fakeQuizRepo) Save(quiz *model.WeeklyQuiz) error {
	if quiz.QuizType != model.QuizTypeDynamic {
		kept := r.quizzes[:0]
		for _, q := range r.quizzes {
			if !(q.CourseID == quiz.CourseID && q.WeekNumber == quiz.WeekNumber && q.QuizType == quiz.QuizType) {
				kept = append(kept, q)
			}
		}
		r.quizzes = kept
	}
	r.quizzes = append(r.quizzes, quiz)
	return nil
}

func (r *fakeQuizRepo) FindCurrent(courseID string, weekNumber int, quizType string) (*model.WeeklyQuiz, error) {
	for i := len(r.quizzes) - 1; i >= 0; i-- {
		q := r.quizzes[i]
		if q.CourseID == courseID && q.WeekNumber == weekNumber && q.QuizType == quizType {
			return q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAttemptRepo struct {
	attempts []*model.WeeklyQuizAttempt
}

func (r *fakeAttemptRepo) Save(attempt *model.WeeklyQuizAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *fakeAttemptRepo) FindAllForStudentCourse(studentID, courseID string) ([]model.WeeklyQuizAttempt, error) {
	var out []model.WeeklyQuizAttempt
	for _, a := range r.attempts {
		if a.StudentID == studentID && a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) FindMainAttempt(studentID, courseID string, weekNumber int) (*model.WeeklyQuizAttempt, error) {
	for _, a := range r.attempts {
		if a.StudentID == studentID && a.CourseID == courseID && a.WeekNumber == weekNumber && a.QuizType == model.QuizTypeMain {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) HasAttempt(studentID, courseID string, weekNumber int, quizType string) (bool, error) {
	for _, a := range r.attempts {
		if a.StudentID == studentID && a.CourseID == courseID && a.WeekNumber == weekNumber && a.QuizType == quizType {
			return true, nil
		}
	}
	return false, nil
}

type fakePerformanceRepo struct {
	profiles map[string]*model.StudentPerformance
	saves    int
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{profiles: make(map[string]*model.StudentPerformance)}
}

func (r *fakePerformanceRepo) Save(performance *model.StudentPerformance) error {
	r.saves++
	r.profiles[performance.StudentID+"/"+performance.CourseID] = performance
	return nil
}

func (r *fakePerformanceRepo) Find(studentID, courseID string) (*model.StudentPerformance, error) {
	profile, ok := r.profiles[studentID+"/"+courseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

// fakeGenerator returns a canned payload and records what it was asked for.
type fakeGenerator struct {
	payload        string
	err            error
	calls          int
	lastWeaknesses []string
	lastRecPrompt  RecommendationPrompt
}

func (g *fakeGenerator) generateCanned() (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.payload, nil
}

func (g *fakeGenerator) GeneratePretest([]model.Week) (string, error) {
	return g.generateCanned()
}

func (g *fakeGenerator) GenerateMainQuiz(int, []model.Topic, []model.Topic) (string, error) {
	return g.generateCanned()
}

func (g *fakeGenerator) GenerateRefresherQuiz(int, []model.Topic) (string, error) {
	return g.generateCanned()
}

func (g *fakeGenerator) GenerateDynamicQuiz(_ int, _ []model.Topic, weaknesses []string) (string, error) {
	g.lastWeaknesses = weaknesses
	return g.generateCanned()
}

func (g *fakeGenerator) GenerateRecommendation(req RecommendationPrompt) (string, error) {
	g.lastRecPrompt = req
	return g.generateCanned()
}

// fakeRecommender satisfies RecommendationService without a generator round-trip.
type fakeRecommender struct {
	rec   *model.Recommendation
	err   error
	calls int
}

func (r *fakeRecommender) RecommendForAnalysis(string, model.QuizAnalysis) (*model.Recommendation, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rec, nil
}

var errGeneratorDown = errors.New("generator unavailable")
