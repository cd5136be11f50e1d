package service

import (
	"testing"

	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/grading"
	"github.com/lmnhat/Goldcrest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const pretestPayload = `{"questions": [
  {"id": "q1", "question": "What is a pointer?", "options": ["A", "B", "C", "D"], "correctAnswer": 0, "topicId": "t1", "topicTitle": "Pointers"},
  {"id": "q2", "question": "What is nil?", "options": ["A", "B", "C", "D"], "correctAnswer": 1, "topicId": "t1", "topicTitle": "Pointers"}
]}`

type pretestFixture struct {
	svc         PretestService
	curricula   *fakeCurriculumRepo
	pretests    *fakePretestRepo
	recommender *fakeRecommender
	generator   *fakeGenerator
}

func newPretestFixture(t *testing.T) *pretestFixture {
	t.Helper()

	f := &pretestFixture{
		curricula: newFakeCurriculumRepo(),
		pretests:  newFakePretestRepo(),
		recommender: &fakeRecommender{rec: &model.Recommendation{
			TopicID:        "t1",
			TopicTitle:     "Pointers",
			Recommendation: "Review pointer basics.",
			ResourceURL:    "https://example.com/pointers",
			ResourceType:   "article",
		}},
		generator: &fakeGenerator{payload: pretestPayload},
	}
	f.svc = NewPretestService(f.curricula, f.pretests, f.recommender, f.generator)

	require.NoError(t, f.curricula.Save(&model.Curriculum{
		CourseID: "go101",
		Weeks: datatypes.NewJSONType([]model.Week{
			{WeekNumber: 1, Title: "Basics", Topics: []model.Topic{{ID: "t1", Title: "Pointers"}}},
		}),
	}))
	return f
}

func TestGeneratePretestReplacesCurrent(t *testing.T) {
	f := newPretestFixture(t)

	first, err := f.svc.Generate("go101")
	require.NoError(t, err)
	assert.Equal(t, 2, first.MaxScore)
	require.Len(t, first.Questions, 2)

	second, err := f.svc.Generate("go101")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	current, err := f.svc.Get("go101")
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestGeneratePretestWithoutCurriculum(t *testing.T) {
	f := newPretestFixture(t)

	_, err := f.svc.Generate("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, f.generator.calls)
}

// Diagnostic scenario: one of two questions correct gives 50%, band fail,
// topic t1 weak, and a mandated recommendation.
func TestSubmitPretestScenario(t *testing.T) {
	f := newPretestFixture(t)
	pretest, err := f.svc.Generate("go101")
	require.NoError(t, err)

	result, err := f.svc.Submit(dto.PretestSubmissionRequest{
		StudentID: "s1",
		CourseID:  "go101",
		PretestID: pretest.ID,
		Answers:   map[string]int{"q1": 0, "q2": 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Attempt.Score)
	assert.Equal(t, 2, result.Attempt.MaxScore)
	assert.Equal(t, 50.0, result.Attempt.Percentage)
	assert.Equal(t, grading.BandFail, result.Analysis.PerformanceLevel)
	assert.Equal(t, []string{"Pointers"}, result.Analysis.Weaknesses)

	require.NotNil(t, result.Recommendation)
	assert.Equal(t, "t1", result.Recommendation.TopicID)
	assert.Equal(t, 1, f.recommender.calls)
	assert.Len(t, f.pretests.attempts, 1)
}

func TestSubmitPretestScopeMismatch(t *testing.T) {
	f := newPretestFixture(t)
	_, err := f.svc.Generate("go101")
	require.NoError(t, err)

	_, err = f.svc.Submit(dto.PretestSubmissionRequest{
		StudentID: "s1",
		CourseID:  "go101",
		PretestID: "pretest_stale",
		Answers:   map[string]int{"q1": 0},
	})
	assert.ErrorIs(t, err, ErrScopeMismatch)
	assert.Empty(t, f.pretests.attempts)
}

func TestSubmitPretestRecommendationFailureAbortsWrite(t *testing.T) {
	f := newPretestFixture(t)
	pretest, err := f.svc.Generate("go101")
	require.NoError(t, err)

	f.recommender.err = errGeneratorDown
	_, err = f.svc.Submit(dto.PretestSubmissionRequest{
		StudentID: "s1",
		CourseID:  "go101",
		PretestID: pretest.ID,
		Answers:   map[string]int{"q1": 0, "q2": 0},
	})
	require.Error(t, err)
	// The submission is not successful without its mandated recommendation,
	// and no attempt is persisted.
	assert.Empty(t, f.pretests.attempts)
}

func TestSubmitPretestHighScoreSkipsRecommendation(t *testing.T) {
	f := newPretestFixture(t)
	pretest, err := f.svc.Generate("go101")
	require.NoError(t, err)

	result, err := f.svc.Submit(dto.PretestSubmissionRequest{
		StudentID: "s1",
		CourseID:  "go101",
		PretestID: pretest.ID,
		Answers:   map[string]int{"q1": 0, "q2": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Attempt.Percentage)
	assert.Equal(t, grading.BandModeratePlus, result.Analysis.PerformanceLevel)
	assert.Nil(t, result.Recommendation)
	assert.Equal(t, 0, f.recommender.calls)
}

func TestGetPretestResult(t *testing.T) {
	f := newPretestFixture(t)
	pretest, err := f.svc.Generate("go101")
	require.NoError(t, err)

	_, err = f.svc.Submit(dto.PretestSubmissionRequest{
		StudentID: "s1",
		CourseID:  "go101",
		PretestID: pretest.ID,
		Answers:   map[string]int{"q1": 0, "q2": 0},
	})
	require.NoError(t, err)

	result, err := f.svc.GetResult("s1", "go101")
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Attempt.Percentage)
	assert.Equal(t, grading.BandFail, result.Analysis.PerformanceLevel)
	require.NotNil(t, result.Recommendation)

	_, err = f.svc.GetResult("someone_else", "go101")
	assert.ErrorIs(t, err, ErrNotFound)
}
