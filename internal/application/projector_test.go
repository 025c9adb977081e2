package application

import (
	"testing"

	"github.com/softspoken/nvcpractice/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExercise() model.Exercise {
	return model.Exercise{
		ID:          3,
		Category:    model.CategoryGratitude,
		Name:        model.BilingualText{EN: "Gratitude journal", ZH: "感恩日记"},
		Description: model.BilingualText{EN: "Write down three things", ZH: "写下三件事"},
		Difficulty:  model.DifficultyBeginner,
		Audience:    model.AudienceIndividual,
		RelatedIDs:  []int64{5, 9},
		GratitudeExpression: &model.BilingualText{
			EN: "When you did X, I felt Y, because my need for Z was met.",
			ZH: "当你做了X，我感到Y，因为我对Z的需要得到了满足。",
		},
		Steps: []model.BilingualText{
			{EN: "Recall a moment", ZH: "回想一个时刻"},
			{EN: "Name the feeling", ZH: "说出感受"},
			{EN: "Name the met need", ZH: "说出被满足的需要"},
		},
	}
}

func TestProjectExercise_NoLanguage(t *testing.T) {
	p, err := ProjectExercise(sampleExercise(), "")
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "gratitude", p.Category)
	assert.Equal(t, "beginner", p.Difficulty)
	assert.Equal(t, "individual", p.Audience)
	assert.Equal(t, []int64{5, 9}, p.RelatedIDs)

	name, ok := p.Name.(map[string]string)
	require.True(t, ok, "bilingual field stays a language map")
	assert.Equal(t, "Gratitude journal", name["en"])
	assert.Equal(t, "感恩日记", name["zh"])

	steps, ok := p.Steps.([]model.BilingualText)
	require.True(t, ok)
	assert.Len(t, steps, 3)

	// Fields the record does not carry are omitted entirely.
	assert.Nil(t, p.Scenario)
	assert.Nil(t, p.Example)
	assert.Nil(t, p.RequestTemplate)
}

func TestProjectExercise_SingleLanguage(t *testing.T) {
	p, err := ProjectExercise(sampleExercise(), model.LanguageZH)
	require.NoError(t, err)

	assert.Equal(t, "感恩日记", p.Name)
	assert.Equal(t, "写下三件事", p.Description)
	assert.Equal(t, "当你做了X，我感到Y，因为我对Z的需要得到了满足。", p.GratitudeExpression)

	steps, ok := p.Steps.([]string)
	require.True(t, ok, "steps collapse to plain strings")
	assert.Equal(t, []string{"回想一个时刻", "说出感受", "说出被满足的需要"}, steps)

	// Metadata passes through unchanged regardless of language mode.
	assert.Equal(t, "gratitude", p.Category)
	assert.Equal(t, []int64{5, 9}, p.RelatedIDs)
}

// Projecting each language individually must agree with the corresponding
// entries of the no-language map.
func TestProjectExercise_RoundTrip(t *testing.T) {
	ex := sampleExercise()

	both, err := ProjectExercise(ex, "")
	require.NoError(t, err)
	name := both.Name.(map[string]string)

	en, err := ProjectExercise(ex, model.LanguageEN)
	require.NoError(t, err)
	zh, err := ProjectExercise(ex, model.LanguageZH)
	require.NoError(t, err)

	assert.Equal(t, name["en"], en.Name)
	assert.Equal(t, name["zh"], zh.Name)

	steps := both.Steps.([]model.BilingualText)
	enSteps := en.Steps.([]string)
	zhSteps := zh.Steps.([]string)
	require.Len(t, enSteps, len(steps))
	for i, step := range steps {
		assert.Equal(t, step.EN, enSteps[i], "collapsed sequences align by position")
		assert.Equal(t, step.ZH, zhSteps[i])
	}
}

func TestProjectExercise_InvalidLanguage(t *testing.T) {
	_, err := ProjectExercise(sampleExercise(), "fr")
	assert.ErrorIs(t, err, ErrInvalidLanguage, "unknown codes are rejected, never defaulted")
}

func TestProjectExercise_MinimalRecord(t *testing.T) {
	ex := model.Exercise{
		ID:          1,
		Category:    model.CategoryRequests,
		Name:        model.BilingualText{EN: "Ask clearly", ZH: "清晰地请求"},
		Description: model.BilingualText{EN: "desc", ZH: "描述"},
	}

	p, err := ProjectExercise(ex, model.LanguageEN)
	require.NoError(t, err)

	assert.Equal(t, "Ask clearly", p.Name)
	assert.Empty(t, p.Difficulty)
	assert.Empty(t, p.Audience)
	assert.Nil(t, p.Steps)
	assert.Nil(t, p.GratitudeExpression)
}
