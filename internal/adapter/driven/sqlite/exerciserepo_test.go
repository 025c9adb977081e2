package sqlite

import (
	"context"
	"testing"

	"github.com/softspoken/nvcpractice/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeExercise(category model.Category, nameEN string) model.Exercise {
	return model.Exercise{
		Category:    category,
		Name:        model.BilingualText{EN: nameEN, ZH: nameEN + " (zh)"},
		Description: model.BilingualText{EN: "desc", ZH: "描述"},
	}
}

func seedExercises(t *testing.T, repo *ExerciseRepo, exercises ...model.Exercise) {
	t.Helper()
	require.NoError(t, repo.InsertBatch(context.Background(), exercises))
}

func TestExerciseRepo_List_EmptyFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	seedExercises(t, repo,
		makeExercise(model.CategoryGratitude, "Gratitude journal"),
		makeExercise(model.CategoryRequests, "Clear requests"),
		makeExercise(model.CategoryFeelingsThoughts, "Feeling or thought"),
	)

	all, err := repo.List(ctx, model.ExerciseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty filter imposes no constraint")
}

func TestExerciseRepo_List_SingleField(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	seedExercises(t, repo,
		makeExercise(model.CategoryGratitude, "Gratitude journal"),
		makeExercise(model.CategoryRequests, "Clear requests"),
		makeExercise(model.CategoryFeelingsThoughts, "Feeling or thought"),
	)

	got, err := repo.List(ctx, model.ExerciseFilter{Category: model.CategoryGratitude})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gratitude journal", got[0].Name.EN)
}

func TestExerciseRepo_List_Conjunction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	a := makeExercise(model.CategoryRequests, "Solo beginner")
	a.Difficulty = model.DifficultyBeginner
	a.Audience = model.AudienceIndividual

	b := makeExercise(model.CategoryRequests, "Group beginner")
	b.Difficulty = model.DifficultyBeginner
	b.Audience = model.AudienceGroup

	c := makeExercise(model.CategoryRequests, "Solo advanced")
	c.Difficulty = model.DifficultyAdvanced
	c.Audience = model.AudienceIndividual

	seedExercises(t, repo, a, b, c)

	got, err := repo.List(ctx, model.ExerciseFilter{
		Category:   model.CategoryRequests,
		Difficulty: model.DifficultyBeginner,
		Audience:   model.AudienceIndividual,
	})
	require.NoError(t, err)
	require.Len(t, got, 1, "all provided predicates combine with AND")
	assert.Equal(t, "Solo beginner", got[0].Name.EN)
}

func TestExerciseRepo_List_NoMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	seedExercises(t, repo, makeExercise(model.CategoryGratitude, "Gratitude journal"))

	got, err := repo.List(ctx, model.ExerciseFilter{Category: model.CategoryConflictResolution})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExerciseRepo_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	ex := makeExercise(model.CategoryListeningBarriers, "Hearing the barrier")
	ex.Example = &model.BilingualText{EN: "You always do this", ZH: "你总是这样"}
	ex.Alternative = &model.BilingualText{EN: "When this happened, I felt...", ZH: "当这件事发生时，我感到……"}
	ex.RelatedIDs = []int64{7, 42}
	ex.Steps = []model.BilingualText{
		{EN: "Notice the judgment", ZH: "觉察评判"},
		{EN: "Restate as observation", ZH: "改述为观察"},
	}
	seedExercises(t, repo, ex)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, model.CategoryListeningBarriers, got.Category)
	assert.Equal(t, "Hearing the barrier", got.Name.EN)
	require.NotNil(t, got.Example)
	assert.Equal(t, "你总是这样", got.Example.ZH)
	require.NotNil(t, got.Alternative)
	assert.Equal(t, []int64{7, 42}, got.RelatedIDs)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "改述为观察", got.Steps[1].ZH)

	// Fields the record does not carry stay absent.
	assert.Nil(t, got.Scenario)
	assert.Nil(t, got.RequestTemplate)
	assert.Nil(t, got.GratitudeExpression)
	assert.Empty(t, got.Difficulty)
	assert.Empty(t, got.Audience)
}

func TestExerciseRepo_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, got, "missing id should return nil without error")
}

func TestExerciseRepo_InsertBatch_InvalidCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExerciseRepo(db)
	ctx := context.Background()

	err := repo.InsertBatch(ctx, []model.Exercise{makeExercise("not-a-category", "Broken")})
	assert.Error(t, err, "category CHECK constraint rejects values outside the closed set")
}
