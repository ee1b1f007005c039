package exercises_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasiljevic/lifehub/internal/training/exercises"
)

type countingLister struct {
	calls int
	found []exercises.Exercise
}

func (l *countingLister) List(_ context.Context, _ exercises.ListParams) ([]exercises.Exercise, error) {
	l.calls++
	return l.found, nil
}

func TestCachedRepo_List(t *testing.T) {
	squat := exercises.PatternSquat
	repo := &countingLister{
		found: []exercises.Exercise{
			{ID: 1, Name: "goblet squat", Category: exercises.CategoryStrength, MovementPattern: &squat},
			{ID: 2, Name: "back squat", Category: exercises.CategoryStrength, MovementPattern: &squat},
		},
	}

	cachedRepo := exercises.NewCachedRepo(repo, 1024*1024, time.Minute)

	ctx := context.Background()
	params := exercises.ListParams{Patterns: []exercises.MovementPattern{exercises.PatternSquat}}

	found, err := cachedRepo.List(ctx, params)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, 1, repo.calls)

	// second call comes from cache
	found, err = cachedRepo.List(ctx, params)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "goblet squat", found[0].Name)
	assert.Equal(t, 1, repo.calls)

	// different params miss the cache
	_, err = cachedRepo.List(ctx, exercises.ListParams{Categories: []exercises.Category{exercises.CategoryConditioning}})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
