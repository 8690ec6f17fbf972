package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseLogsAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	log, err := env.logs.CreateLog(ctx, alice.ID, CreateExerciseLogDTO{
		ExerciseName: "Squat", Weight: 100, Reps: 5, Sets: 5, WorkoutType: "strength",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, log.UserID)
	assert.False(t, log.PerformedAt.IsZero())

	reps := 8
	_, err = env.logs.UpdateLog(ctx, bob.ID, log.ID, UpdateExerciseLogDTO{Reps: &reps})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.logs.DeleteLog(ctx, bob.ID, log.ID), ErrNotFound)

	updated, err := env.logs.UpdateLog(ctx, alice.ID, log.ID, UpdateExerciseLogDTO{Reps: &reps})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Reps)
	assert.Equal(t, 100.0, updated.Weight)

	bobs, err := env.logs.ListLogs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	require.NoError(t, env.logs.DeleteLog(ctx, alice.ID, log.ID))
	assert.ErrorIs(t, env.logs.DeleteLog(ctx, alice.ID, log.ID), ErrNotFound)
}

func TestExerciseHistoryNewestFirstAndLimited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		env.logs.now = func() time.Time { return at }
		_, err := env.logs.CreateLog(ctx, u.ID, CreateExerciseLogDTO{
			ExerciseName: "Deadlift", Weight: float64(100 + i), Reps: 5, Sets: 1, WorkoutType: "strength",
			Notes: ptr(fmt.Sprintf("set %d", i)),
		})
		require.NoError(t, err)
	}
	_, err := env.logs.CreateLog(ctx, u.ID, CreateExerciseLogDTO{
		ExerciseName: "Row", Reps: 10, Sets: 3, WorkoutType: "strength",
	})
	require.NoError(t, err)

	history, err := env.logs.GetHistory(ctx, u.ID, "Deadlift")
	require.NoError(t, err)
	require.Len(t, history, 10)
	assert.Equal(t, 111.0, history[0].Weight)
	assert.Equal(t, 102.0, history[9].Weight)

	all, err := env.logs.ListLogs(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 13)
}
