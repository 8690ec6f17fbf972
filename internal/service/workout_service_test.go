package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/models"
)

func pushDay(userID, date string) CreateWorkoutDTO {
	return CreateWorkoutDTO{
		UserID:        userID,
		Name:          "Push Day - Chest",
		ScheduledDate: date,
		Exercises: []PlannedExerciseDTO{
			{ExerciseName: "Bench Press", Sets: 4, Reps: "8-10", Duration: 20},
			{ExerciseName: "Overhead Press", Sets: 3, Reps: "AMRAP", Duration: 25},
		},
		TotalDuration: 999,
	}
}

func TestCreateWorkoutSumsDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	w, err := env.workouts.CreateWorkout(ctx, pushDay(u.ID, "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 45, w.TotalDuration)
	assert.Equal(t, models.WorkoutPlanned, w.Status)

	stored, err := env.workouts.GetWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.TotalDuration)
	require.Len(t, stored.Exercises, 2)
	assert.Equal(t, "AMRAP", stored.Exercises[1].Reps)
}

func TestUpdateWorkoutRecomputesDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	w, err := env.workouts.CreateWorkout(ctx, pushDay(u.ID, "2024-01-01"))
	require.NoError(t, err)

	total := 500
	exercises := []PlannedExerciseDTO{{ExerciseName: "Dips", Sets: 3, Reps: "12", Duration: 15}}
	updated, err := env.workouts.UpdateWorkout(ctx, w.ID, UpdateWorkoutDTO{Exercises: &exercises, TotalDuration: &total})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.TotalDuration)

	name := "Renamed"
	updated, err = env.workouts.UpdateWorkout(ctx, w.ID, UpdateWorkoutDTO{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.TotalDuration)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestCompleteAndSkipAreOneWay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	a, err := env.workouts.CreateWorkout(ctx, pushDay(u.ID, "2024-01-01"))
	require.NoError(t, err)
	b, err := env.workouts.CreateWorkout(ctx, pushDay(u.ID, "2024-01-02"))
	require.NoError(t, err)

	done, err := env.workouts.CompleteWorkout(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkoutCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = env.workouts.SkipWorkout(ctx, a.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.workouts.CompleteWorkout(ctx, a.ID)
	assert.ErrorIs(t, err, ErrValidation)

	skipped, err := env.workouts.SkipWorkout(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkoutSkipped, skipped.Status)
	assert.Nil(t, skipped.CompletedAt)

	_, err = env.workouts.CompleteWorkout(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []events.Type{events.WorkoutCompleted, events.WorkoutSkipped}, env.published.types())
}

func TestDuplicateWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	src, err := env.workouts.CreateWorkout(ctx, pushDay(u.ID, "2024-01-01"))
	require.NoError(t, err)
	_, err = env.workouts.CompleteWorkout(ctx, src.ID)
	require.NoError(t, err)

	dup, err := env.workouts.DuplicateWorkout(ctx, src.ID, "2024-01-08")
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "2024-01-08", dup.ScheduledDate)
	assert.Equal(t, models.WorkoutPlanned, dup.Status)
	assert.Nil(t, dup.CompletedAt)
	assert.Equal(t, src.Name, dup.Name)
	assert.Equal(t, 45, dup.TotalDuration)
	assert.Len(t, dup.Exercises, 2)

	_, err = env.workouts.DuplicateWorkout(ctx, "missing", "2024-01-08")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeeklyStatsAndQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	ids := map[string]string{}
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-10"} {
		w, err := env.workouts.CreateWorkout(ctx, pushDay(u.ID, d))
		require.NoError(t, err)
		ids[d] = w.ID
	}
	_, err := env.workouts.CompleteWorkout(ctx, ids["2024-01-01"])
	require.NoError(t, err)
	_, err = env.workouts.CompleteWorkout(ctx, ids["2024-01-02"])
	require.NoError(t, err)
	_, err = env.workouts.SkipWorkout(ctx, ids["2024-01-03"])
	require.NoError(t, err)

	stats, err := env.workouts.GetWeeklyStats(ctx, u.ID, "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, &WeeklyStats{TotalWorkouts: 4, CompletedWorkouts: 2, PlannedWorkouts: 1, SkippedWorkouts: 1}, stats)

	today, err := env.workouts.GetTodayWorkout(ctx, u.ID, "2024-01-04")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, ids["2024-01-04"], today.ID)

	none, err := env.workouts.GetTodayWorkout(ctx, u.ID, "2024-01-05")
	require.NoError(t, err)
	assert.Nil(t, none)

	upcoming, err := env.workouts.GetUpcomingWorkouts(ctx, u.ID, "2024-01-01", 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "2024-01-04", upcoming[0].ScheduledDate)

	ranged, err := env.workouts.GetWorkoutsByDateRange(ctx, u.ID, "2024-01-02", "2024-01-04")
	require.NoError(t, err)
	assert.Len(t, ranged, 3)
}
