package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/models"
)

func weightGoal(userID string) CreateGoalDTO {
	return CreateGoalDTO{
		UserID: userID, Name: "Lose weight", Type: models.GoalWeight,
		CurrentValue: ptr(80.0), GoalValue: ptr(75.0), Metric: models.MetricKg, TargetDate: ptr("2024-06-01"),
	}
}

func TestUpdateProgressCompletesWithinTolerance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	goal, err := env.goals.CreateGoal(ctx, weightGoal(u.ID))
	require.NoError(t, err)
	assert.Equal(t, models.GoalActive, goal.Status)
	assert.Equal(t, 80.0, goal.StartValue)

	updated, err := env.goals.UpdateProgress(ctx, goal.ID, 75.3)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, updated.Status)
	assert.Equal(t, 75.3, updated.CurrentValue)

	stored, err := env.goals.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, stored.Status)
	assert.Equal(t, []events.Type{events.GoalCompleted}, env.published.types())
}

func TestUpdateProgressOutsideToleranceStaysActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	goal, err := env.goals.CreateGoal(ctx, weightGoal(u.ID))
	require.NoError(t, err)

	updated, err := env.goals.UpdateProgress(ctx, goal.ID, 75.6)
	require.NoError(t, err)
	assert.Equal(t, models.GoalActive, updated.Status)
	assert.Empty(t, env.published.types())
}

func TestCompletedGoalIsNeverReopened(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	goal, err := env.goals.CreateGoal(ctx, weightGoal(u.ID))
	require.NoError(t, err)
	_, err = env.goals.UpdateProgress(ctx, goal.ID, 75)
	require.NoError(t, err)

	regressed, err := env.goals.UpdateProgress(ctx, goal.ID, 82)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, regressed.Status)
	assert.Equal(t, 82.0, regressed.CurrentValue)

	// the completion event fires once
	assert.Len(t, env.published.types(), 1)
}

func TestCreateGoalRequiresValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	in := CreateGoalDTO{
		UserID: u.ID, Name: "Pull-ups", Type: models.GoalPerformance,
		CurrentValue: ptr(0.0), Metric: models.MetricReps,
	}
	_, err := env.goals.CreateGoal(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "goalValue", verr.Details[0].Field)

	// the target date is optional
	in.GoalValue = ptr(10.0)
	goal, err := env.goals.CreateGoal(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, goal.TargetDate)

	goal, err = env.goals.UpdateProgress(ctx, goal.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.GoalActive, goal.Status)
}

func TestCalculateProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	goal, err := env.goals.CreateGoal(ctx, CreateGoalDTO{
		UserID: u.ID, Name: "Bench 100", Type: models.GoalPerformance,
		CurrentValue: ptr(80.0), GoalValue: ptr(100.0), Metric: models.MetricKg, TargetDate: ptr("2024-06-01"),
	})
	require.NoError(t, err)

	p, err := env.goals.CalculateProgress(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.ProgressPercentage)
	assert.Equal(t, 20.0, p.Difference)
	assert.False(t, p.IsCompleted)

	// increase-type goals are complete once current reaches target, however it got there
	current := 120.0
	_, err = env.goals.UpdateGoal(ctx, goal.ID, UpdateGoalDTO{CurrentValue: &current})
	require.NoError(t, err)
	p, err = env.goals.CalculateProgress(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, p.IsCompleted)
	assert.Equal(t, 100.0, p.ProgressPercentage)
	assert.Equal(t, -20.0, p.Difference)

	_, err = env.goals.CalculateProgress(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGoalsFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	w, err := env.goals.CreateGoal(ctx, weightGoal(u.ID))
	require.NoError(t, err)
	_, err = env.goals.CreateGoal(ctx, CreateGoalDTO{
		UserID: u.ID, Name: "Arms", Type: models.GoalMuscleMass,
		CurrentValue: ptr(35.0), GoalValue: ptr(38.0), Metric: models.MetricKg, TargetDate: ptr("2024-09-01"),
	})
	require.NoError(t, err)
	_, err = env.goals.UpdateProgress(ctx, w.ID, 75)
	require.NoError(t, err)

	all, err := env.goals.ListGoals(ctx, u.ID, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := env.goals.ListGoals(ctx, u.ID, "", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Arms", active[0].Name)

	weights, err := env.goals.ListGoals(ctx, u.ID, models.GoalWeight, false)
	require.NoError(t, err)
	require.Len(t, weights, 1)

	_, err = env.goals.ListGoals(ctx, u.ID, models.GoalType("speed"), false)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteGoal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "alice")

	goal, err := env.goals.CreateGoal(ctx, weightGoal(u.ID))
	require.NoError(t, err)

	require.NoError(t, env.goals.DeleteGoal(ctx, goal.ID))
	assert.ErrorIs(t, env.goals.DeleteGoal(ctx, goal.ID), ErrNotFound)
	_, err = env.goals.UpdateProgress(ctx, goal.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
