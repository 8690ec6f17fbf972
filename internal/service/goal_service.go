package service

import (
	"context"
	"fmt"

	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

type GoalService struct {
	repo      repository.GoalRepository
	users     repository.UserRepository
	publisher events.Publisher
}

func NewGoalService(repo repository.GoalRepository, users repository.UserRepository, publisher events.Publisher) *GoalService {
	return &GoalService{repo: repo, users: users, publisher: publisher}
}

// ListGoals returns the user's goals, newest first. A non-empty goalType wins
// over activeOnly.
func (s *GoalService) ListGoals(ctx context.Context, userID string, goalType models.GoalType, activeOnly bool) ([]*models.Goal, error) {
	filter := repository.GoalFilter{}
	switch {
	case goalType != "":
		if !goalType.Valid() {
			return nil, invalid("type", "oneof", "Invalid goal type")
		}
		filter.Type = goalType
	case activeOnly:
		filter.Status = models.GoalActive
	}
	return s.repo.FindAll(ctx, userID, filter)
}

func (s *GoalService) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Goal")
	}
	return goal, nil
}

// CreateGoal opens a goal in the active state. The starting value is kept
// for reference only.
func (s *GoalService) CreateGoal(ctx context.Context, dto CreateGoalDTO) (*models.Goal, error) {
	if err := requireUser(ctx, s.users, dto.UserID); err != nil {
		return nil, err
	}
	if dto.CurrentValue == nil {
		return nil, invalid("currentValue", "required", "currentValue is required")
	}
	if dto.GoalValue == nil {
		return nil, invalid("goalValue", "required", "goalValue is required")
	}

	goal := &models.Goal{
		UserID:       dto.UserID,
		Name:         dto.Name,
		Type:         dto.Type,
		ExerciseName: dto.ExerciseName,
		Description:  dto.Description,
		StartValue:   *dto.CurrentValue,
		CurrentValue: *dto.CurrentValue,
		GoalValue:    *dto.GoalValue,
		Metric:       dto.Metric,
		TargetDate:   dto.TargetDate,
		Status:       models.GoalActive,
	}
	if _, err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

// UpdateGoal edits descriptive fields. Status is only ever changed by
// UpdateProgress.
func (s *GoalService) UpdateGoal(ctx context.Context, id string, dto UpdateGoalDTO) (*models.Goal, error) {
	goal, err := s.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		goal.Name = *dto.Name
	}
	if dto.Type != nil {
		goal.Type = *dto.Type
	}
	if dto.ExerciseName != nil {
		goal.ExerciseName = dto.ExerciseName
	}
	if dto.Description != nil {
		goal.Description = dto.Description
	}
	if dto.CurrentValue != nil {
		goal.CurrentValue = *dto.CurrentValue
	}
	if dto.GoalValue != nil {
		goal.GoalValue = *dto.GoalValue
	}
	if dto.Metric != nil {
		goal.Metric = *dto.Metric
	}
	if dto.TargetDate != nil {
		goal.TargetDate = dto.TargetDate
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return goal, nil
}

// UpdateProgress records a new current value. When the completion rule fires
// on an active goal it becomes completed; a completed goal is never reopened.
func (s *GoalService) UpdateProgress(ctx context.Context, id string, current float64) (*models.Goal, error) {
	goal, err := s.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	status := goal.Status
	justCompleted := false
	if status != models.GoalCompleted && EvaluateGoal(goal.Type, current, goal.GoalValue).Completed {
		status = models.GoalCompleted
		justCompleted = true
	}

	if err := s.repo.UpdateProgress(ctx, id, current, status); err != nil {
		return nil, lookup(err, "Goal")
	}
	goal.CurrentValue = current
	goal.Status = status

	if justCompleted {
		utils.Log.Info("Goal completed", "goalId", goal.ID, "userId", goal.UserID)
		publish(ctx, s.publisher, events.New(events.GoalCompleted, goal.UserID, map[string]any{
			"goalId":       goal.ID,
			"name":         goal.Name,
			"currentValue": goal.CurrentValue,
			"goalValue":    goal.GoalValue,
		}))
	}
	return goal, nil
}

// CalculateProgress reports how far the goal is along without changing it.
func (s *GoalService) CalculateProgress(ctx context.Context, id string) (*GoalProgress, error) {
	goal, err := s.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	eval := EvaluateGoal(goal.Type, goal.CurrentValue, goal.GoalValue)
	return &GoalProgress{
		Goal:               goal,
		CurrentValue:       goal.CurrentValue,
		GoalValue:          goal.GoalValue,
		Difference:         goal.GoalValue - goal.CurrentValue,
		ProgressPercentage: eval.Percentage,
		IsCompleted:        goal.Status == models.GoalCompleted || eval.Completed,
	}, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookup(err, "Goal")
	}
	return nil
}

// publish never fails the calling operation.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		utils.Log.Error("Event publish failed", "type", e.Type, "error", err)
	}
}
