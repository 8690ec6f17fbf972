package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
)

const defaultUpcomingLimit = 5

type WorkoutService struct {
	repo      repository.WorkoutRepository
	users     repository.UserRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewWorkoutService(repo repository.WorkoutRepository, users repository.UserRepository, publisher events.Publisher) *WorkoutService {
	return &WorkoutService{repo: repo, users: users, publisher: publisher, now: time.Now}
}

func (s *WorkoutService) ListWorkouts(ctx context.Context, userID string) ([]*models.Workout, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *WorkoutService) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	workout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Workout")
	}
	return workout, nil
}

// GetTodayWorkout returns nil without error when nothing is scheduled.
func (s *WorkoutService) GetTodayWorkout(ctx context.Context, userID, date string) (*models.Workout, error) {
	workout, err := s.repo.FindByUserAndDate(ctx, userID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return workout, err
}

func (s *WorkoutService) GetWorkoutsByDateRange(ctx context.Context, userID, startDate, endDate string) ([]*models.Workout, error) {
	return s.repo.FindByDateRange(ctx, userID, startDate, endDate)
}

func (s *WorkoutService) GetUpcomingWorkouts(ctx context.Context, userID, fromDate string, limit int) ([]*models.Workout, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	return s.repo.FindUpcoming(ctx, userID, fromDate, limit)
}

// GetWeeklyStats counts the workouts between weekStart and weekEnd by status.
func (s *WorkoutService) GetWeeklyStats(ctx context.Context, userID, weekStart, weekEnd string) (*WeeklyStats, error) {
	workouts, err := s.repo.FindByDateRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("weekly workouts: %w", err)
	}

	stats := &WeeklyStats{TotalWorkouts: len(workouts)}
	for _, w := range workouts {
		switch w.Status {
		case models.WorkoutCompleted:
			stats.CompletedWorkouts++
		case models.WorkoutPlanned:
			stats.PlannedWorkouts++
		case models.WorkoutSkipped:
			stats.SkippedWorkouts++
		}
	}
	return stats, nil
}

// CreateWorkout ignores any client totalDuration and sums the exercises.
func (s *WorkoutService) CreateWorkout(ctx context.Context, dto CreateWorkoutDTO) (*models.Workout, error) {
	if err := requireUser(ctx, s.users, dto.UserID); err != nil {
		return nil, err
	}

	exercises := toPlannedExercises(dto.Exercises)
	workout := &models.Workout{
		UserID:        dto.UserID,
		Name:          dto.Name,
		ScheduledDate: dto.ScheduledDate,
		Exercises:     exercises,
		TotalDuration: totalDuration(exercises),
		Status:        models.WorkoutPlanned,
		Notes:         dto.Notes,
	}
	if _, err := s.repo.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return workout, nil
}

// UpdateWorkout recomputes the total when exercises are supplied. A bare
// totalDuration is accepted only when the exercise list is left alone.
func (s *WorkoutService) UpdateWorkout(ctx context.Context, id string, dto UpdateWorkoutDTO) (*models.Workout, error) {
	workout, err := s.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		workout.Name = *dto.Name
	}
	if dto.ScheduledDate != nil {
		workout.ScheduledDate = *dto.ScheduledDate
	}
	if dto.Notes != nil {
		workout.Notes = dto.Notes
	}
	switch {
	case dto.Exercises != nil:
		exercises := toPlannedExercises(*dto.Exercises)
		workout.Exercises = exercises
		workout.TotalDuration = totalDuration(exercises)
	case dto.TotalDuration != nil:
		workout.TotalDuration = *dto.TotalDuration
	}

	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}
	return workout, nil
}

// CompleteWorkout moves a planned workout to completed.
func (s *WorkoutService) CompleteWorkout(ctx context.Context, id string) (*models.Workout, error) {
	return s.transition(ctx, id, models.WorkoutCompleted, events.WorkoutCompleted)
}

// SkipWorkout moves a planned workout to skipped.
func (s *WorkoutService) SkipWorkout(ctx context.Context, id string) (*models.Workout, error) {
	return s.transition(ctx, id, models.WorkoutSkipped, events.WorkoutSkipped)
}

func (s *WorkoutService) transition(ctx context.Context, id string, to models.WorkoutStatus, event events.Type) (*models.Workout, error) {
	workout, err := s.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout.Status != models.WorkoutPlanned {
		return nil, invalid("status", "planned", fmt.Sprintf("Workout is already %s", workout.Status))
	}

	workout.Status = to
	if to == models.WorkoutCompleted {
		now := s.now().UTC()
		workout.CompletedAt = &now
	}
	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}

	publish(ctx, s.publisher, events.New(event, workout.UserID, map[string]any{
		"workoutId":     workout.ID,
		"name":          workout.Name,
		"scheduledDate": workout.ScheduledDate,
	}))
	return workout, nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookup(err, "Workout")
	}
	return nil
}

// DuplicateWorkout copies name and exercises onto newDate as a fresh planned workout.
func (s *WorkoutService) DuplicateWorkout(ctx context.Context, id, newDate string) (*models.Workout, error) {
	src, err := s.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	exercises := make([]models.PlannedExercise, len(src.Exercises))
	copy(exercises, src.Exercises)

	workout := &models.Workout{
		UserID:        src.UserID,
		Name:          src.Name,
		ScheduledDate: newDate,
		Exercises:     exercises,
		TotalDuration: totalDuration(exercises),
		Status:        models.WorkoutPlanned,
	}
	if _, err := s.repo.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("duplicate workout: %w", err)
	}
	return workout, nil
}

func totalDuration(exercises []models.PlannedExercise) int {
	total := 0
	for _, e := range exercises {
		total += e.Duration
	}
	return total
}

func toPlannedExercises(in []PlannedExerciseDTO) []models.PlannedExercise {
	out := make([]models.PlannedExercise, 0, len(in))
	for _, e := range in {
		out = append(out, models.PlannedExercise{
			ExerciseID:   e.ExerciseID,
			ExerciseName: e.ExerciseName,
			Sets:         e.Sets,
			Reps:         e.Reps,
			Duration:     e.Duration,
			Notes:        e.Notes,
		})
	}
	return out
}
