package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
)

const (
	logListLimit    = 50
	logHistoryLimit = 10
)

// ExerciseLogService works on the calling user's logs only. A log owned by
// someone else is reported as missing.
type ExerciseLogService struct {
	repo repository.ExerciseLogRepository
	now  func() time.Time
}

func NewExerciseLogService(repo repository.ExerciseLogRepository) *ExerciseLogService {
	return &ExerciseLogService{repo: repo, now: time.Now}
}

// ListLogs returns the user's 50 most recent logs.
func (s *ExerciseLogService) ListLogs(ctx context.Context, userID string) ([]*models.ExerciseLog, error) {
	return s.repo.FindByUser(ctx, userID, logListLimit)
}

// GetHistory returns the 10 most recent logs for one exercise.
func (s *ExerciseLogService) GetHistory(ctx context.Context, userID, exerciseName string) ([]*models.ExerciseLog, error) {
	return s.repo.FindHistory(ctx, userID, exerciseName, logHistoryLimit)
}

func (s *ExerciseLogService) CreateLog(ctx context.Context, userID string, dto CreateExerciseLogDTO) (*models.ExerciseLog, error) {
	log := &models.ExerciseLog{
		UserID:       userID,
		ExerciseName: dto.ExerciseName,
		Weight:       dto.Weight,
		Reps:         dto.Reps,
		Sets:         dto.Sets,
		WorkoutType:  dto.WorkoutType,
		Notes:        dto.Notes,
		PerformedAt:  s.now().UTC(),
	}
	if _, err := s.repo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create exercise log: %w", err)
	}
	return log, nil
}

func (s *ExerciseLogService) UpdateLog(ctx context.Context, userID, id string, dto UpdateExerciseLogDTO) (*models.ExerciseLog, error) {
	log, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if dto.ExerciseName != nil {
		log.ExerciseName = *dto.ExerciseName
	}
	if dto.Weight != nil {
		log.Weight = *dto.Weight
	}
	if dto.Reps != nil {
		log.Reps = *dto.Reps
	}
	if dto.Sets != nil {
		log.Sets = *dto.Sets
	}
	if dto.WorkoutType != nil {
		log.WorkoutType = *dto.WorkoutType
	}
	if dto.Notes != nil {
		log.Notes = dto.Notes
	}

	if err := s.repo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("update exercise log: %w", err)
	}
	return log, nil
}

func (s *ExerciseLogService) DeleteLog(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookup(err, "Exercise log")
	}
	return nil
}

func (s *ExerciseLogService) owned(ctx context.Context, userID, id string) (*models.ExerciseLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Exercise log")
	}
	if log.UserID != userID {
		return nil, notFound("Exercise log")
	}
	return log, nil
}
