package service

import (
	"context"
	"fmt"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/internal/seed"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

type ExerciseService struct {
	repo repository.ExerciseRepository
}

func NewExerciseService(repo repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{repo: repo}
}

// ListExercises applies at most one filter: search, then muscle group, then equipment.
func (s *ExerciseService) ListExercises(ctx context.Context, q ExerciseQuery) ([]*models.Exercise, error) {
	switch {
	case q.Search != "":
		return s.repo.Search(ctx, q.Search)
	case q.MuscleGroup != "":
		return s.repo.FindByMuscleGroup(ctx, q.MuscleGroup)
	case q.Equipment != "":
		return s.repo.FindByEquipment(ctx, q.Equipment)
	default:
		return s.repo.FindAll(ctx)
	}
}

func (s *ExerciseService) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	exercise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Exercise")
	}
	return exercise, nil
}

func (s *ExerciseService) CreateExercise(ctx context.Context, dto CreateExerciseDTO) (*models.Exercise, error) {
	exercise := &models.Exercise{
		Name:        dto.Name,
		MuscleGroup: dto.MuscleGroup,
		Equipment:   dto.Equipment,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Rating:      dto.Rating,
		Difficulty:  dto.Difficulty,
		Type:        dto.Type,
	}
	if exercise.Difficulty == "" {
		exercise.Difficulty = models.DifficultyIntermediate
	}
	if exercise.Type == "" {
		exercise.Type = models.ExerciseStrength
	}
	if _, err := s.repo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return exercise, nil
}

func (s *ExerciseService) UpdateExercise(ctx context.Context, id string, dto UpdateExerciseDTO) (*models.Exercise, error) {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		exercise.Name = *dto.Name
	}
	if dto.MuscleGroup != nil {
		exercise.MuscleGroup = *dto.MuscleGroup
	}
	if dto.Equipment != nil {
		exercise.Equipment = *dto.Equipment
	}
	if dto.Description != nil {
		exercise.Description = *dto.Description
	}
	if dto.ImageURL != nil {
		exercise.ImageURL = *dto.ImageURL
	}
	if dto.Rating != nil {
		exercise.Rating = *dto.Rating
	}
	if dto.Difficulty != nil {
		exercise.Difficulty = *dto.Difficulty
	}
	if dto.Type != nil {
		exercise.Type = *dto.Type
	}

	if err := s.repo.Update(ctx, exercise); err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	return exercise, nil
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookup(err, "Exercise")
	}
	return nil
}

// SeedExercises loads the built-in catalog into an empty table and returns
// how many rows were written.
func (s *ExerciseService) SeedExercises(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		return 0, conflict("Exercises already seeded")
	}

	catalog, err := seed.Exercises()
	if err != nil {
		return 0, err
	}
	created, err := s.repo.CreateMany(ctx, catalog)
	if err != nil {
		return 0, fmt.Errorf("seed exercises: %w", err)
	}
	utils.Log.Info("Exercises seeded", "count", len(created))
	return len(created), nil
}
