package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) (*models.Workout, error)
	FindByID(ctx context.Context, id string) (*models.Workout, error)
	FindByUser(ctx context.Context, userID string) ([]*models.Workout, error)
	// FindByUserAndDate returns ErrNotFound when nothing is scheduled that day.
	FindByUserAndDate(ctx context.Context, userID, date string) (*models.Workout, error)
	// FindByDateRange includes both ends.
	FindByDateRange(ctx context.Context, userID, startDate, endDate string) ([]*models.Workout, error)
	FindUpcoming(ctx context.Context, userID, fromDate string, limit int) ([]*models.Workout, error)
	FindRecent(ctx context.Context, userID string, limit int) ([]*models.Workout, error)
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id string) error
}

type workoutRepo struct {
	db *gorm.DB
}

func NewWorkoutRepo(db *gorm.DB) WorkoutRepository {
	return &workoutRepo{db: db}
}

func (r *workoutRepo) Create(ctx context.Context, workout *models.Workout) (*models.Workout, error) {
	err := r.db.WithContext(ctx).Create(workout).Error
	return workout, err
}

func (r *workoutRepo) FindByID(ctx context.Context, id string) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).First(&workout, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &workout, nil
}

func (r *workoutRepo) FindByUser(ctx context.Context, userID string) ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_date ASC").
		Find(&workouts).Error
	return workouts, err
}

func (r *workoutRepo) FindByUserAndDate(ctx context.Context, userID, date string) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_date = ?", userID, date).
		Order("created_at ASC").
		First(&workout).Error
	if err != nil {
		return nil, translate(err)
	}
	return &workout, nil
}

func (r *workoutRepo) FindByDateRange(ctx context.Context, userID, startDate, endDate string) ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("scheduled_date ASC").
		Find(&workouts).Error
	return workouts, err
}

// FindUpcoming returns planned workouts from fromDate onwards, soonest first.
func (r *workoutRepo) FindUpcoming(ctx context.Context, userID, fromDate string, limit int) ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_date >= ? AND status = ?", userID, fromDate, models.WorkoutPlanned).
		Order("scheduled_date ASC").
		Limit(limit).
		Find(&workouts).Error
	return workouts, err
}

// FindRecent returns the latest workouts by scheduled date, newest first.
func (r *workoutRepo) FindRecent(ctx context.Context, userID string, limit int) ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_date DESC").
		Limit(limit).
		Find(&workouts).Error
	return workouts, err
}

func (r *workoutRepo) Update(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Save(workout).Error
}

func (r *workoutRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Workout{}, "id = ?", id))
}
