package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

type ExerciseLogRepository interface {
	Create(ctx context.Context, log *models.ExerciseLog) (*models.ExerciseLog, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]*models.ExerciseLog, error)
	FindHistory(ctx context.Context, userID, exerciseName string, limit int) ([]*models.ExerciseLog, error)
	FindByID(ctx context.Context, id string) (*models.ExerciseLog, error)
	Update(ctx context.Context, log *models.ExerciseLog) error
	Delete(ctx context.Context, id string) error
}

type exerciseLogRepo struct {
	db *gorm.DB
}

func NewExerciseLogRepo(db *gorm.DB) ExerciseLogRepository {
	return &exerciseLogRepo{db: db}
}

func (r *exerciseLogRepo) Create(ctx context.Context, log *models.ExerciseLog) (*models.ExerciseLog, error) {
	err := r.db.WithContext(ctx).Create(log).Error
	return log, err
}

func (r *exerciseLogRepo) FindByUser(ctx context.Context, userID string, limit int) ([]*models.ExerciseLog, error) {
	var logs []*models.ExerciseLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("performed_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *exerciseLogRepo) FindHistory(ctx context.Context, userID, exerciseName string, limit int) ([]*models.ExerciseLog, error) {
	var logs []*models.ExerciseLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND exercise_name = ?", userID, exerciseName).
		Order("performed_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *exerciseLogRepo) FindByID(ctx context.Context, id string) (*models.ExerciseLog, error) {
	var log models.ExerciseLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

func (r *exerciseLogRepo) Update(ctx context.Context, log *models.ExerciseLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *exerciseLogRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.ExerciseLog{}, "id = ?", id))
}
