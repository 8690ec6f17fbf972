package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error)
	CreateMany(ctx context.Context, exercises []*models.Exercise) ([]*models.Exercise, error)
	FindAll(ctx context.Context) ([]*models.Exercise, error)
	FindByID(ctx context.Context, id string) (*models.Exercise, error)
	FindByMuscleGroup(ctx context.Context, muscleGroup string) ([]*models.Exercise, error)
	FindByEquipment(ctx context.Context, equipment string) ([]*models.Exercise, error)
	Search(ctx context.Context, query string) ([]*models.Exercise, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, id string) error
}

type exerciseRepo struct {
	db *gorm.DB
}

func NewExerciseRepo(db *gorm.DB) ExerciseRepository {
	return &exerciseRepo{db: db}
}

func (r *exerciseRepo) Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error) {
	err := r.db.WithContext(ctx).Create(exercise).Error
	return exercise, err
}

func (r *exerciseRepo) CreateMany(ctx context.Context, exercises []*models.Exercise) ([]*models.Exercise, error) {
	if len(exercises) == 0 {
		return exercises, nil
	}
	err := r.db.WithContext(ctx).CreateInBatches(exercises, 100).Error
	return exercises, err
}

func (r *exerciseRepo) FindAll(ctx context.Context) ([]*models.Exercise, error) {
	return r.find(ctx, r.db)
}

func (r *exerciseRepo) FindByID(ctx context.Context, id string) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &exercise, nil
}

func (r *exerciseRepo) FindByMuscleGroup(ctx context.Context, muscleGroup string) ([]*models.Exercise, error) {
	return r.find(ctx, r.db.Where("muscle_group = ?", muscleGroup))
}

func (r *exerciseRepo) FindByEquipment(ctx context.Context, equipment string) ([]*models.Exercise, error) {
	return r.find(ctx, r.db.Where("equipment = ?", equipment))
}

// Search is a case-insensitive substring match over name, muscle group and equipment.
func (r *exerciseRepo) Search(ctx context.Context, query string) ([]*models.Exercise, error) {
	like := "%" + strings.ToLower(query) + "%"
	return r.find(ctx, r.db.Where(
		"LOWER(name) LIKE ? OR LOWER(muscle_group) LIKE ? OR LOWER(equipment) LIKE ?",
		like, like, like,
	))
}

func (r *exerciseRepo) find(ctx context.Context, q *gorm.DB) ([]*models.Exercise, error) {
	var exercises []*models.Exercise
	err := q.WithContext(ctx).Order("name ASC").Find(&exercises).Error
	return exercises, err
}

func (r *exerciseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Exercise{}).Count(&count).Error
	return count, err
}

func (r *exerciseRepo) Update(ctx context.Context, exercise *models.Exercise) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

func (r *exerciseRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Exercise{}, "id = ?", id))
}
