package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

// GoalFilter narrows a user's goal list. Empty fields are ignored.
type GoalFilter struct {
	Type   models.GoalType
	Status models.GoalStatus
}

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	FindAll(ctx context.Context, userID string, filter GoalFilter) ([]*models.Goal, error)
	FindByID(ctx context.Context, id string) (*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) error
	UpdateProgress(ctx context.Context, id string, current float64, status models.GoalStatus) error
	Delete(ctx context.Context, id string) error
}

type goalRepo struct {
	db *gorm.DB
}

func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	err := r.db.WithContext(ctx).Create(goal).Error
	return goal, err
}

// FindAll returns newest goals first.
func (r *goalRepo) FindAll(ctx context.Context, userID string, filter GoalFilter) ([]*models.Goal, error) {
	var goals []*models.Goal
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *goalRepo) FindByID(ctx context.Context, id string) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

func (r *goalRepo) Update(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// UpdateProgress touches only current_value and status.
func (r *goalRepo) UpdateProgress(ctx context.Context, id string, current float64, status models.GoalStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"current_value": current, "status": status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *goalRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Goal{}, "id = ?", id))
}
