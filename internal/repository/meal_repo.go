package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	// FindAll returns a user's meals oldest first, optionally for one date.
	FindAll(ctx context.Context, userID, date string) ([]*models.Meal, error)
	FindByID(ctx context.Context, id string) (*models.Meal, error)
	Update(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id string) error
	TotalsByDate(ctx context.Context, userID, date string) (models.MacroTotals, error)
}

type mealRepo struct {
	db *gorm.DB
}

func NewMealRepo(db *gorm.DB) MealRepository {
	return &mealRepo{db: db}
}

func (r *mealRepo) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	err := r.db.WithContext(ctx).Create(meal).Error
	return meal, err
}

func (r *mealRepo) FindAll(ctx context.Context, userID, date string) ([]*models.Meal, error) {
	var meals []*models.Meal
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	err := q.Order("created_at ASC").Find(&meals).Error
	return meals, err
}

func (r *mealRepo) FindByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &meal, nil
}

// Update writes the whole row, items included.
func (r *mealRepo) Update(ctx context.Context, meal *models.Meal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *mealRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Meal{}, "id = ?", id))
}

func (r *mealRepo) TotalsByDate(ctx context.Context, userID, date string) (models.MacroTotals, error) {
	var totals models.MacroTotals
	err := r.db.WithContext(ctx).
		Model(&models.Meal{}).
		Select("COALESCE(SUM(calories), 0) AS total_calories, " +
			"COALESCE(SUM(protein), 0) AS total_protein, " +
			"COALESCE(SUM(carbs), 0) AS total_carbs, " +
			"COALESCE(SUM(fat), 0) AS total_fat").
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&totals).Error
	return totals, err
}
