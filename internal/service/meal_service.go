package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

type MealService struct {
	repo  repository.MealRepository
	users repository.UserRepository
}

func NewMealService(repo repository.MealRepository, users repository.UserRepository) *MealService {
	return &MealService{repo: repo, users: users}
}

func (s *MealService) ListMeals(ctx context.Context, userID, date string) ([]*models.Meal, error) {
	return s.repo.FindAll(ctx, userID, date)
}

func (s *MealService) GetMeal(ctx context.Context, id string) (*models.Meal, error) {
	meal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Meal")
	}
	return meal, nil
}

// CreateMeal stores the totals as sent by the client. Only item removal
// recomputes them.
func (s *MealService) CreateMeal(ctx context.Context, dto CreateMealDTO) (*models.Meal, error) {
	if err := requireUser(ctx, s.users, dto.UserID); err != nil {
		return nil, err
	}
	macros := []struct {
		field string
		value *float64
	}{
		{"calories", dto.Calories},
		{"protein", dto.Protein},
		{"carbs", dto.Carbs},
		{"fat", dto.Fat},
	}
	for _, m := range macros {
		if m.value == nil {
			return nil, invalid(m.field, "required", m.field+" is required")
		}
	}

	meal := &models.Meal{
		UserID:      dto.UserID,
		Name:        dto.Name,
		Type:        dto.Type,
		Date:        dto.Date,
		Calories:    *dto.Calories,
		Protein:     *dto.Protein,
		Carbs:       *dto.Carbs,
		Fat:         *dto.Fat,
		Items:       toFoodItems(dto.Items),
		Description: dto.Description,
	}
	if _, err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return meal, nil
}

func (s *MealService) UpdateMeal(ctx context.Context, id string, dto UpdateMealDTO) (*models.Meal, error) {
	meal, err := s.GetMeal(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		meal.Name = *dto.Name
	}
	if dto.Type != nil {
		meal.Type = *dto.Type
	}
	if dto.Date != nil {
		meal.Date = *dto.Date
	}
	if dto.Calories != nil {
		meal.Calories = *dto.Calories
	}
	if dto.Protein != nil {
		meal.Protein = *dto.Protein
	}
	if dto.Carbs != nil {
		meal.Carbs = *dto.Carbs
	}
	if dto.Fat != nil {
		meal.Fat = *dto.Fat
	}
	if dto.Items != nil {
		meal.Items = toFoodItems(*dto.Items)
	}
	if dto.Description != nil {
		meal.Description = dto.Description
	}

	if err := s.repo.Update(ctx, meal); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	return meal, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookup(err, "Meal")
	}
	return nil
}

// GetDailyTotals sums calories and macros over the user's meals on date.
// A day without meals yields zeros.
func (s *MealService) GetDailyTotals(ctx context.Context, userID, date string) (models.MacroTotals, error) {
	totals, err := s.repo.TotalsByDate(ctx, userID, date)
	if err != nil {
		return models.MacroTotals{}, fmt.Errorf("daily totals: %w", err)
	}
	return totals, nil
}

// DeleteFoodItem removes one item and recomputes the meal's totals from the
// items that remain.
func (s *MealService) DeleteFoodItem(ctx context.Context, mealID, foodID string) (*models.Meal, error) {
	meal, err := s.GetMeal(ctx, mealID)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.FoodItem, 0, len(meal.Items))
	for _, item := range meal.Items {
		if item.ID != foodID {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(meal.Items) {
		return nil, notFound("Food item")
	}

	meal.Items = remaining
	applyItemTotals(meal)

	if err := s.repo.Update(ctx, meal); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	utils.Log.Debug("Food item removed", "mealId", mealID, "foodId", foodID)
	return meal, nil
}

func applyItemTotals(meal *models.Meal) {
	var totals models.MacroTotals
	for _, item := range meal.Items {
		totals.TotalCalories += item.Calories
		totals.TotalProtein += item.Protein
		totals.TotalCarbs += item.Carbs
		totals.TotalFat += item.Fat
	}
	meal.Calories = totals.TotalCalories
	meal.Protein = totals.TotalProtein
	meal.Carbs = totals.TotalCarbs
	meal.Fat = totals.TotalFat
}

// toFoodItems never returns nil so an empty list serialises as [].
func toFoodItems(in []FoodItemDTO) []models.FoodItem {
	out := make([]models.FoodItem, 0, len(in))
	for _, it := range in {
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, models.FoodItem{
			ID:       id,
			Name:     it.Name,
			Calories: it.Calories,
			Protein:  it.Protein,
			Carbs:    it.Carbs,
			Fat:      it.Fat,
		})
	}
	return out
}

// requireUser checks the soft reference from an owned entity to its user.
func requireUser(ctx context.Context, users repository.UserRepository, userID string) error {
	if _, err := users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("userId", "exists", "User does not exist")
		}
		return fmt.Errorf("check user: %w", err)
	}
	return nil
}
