package models

import "gorm.io/datatypes"

// FoodItem lives only inside its Meal's items column.
type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Meal struct {
	Base
	UserID      string                        `gorm:"type:varchar(36);index:idx_meals_user_date;not null" json:"userId"`
	Name        string                        `gorm:"size:200;not null" json:"name"`
	Type        MealType                      `gorm:"size:20;not null" json:"type"`
	Date        string                        `gorm:"size:10;index:idx_meals_user_date;not null" json:"date"`
	Calories    float64                       `gorm:"not null;default:0" json:"calories"`
	Protein     float64                       `gorm:"not null;default:0" json:"protein"`
	Carbs       float64                       `gorm:"not null;default:0" json:"carbs"`
	Fat         float64                       `gorm:"not null;default:0" json:"fat"`
	Items       datatypes.JSONSlice[FoodItem] `json:"items"`
	Description *string                       `gorm:"type:text" json:"description"`
}

// MacroTotals is the per-day sum over a user's meals.
type MacroTotals struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
}
