package models

type Goal struct {
	Base
	UserID       string     `gorm:"type:varchar(36);index;not null" json:"userId"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	Type         GoalType   `gorm:"size:20;not null" json:"type"`
	ExerciseName *string    `gorm:"size:100" json:"exerciseName"`
	Description  *string    `gorm:"size:500" json:"description"`
	StartValue   float64    `json:"startValue"`
	CurrentValue float64    `json:"currentValue"`
	GoalValue    float64    `json:"goalValue"`
	Metric       GoalMetric `gorm:"size:10;not null" json:"metric"`
	TargetDate   *string    `gorm:"size:10" json:"targetDate"`
	Status       GoalStatus `gorm:"size:20;not null;default:active" json:"status"`
}
