package models

import "time"

// ExerciseLog records a set that was actually performed.
type ExerciseLog struct {
	Base
	UserID       string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	ExerciseName string    `gorm:"size:100;index;not null" json:"exerciseName"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Sets         int       `json:"sets"`
	WorkoutType  string    `gorm:"size:50;not null" json:"workoutType"`
	Notes        *string   `gorm:"type:text" json:"notes"`
	PerformedAt  time.Time `gorm:"index" json:"performedAt"`
}
