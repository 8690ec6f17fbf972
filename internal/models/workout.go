package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlannedExercise is a target inside a Workout. Reps stays a string so
// values like "8-10" or "AMRAP" survive; Duration is in minutes.
type PlannedExercise struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Duration     int    `json:"duration"`
	Notes        string `json:"notes,omitempty"`
}

type Workout struct {
	Base
	UserID        string                               `gorm:"type:varchar(36);index:idx_workouts_user_date;not null" json:"userId"`
	Name          string                               `gorm:"size:200;not null" json:"name"`
	ScheduledDate string                               `gorm:"size:10;index:idx_workouts_user_date;not null" json:"scheduledDate"`
	Exercises     datatypes.JSONSlice[PlannedExercise] `json:"exercises"`
	TotalDuration int                                  `gorm:"not null;default:0" json:"totalDuration"`
	Status        WorkoutStatus                        `gorm:"size:20;not null;default:planned" json:"status"`
	CompletedAt   *time.Time                           `json:"completedAt"`
	Notes         *string                              `gorm:"type:text" json:"notes"`
}
