package service

import "github.com/PierrickDossin/AymanProject/internal/models"

// Binding tags are evaluated by gin's validator before a DTO reaches a service.
// Pointer fields on Update DTOs mark values the client may leave out.

// User DTOs
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	FirstName string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string  `json:"lastName" binding:"required,min=1,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

type UpdateUserDTO struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SocialLoginDTO struct {
	Provider string `json:"provider" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
}

// Meal DTOs
type FoodItemDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Calories float64 `json:"calories" binding:"min=0"`
	Protein  float64 `json:"protein" binding:"min=0"`
	Carbs    float64 `json:"carbs" binding:"min=0"`
	Fat      float64 `json:"fat" binding:"min=0"`
}

type CreateMealDTO struct {
	UserID      string          `json:"userId" binding:"required"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Type        models.MealType `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Calories    *float64        `json:"calories" binding:"required,min=0"`
	Protein     *float64        `json:"protein" binding:"required,min=0"`
	Carbs       *float64        `json:"carbs" binding:"required,min=0"`
	Fat         *float64        `json:"fat" binding:"required,min=0"`
	Items       []FoodItemDTO   `json:"items" binding:"dive"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
}

type UpdateMealDTO struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Type        *models.MealType `json:"type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Calories    *float64         `json:"calories" binding:"omitempty,min=0"`
	Protein     *float64         `json:"protein" binding:"omitempty,min=0"`
	Carbs       *float64         `json:"carbs" binding:"omitempty,min=0"`
	Fat         *float64         `json:"fat" binding:"omitempty,min=0"`
	Items       *[]FoodItemDTO   `json:"items" binding:"omitempty,dive"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// Goal DTOs
type CreateGoalDTO struct {
	UserID       string            `json:"userId" binding:"required"`
	Name         string            `json:"name" binding:"required,min=1,max=200"`
	Type         models.GoalType   `json:"type" binding:"required,oneof=muscle_mass weight performance body_fat"`
	ExerciseName *string           `json:"exerciseName" binding:"omitempty,min=1,max=100"`
	Description  *string           `json:"description" binding:"omitempty,max=500"`
	CurrentValue *float64          `json:"currentValue" binding:"required"`
	GoalValue    *float64          `json:"goalValue" binding:"required"`
	Metric       models.GoalMetric `json:"metric" binding:"required,oneof=kg lbs % reps seconds minutes"`
	TargetDate   *string           `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateGoalDTO struct {
	Name         *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Type         *models.GoalType   `json:"type" binding:"omitempty,oneof=muscle_mass weight performance body_fat"`
	ExerciseName *string            `json:"exerciseName" binding:"omitempty,min=1,max=100"`
	Description  *string            `json:"description" binding:"omitempty,max=500"`
	CurrentValue *float64           `json:"currentValue"`
	GoalValue    *float64           `json:"goalValue"`
	Metric       *models.GoalMetric `json:"metric" binding:"omitempty,oneof=kg lbs % reps seconds minutes"`
	TargetDate   *string            `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateProgressDTO struct {
	CurrentValue *float64 `json:"currentValue" binding:"required"`
}

type GoalProgress struct {
	Goal               *models.Goal `json:"goal"`
	CurrentValue       float64      `json:"currentValue"`
	GoalValue          float64      `json:"goalValue"`
	Difference         float64      `json:"difference"`
	ProgressPercentage float64      `json:"progressPercentage"`
	IsCompleted        bool         `json:"isCompleted"`
}

// Exercise DTOs
type CreateExerciseDTO struct {
	Name        string                    `json:"name" binding:"required,min=1,max=200"`
	MuscleGroup string                    `json:"muscleGroup" binding:"required,max=50"`
	Equipment   string                    `json:"equipment" binding:"max=50"`
	Description string                    `json:"description"`
	ImageURL    string                    `json:"imageUrl" binding:"omitempty,url"`
	Rating      float64                   `json:"rating" binding:"min=0,max=5"`
	Difficulty  models.ExerciseDifficulty `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Type        models.ExerciseType       `json:"type" binding:"omitempty,oneof=strength cardio flexibility"`
}

type UpdateExerciseDTO struct {
	Name        *string                    `json:"name" binding:"omitempty,min=1,max=200"`
	MuscleGroup *string                    `json:"muscleGroup" binding:"omitempty,max=50"`
	Equipment   *string                    `json:"equipment" binding:"omitempty,max=50"`
	Description *string                    `json:"description"`
	ImageURL    *string                    `json:"imageUrl" binding:"omitempty,url"`
	Rating      *float64                   `json:"rating" binding:"omitempty,min=0,max=5"`
	Difficulty  *models.ExerciseDifficulty `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Type        *models.ExerciseType       `json:"type" binding:"omitempty,oneof=strength cardio flexibility"`
}

type ExerciseQuery struct {
	Search      string `form:"search"`
	MuscleGroup string `form:"muscleGroup"`
	Equipment   string `form:"equipment"`
}

// Workout DTOs
type PlannedExerciseDTO struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName" binding:"required,min=1,max=100"`
	Sets         int    `json:"sets" binding:"min=0"`
	Reps         string `json:"reps" binding:"max=20"`
	Duration     int    `json:"duration" binding:"min=0"`
	Notes        string `json:"notes" binding:"max=500"`
}

// CreateWorkoutDTO accepts totalDuration for compatibility; it is always
// recomputed from the exercises.
type CreateWorkoutDTO struct {
	UserID        string               `json:"userId" binding:"required"`
	Name          string               `json:"name" binding:"required,min=1,max=200"`
	ScheduledDate string               `json:"scheduledDate" binding:"required,datetime=2006-01-02"`
	Exercises     []PlannedExerciseDTO `json:"exercises" binding:"dive"`
	TotalDuration int                  `json:"totalDuration"`
	Notes         *string              `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateWorkoutDTO struct {
	Name          *string               `json:"name" binding:"omitempty,min=1,max=200"`
	ScheduledDate *string               `json:"scheduledDate" binding:"omitempty,datetime=2006-01-02"`
	Exercises     *[]PlannedExerciseDTO `json:"exercises" binding:"omitempty,dive"`
	TotalDuration *int                  `json:"totalDuration" binding:"omitempty,min=0"`
	Notes         *string               `json:"notes" binding:"omitempty,max=1000"`
}

type DuplicateWorkoutDTO struct {
	NewDate string `json:"newDate" binding:"required,datetime=2006-01-02"`
}

type WeeklyStats struct {
	TotalWorkouts     int `json:"totalWorkouts"`
	CompletedWorkouts int `json:"completedWorkouts"`
	PlannedWorkouts   int `json:"plannedWorkouts"`
	SkippedWorkouts   int `json:"skippedWorkouts"`
}

// Exercise log DTOs
type CreateExerciseLogDTO struct {
	ExerciseName string  `json:"exerciseName" binding:"required,min=1,max=100"`
	Weight       float64 `json:"weight" binding:"min=0"`
	Reps         int     `json:"reps" binding:"required,min=1"`
	Sets         int     `json:"sets" binding:"required,min=1"`
	WorkoutType  string  `json:"workoutType" binding:"required,max=50"`
	Notes        *string `json:"notes" binding:"omitempty,max=500"`
}

type UpdateExerciseLogDTO struct {
	ExerciseName *string  `json:"exerciseName" binding:"omitempty,min=1,max=100"`
	Weight       *float64 `json:"weight" binding:"omitempty,min=0"`
	Reps         *int     `json:"reps" binding:"omitempty,min=1"`
	Sets         *int     `json:"sets" binding:"omitempty,min=1"`
	WorkoutType  *string  `json:"workoutType" binding:"omitempty,max=50"`
	Notes        *string  `json:"notes" binding:"omitempty,max=500"`
}

// Analyst DTOs
type AnalyzeDTO struct {
	UserID string `json:"userId" binding:"required"`
}
