package models

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// GoalType decides which completion and progress formula applies to a goal.
type GoalType string

const (
	GoalMuscleMass  GoalType = "muscle_mass"
	GoalWeight      GoalType = "weight"
	GoalPerformance GoalType = "performance"
	GoalBodyFat     GoalType = "body_fat"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalMuscleMass, GoalWeight, GoalPerformance, GoalBodyFat:
		return true
	}
	return false
}

type GoalMetric string

const (
	MetricKg      GoalMetric = "kg"
	MetricLbs     GoalMetric = "lbs"
	MetricPercent GoalMetric = "%"
	MetricReps    GoalMetric = "reps"
	MetricSeconds GoalMetric = "seconds"
	MetricMinutes GoalMetric = "minutes"
)

func (m GoalMetric) Valid() bool {
	switch m {
	case MetricKg, MetricLbs, MetricPercent, MetricReps, MetricSeconds, MetricMinutes:
		return true
	}
	return false
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

type WorkoutStatus string

const (
	WorkoutPlanned   WorkoutStatus = "planned"
	WorkoutCompleted WorkoutStatus = "completed"
	WorkoutSkipped   WorkoutStatus = "skipped"
)

func (s WorkoutStatus) Valid() bool {
	switch s {
	case WorkoutPlanned, WorkoutCompleted, WorkoutSkipped:
		return true
	}
	return false
}

type ExerciseDifficulty string

const (
	DifficultyBeginner     ExerciseDifficulty = "beginner"
	DifficultyIntermediate ExerciseDifficulty = "intermediate"
	DifficultyAdvanced     ExerciseDifficulty = "advanced"
)

func (d ExerciseDifficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type ExerciseType string

const (
	ExerciseStrength    ExerciseType = "strength"
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseFlexibility ExerciseType = "flexibility"
)

func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseStrength, ExerciseCardio, ExerciseFlexibility:
		return true
	}
	return false
}
