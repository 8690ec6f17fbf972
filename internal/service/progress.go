package service

import (
	"math"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

// CompletionTolerance is the absolute distance at which a weight or body fat
// goal counts as reached. Those goals can be approached from either side.
const CompletionTolerance = 0.5

// GoalEvaluation is the outcome of checking a value against a goal target.
type GoalEvaluation struct {
	Completed  bool
	Percentage float64
}

// EvaluateGoal applies the completion rule and progress formula for the goal type.
// The returned percentage is always within [0, 100].
func EvaluateGoal(goalType models.GoalType, current, target float64) GoalEvaluation {
	switch goalType {
	case models.GoalWeight, models.GoalBodyFat:
		return GoalEvaluation{
			Completed:  math.Abs(current-target) <= CompletionTolerance,
			Percentage: bidirectionalPercentage(current, target),
		}
	case models.GoalMuscleMass, models.GoalPerformance:
		return GoalEvaluation{
			Completed:  current >= target,
			Percentage: increasePercentage(current, target),
		}
	default:
		return GoalEvaluation{}
	}
}

func increasePercentage(current, target float64) float64 {
	if target <= 0 {
		if current >= target {
			return 100
		}
		return 0
	}
	return clampPercent(current / target * 100)
}

func bidirectionalPercentage(current, target float64) float64 {
	if current == target {
		return 100
	}
	if target == 0 {
		return 0
	}
	diff := math.Abs(target - current)
	return clampPercent(100 - diff/math.Abs(target)*100)
}

func clampPercent(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}
