package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
)

const (
	analysisWindow = 30
	dateLayout     = "2006-01-02"
)

// trackedMuscleGroups are matched as substrings of workout names. Workout
// exercises are not joined against the catalog.
var trackedMuscleGroups = []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Cardio"}

type AnalysisStats struct {
	TotalWorkouts    int      `json:"totalWorkouts"`
	ConsistencyScore *float64 `json:"consistencyScore,omitempty"`
	WorkoutsPerWeek  *float64 `json:"workoutsPerWeek,omitempty"`
	LastWorkout      string   `json:"lastWorkout,omitempty"`
}

type AnalysisReport struct {
	Message         string        `json:"message"`
	Stats           AnalysisStats `json:"stats"`
	NeglectedGroups []string      `json:"neglectedGroups,omitempty"`
	Suggestions     []string      `json:"suggestions"`
}

// AnalystService produces a descriptive consistency report from workout history.
type AnalystService struct {
	workouts repository.WorkoutRepository
}

func NewAnalystService(workouts repository.WorkoutRepository) *AnalystService {
	return &AnalystService{workouts: workouts}
}

func (s *AnalystService) Analyze(ctx context.Context, userID string) (*AnalysisReport, error) {
	workouts, err := s.workouts.FindRecent(ctx, userID, analysisWindow)
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}

	if len(workouts) == 0 {
		zero := 0.0
		return &AnalysisReport{
			Message:     "I don't see any workouts yet. Start logging to get insights!",
			Stats:       AnalysisStats{TotalWorkouts: 0, ConsistencyScore: &zero},
			Suggestions: []string{"Try logging your first workout today!"},
		}, nil
	}

	// newest first
	newest := workouts[0].ScheduledDate
	oldest := workouts[len(workouts)-1].ScheduledDate
	perWeek := workoutsPerWeek(len(workouts), oldest, newest)
	neglected := neglectedGroups(workouts)

	var suggestions []string
	if len(neglected) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("You haven't focused on these groups recently: %s.", strings.Join(neglected, ", ")))
	}
	if perWeek < 2 {
		suggestions = append(suggestions, "Try to aim for at least 3 workouts per week for better progress.")
	} else {
		suggestions = append(suggestions, "Great consistency! Keep it up.")
	}

	return &AnalysisReport{
		Message: "Analysis complete.",
		Stats: AnalysisStats{
			TotalWorkouts:   len(workouts),
			WorkoutsPerWeek: &perWeek,
			LastWorkout:     newest,
		},
		NeglectedGroups: neglected,
		Suggestions:     suggestions,
	}, nil
}

// workoutsPerWeek divides total by the span in weeks, with the span floored
// at one day and the week count floored at one. Rounded to one decimal.
func workoutsPerWeek(total int, oldest, newest string) float64 {
	days := 1.0
	from, errFrom := time.Parse(dateLayout, oldest)
	to, errTo := time.Parse(dateLayout, newest)
	if errFrom == nil && errTo == nil {
		days = math.Max(1, to.Sub(from).Hours()/24)
	}
	weeks := math.Max(1, days/7)
	return math.Round(float64(total)/weeks*10) / 10
}

func neglectedGroups(workouts []*models.Workout) []string {
	names := make([]string, len(workouts))
	for i, w := range workouts {
		names[i] = strings.ToLower(w.Name)
	}

	var out []string
	for _, group := range trackedMuscleGroups {
		g := strings.ToLower(group)
		hit := false
		for _, n := range names {
			if strings.Contains(n, g) {
				hit = true
				break
			}
		}
		if !hit {
			out = append(out, group)
		}
	}
	return out
}
