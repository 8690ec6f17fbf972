package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/service"
)

const welcomeText = `🏃 *Fitness tracker*

Pick a section below:
📅 *Today* shows the planned workout and what you ate
🎯 *Goals* lists active goals with progress
🏋️ *Workouts* lists the next sessions
📊 *Analyze* rates your consistency`

const startUnlinkedText = `👋 This chat is not linked to an account yet.

Send /link followed by the email and password you registered with, e.g.
/link you@example.com yourpassword`

const linkPromptText = "Send your email and password separated by a space."

const linkUsageText = "Use /link <email> <password>"

const helpText = `📚 *Commands*

/start - main menu
/link <email> <password> - connect this chat to your account
/today [YYYY-MM-DD] - workout and nutrition for a day
/goals - active goals
/workouts - upcoming workouts
/analyze - consistency report
/help - this message`

// parseDateArg returns fallback for an empty argument and otherwise insists
// on a YYYY-MM-DD date.
func parseDateArg(arg, fallback string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fallback, nil
	}
	if _, err := time.Parse(dateLayout, arg); err != nil {
		return "", err
	}
	return arg, nil
}

func formatDay(date string, workout *models.Workout, totals models.MacroTotals) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 *%s*\n\n", date)

	if workout == nil {
		sb.WriteString("No workout scheduled.\n")
	} else {
		fmt.Fprintf(&sb, "🏋️ %s (%d min, %s)\n", workout.Name, workout.TotalDuration, workout.Status)
		for _, e := range workout.Exercises {
			fmt.Fprintf(&sb, "• %s %dx%s\n", e.ExerciseName, e.Sets, e.Reps)
		}
	}

	fmt.Fprintf(&sb, "\n🍎 %.0f kcal | P %.1fg | C %.1fg | F %.1fg",
		totals.TotalCalories, totals.TotalProtein, totals.TotalCarbs, totals.TotalFat)
	return sb.String()
}

func formatGoals(goals []*models.Goal) string {
	if len(goals) == 0 {
		return "🎯 No active goals."
	}
	var sb strings.Builder
	sb.WriteString("🎯 *Active goals*\n")
	for _, g := range goals {
		eval := service.EvaluateGoal(g.Type, g.CurrentValue, g.GoalValue)
		fmt.Fprintf(&sb, "\n%s: %g → %g %s (%.0f%%)", g.Name, g.CurrentValue, g.GoalValue, g.Metric, eval.Percentage)
	}
	return sb.String()
}

func formatWorkouts(workouts []*models.Workout) string {
	if len(workouts) == 0 {
		return "🏋️ Nothing planned."
	}
	var sb strings.Builder
	sb.WriteString("🏋️ *Upcoming workouts*\n")
	for _, w := range workouts {
		fmt.Fprintf(&sb, "\n%s %s (%d min)", w.ScheduledDate, w.Name, w.TotalDuration)
	}
	return sb.String()
}

func formatReport(r *service.AnalysisReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s\n", r.Message)
	fmt.Fprintf(&sb, "\nWorkouts: %d", r.Stats.TotalWorkouts)
	if r.Stats.WorkoutsPerWeek != nil {
		fmt.Fprintf(&sb, "\nPer week: %.1f", *r.Stats.WorkoutsPerWeek)
	}
	if r.Stats.LastWorkout != "" {
		fmt.Fprintf(&sb, "\nLast: %s", r.Stats.LastWorkout)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&sb, "\n💡 %s", s)
	}
	return sb.String()
}
