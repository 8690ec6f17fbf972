package api

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/service"
)

// OAuthProvider is the part of the Google flow the handlers depend on.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleProfile, error)
}

// Deps carries everything the router hands to its handlers.
type Deps struct {
	Users        *service.UserService
	Meals        *service.MealService
	Goals        *service.GoalService
	Exercises    *service.ExerciseService
	Workouts     *service.WorkoutService
	ExerciseLogs *service.ExerciseLogService
	Analyst      *service.AnalystService

	Google OAuthProvider // nil when not configured
	Hub    *events.Hub   // nil disables /ws/events

	FrontendURL string
	LoginRate   float64
	LoginBurst  int
}

// Handlers holds the services used by the HTTP layer.
type Handlers struct {
	users        *service.UserService
	meals        *service.MealService
	goals        *service.GoalService
	exercises    *service.ExerciseService
	workouts     *service.WorkoutService
	exerciseLogs *service.ExerciseLogService
	analyst      *service.AnalystService

	google      OAuthProvider
	hub         *events.Hub
	states      *stateStore
	frontendURL string
}

func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		users:        d.Users,
		meals:        d.Meals,
		goals:        d.Goals,
		exercises:    d.Exercises,
		workouts:     d.Workouts,
		exerciseLogs: d.ExerciseLogs,
		analyst:      d.Analyst,
		google:       d.Google,
		hub:          d.Hub,
		states:       newStateStore(),
		frontendURL:  d.FrontendURL,
	}
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Deps) *gin.Engine {
	registerValidation()

	r := gin.New()
	r.Use(gin.Recovery(), AccessLog())
	r.Use(cors.New(corsConfig(d.FrontendURL)))

	h := NewHandlers(d)
	authn := Authenticate(d.Users)
	loginLimit := RateLimit(d.LoginRate, d.LoginBurst)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	oauth := r.Group("/auth")
	oauth.GET("/google", h.GoogleLogin)
	oauth.GET("/google/callback", h.GoogleCallback)
	oauth.GET("/facebook", notImplemented("Facebook OAuth not yet implemented"))
	oauth.GET("/apple", notImplemented("Apple OAuth not yet implemented"))

	r.GET("/ws/events", TokenFromQuery(), authn, h.Events)

	api := r.Group("/api", authn)

	users := api.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.POST("/login", loginLimit, h.Login)
	users.POST("/social-login", loginLimit, h.SocialLogin)
	users.POST("/logout", h.Logout)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	meals := api.Group("/meals")
	meals.GET("", h.ListMeals)
	meals.GET("/totals", h.DailyTotals)
	meals.POST("", h.CreateMeal)
	meals.GET("/:id", h.GetMeal)
	meals.PUT("/:id", h.UpdateMeal)
	meals.DELETE("/:id", h.DeleteMeal)
	meals.DELETE("/:id/items/:foodId", h.DeleteFoodItem)

	goals := api.Group("/goals")
	goals.GET("", h.ListGoals)
	goals.POST("", h.CreateGoal)
	goals.GET("/:id", h.GetGoal)
	goals.PUT("/:id", h.UpdateGoal)
	goals.DELETE("/:id", h.DeleteGoal)
	goals.GET("/:id/progress", h.GoalProgress)
	goals.PATCH("/:id/progress", h.UpdateGoalProgress)

	exercises := api.Group("/exercises")
	exercises.GET("", h.ListExercises)
	exercises.POST("", h.CreateExercise)
	exercises.POST("/seed", h.SeedExercises)
	exercises.GET("/:id", h.GetExercise)
	exercises.PUT("/:id", h.UpdateExercise)
	exercises.DELETE("/:id", h.DeleteExercise)

	workouts := api.Group("/workouts")
	workouts.GET("", h.ListWorkouts)
	workouts.GET("/today", h.TodayWorkout)
	workouts.GET("/range", h.WorkoutsInRange)
	workouts.GET("/upcoming", h.UpcomingWorkouts)
	workouts.GET("/stats/weekly", h.WeeklyStats)
	workouts.POST("", h.CreateWorkout)
	workouts.GET("/:id", h.GetWorkout)
	workouts.PUT("/:id", h.UpdateWorkout)
	workouts.DELETE("/:id", h.DeleteWorkout)
	workouts.PATCH("/:id/complete", h.CompleteWorkout)
	workouts.PATCH("/:id/skip", h.SkipWorkout)
	workouts.POST("/:id/duplicate", h.DuplicateWorkout)

	logs := api.Group("/exercise-logs", RequireUser())
	logs.GET("", h.ListExerciseLogs)
	logs.GET("/history/:exerciseName", h.ExerciseHistory)
	logs.POST("", h.CreateExerciseLog)
	logs.PUT("/:id", h.UpdateExerciseLog)
	logs.DELETE("/:id", h.DeleteExerciseLog)

	api.POST("/agents/analyze", h.Analyze)

	return r
}

func corsConfig(frontendURL string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "User-Id"},
	}
	if frontendURL == "" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = []string{frontendURL}
	cfg.AllowCredentials = true
	return cfg
}

func notImplemented(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": msg})
	}
}
