package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/internal/database"
	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/repository"
)

// capture records published events.
type capture struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capture) Publish(_ context.Context, e events.Event) error {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	return nil
}

func (c *capture) types() []events.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.Type, len(c.events))
	for i, e := range c.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	db        *gorm.DB
	published *capture
	users     *UserService
	meals     *MealService
	goals     *GoalService
	exercises *ExerciseService
	workouts  *WorkoutService
	logs      *ExerciseLogService
	analyst   *AnalystService
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Open(database.Options{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	pub := &capture{}

	userRepo := repository.NewUserRepo(db)
	workoutRepo := repository.NewWorkoutRepo(db)

	return &testEnv{
		db:        db,
		published: pub,
		users:     NewUserService(userRepo, auth.NewTokenIssuer("test-secret", time.Hour), auth.NewMemorySessionStore()),
		meals:     NewMealService(repository.NewMealRepo(db), userRepo),
		goals:     NewGoalService(repository.NewGoalRepo(db), userRepo, pub),
		exercises: NewExerciseService(repository.NewExerciseRepo(db)),
		workouts:  NewWorkoutService(workoutRepo, userRepo, pub),
		logs:      NewExerciseLogService(repository.NewExerciseLogRepo(db)),
		analyst:   NewAnalystService(workoutRepo),
	}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	u, err := e.users.CreateUser(context.Background(), CreateUserDTO{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func mealDTO(userID, name string, typ models.MealType, date string, calories, protein, carbs, fat float64) CreateMealDTO {
	return CreateMealDTO{
		UserID: userID, Name: name, Type: typ, Date: date,
		Calories: &calories, Protein: &protein, Carbs: &carbs, Fat: &fat,
	}
}
