package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/PierrickDossin/AymanProject/internal/api"
	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/internal/config"
	"github.com/PierrickDossin/AymanProject/internal/database"
	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/internal/service"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

func main() {
	// -----------------------
	// CONFIG
	cfg := config.Load()
	utils.Log.SetLevel(cfg.LogLevel)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// -----------------------
	// DATABASE
	db, err := database.Open(database.Options{
		Driver:      cfg.DBDriver,
		DSN:         cfg.DatabaseURL,
		MaxAttempts: cfg.DBMaxAttempts,
	})
	if err != nil {
		utils.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		utils.Log.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// -----------------------
	// EVENTS
	hub := events.NewHub(cfg.FrontendURL)
	publishers := events.Multi{events.LogPublisher{}, hub}
	var kafka *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		publishers = append(publishers, kafka)
		utils.Log.Info("Kafka publisher enabled", "topic", cfg.KafkaTopic)
	}

	// -----------------------
	// SESSIONS
	var sessions auth.SessionStore = auth.NewMemorySessionStore()
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			utils.Log.Error("Failed to reach redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		sessions = auth.NewRedisSessionStore(rdb)
		utils.Log.Info("Redis session store enabled", "addr", cfg.RedisAddr)
	}

	// -----------------------
	// REPOSITORIES
	userRepo := repository.NewUserRepo(db)
	mealRepo := repository.NewMealRepo(db)
	goalRepo := repository.NewGoalRepo(db)
	exerciseRepo := repository.NewExerciseRepo(db)
	workoutRepo := repository.NewWorkoutRepo(db)
	exerciseLogRepo := repository.NewExerciseLogRepo(db)

	// -----------------------
	// SERVICES
	deps := api.Deps{
		Users:        service.NewUserService(userRepo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL), sessions),
		Meals:        service.NewMealService(mealRepo, userRepo),
		Goals:        service.NewGoalService(goalRepo, userRepo, publishers),
		Exercises:    service.NewExerciseService(exerciseRepo),
		Workouts:     service.NewWorkoutService(workoutRepo, userRepo, publishers),
		ExerciseLogs: service.NewExerciseLogService(exerciseLogRepo),
		Analyst:      service.NewAnalystService(workoutRepo),
		Hub:          hub,
		FrontendURL:  cfg.FrontendURL,
		LoginRate:    cfg.LoginRatePerSec,
		LoginBurst:   cfg.LoginBurst,
	}
	if cfg.GoogleEnabled() {
		deps.Google = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	}

	// -----------------------
	// HTTP
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Log.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	utils.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.Error("Server shutdown failed", "error", err)
	}
	if kafka != nil {
		if err := kafka.Close(); err != nil {
			utils.Log.Error("Kafka close failed", "error", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			utils.Log.Error("Redis close failed", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
		utils.Log.Error("Database close failed", "error", err)
	}
}
