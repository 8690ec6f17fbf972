package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/PierrickDossin/AymanProject/internal/auth"
	"github.com/PierrickDossin/AymanProject/internal/bot"
	"github.com/PierrickDossin/AymanProject/internal/config"
	"github.com/PierrickDossin/AymanProject/internal/database"
	"github.com/PierrickDossin/AymanProject/internal/events"
	"github.com/PierrickDossin/AymanProject/internal/repository"
	"github.com/PierrickDossin/AymanProject/internal/service"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

func main() {
	// -----------------------
	// ENV
	cfg := config.Load()
	utils.Log.SetLevel(cfg.LogLevel)

	if cfg.TelegramToken == "" {
		utils.Log.Error("TELEGRAM_TOKEN not set")
		os.Exit(1)
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
	defer database.Close(db)
	utils.Log.Info("Database connected")

	if err := database.Migrate(db); err != nil {
		utils.Log.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// -----------------------
	// REPOSITORIES
	userRepo := repository.NewUserRepo(db)
	workoutRepo := repository.NewWorkoutRepo(db)

	// -----------------------
	// SERVICES
	// the bot is read-only
	publisher := events.LogPublisher{}
	svc := bot.Services{
		Users:    service.NewUserService(userRepo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL), auth.NewMemorySessionStore()),
		Meals:    service.NewMealService(repository.NewMealRepo(db), userRepo),
		Goals:    service.NewGoalService(repository.NewGoalRepo(db), userRepo, publisher),
		Workouts: service.NewWorkoutService(workoutRepo, userRepo, publisher),
		Analyst:  service.NewAnalystService(workoutRepo),
	}

	// -----------------------
	// BOT
	botApp, err := bot.NewBotApp(cfg.TelegramToken, svc)
	if err != nil {
		utils.Log.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.Log.Info("Telegram bot starting")
	botApp.Run(ctx)
}
