package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/internal/service"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

const dateLayout = "2006-01-02"

// Reply keyboard labels.
const (
	btnToday    = "📅 Today"
	btnGoals    = "🎯 Goals"
	btnWorkouts = "🏋️ Workouts"
	btnAnalyze  = "📊 Analyze"
	btnHelp     = "ℹ️ Help"
)

// sender is the part of the Telegram client the bot writes through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Services the bot reads from.
type Services struct {
	Users    *service.UserService
	Meals    *service.MealService
	Goals    *service.GoalService
	Workouts *service.WorkoutService
	Analyst  *service.AnalystService
}

// BotApp answers chat commands on behalf of linked users.
type BotApp struct {
	API    *tgbotapi.BotAPI
	client sender

	users    *service.UserService
	meals    *service.MealService
	goals    *service.GoalService
	workouts *service.WorkoutService
	analyst  *service.AnalystService

	states *ChatStates
	now    func() time.Time
}

func NewBotApp(token string, svc Services) (*BotApp, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b := newBotApp(botAPI, svc)
	b.API = botAPI
	return b, nil
}

func newBotApp(client sender, svc Services) *BotApp {
	return &BotApp{
		client:   client,
		users:    svc.Users,
		meals:    svc.Meals,
		goals:    svc.Goals,
		workouts: svc.Workouts,
		analyst:  svc.Analyst,
		states:   NewChatStates(),
		now:      time.Now,
	}
}

// Run polls for updates until ctx is cancelled.
func (b *BotApp) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.API.GetUpdatesChan(u)
	defer b.API.StopReceivingUpdates()
	utils.Log.Info("Bot started", "username", b.API.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			utils.Log.Info("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *BotApp) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
		return
	}
	b.handleRegularMessage(ctx, update.Message)
}

func (b *BotApp) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())
	b.states.DeleteState(chatID)

	switch msg.Command() {
	case "start":
		if _, err := b.linkedUser(ctx, msg.From.ID); err != nil {
			b.sendText(chatID, startUnlinkedText)
			return
		}
		b.showMainMenu(chatID)
	case "help":
		b.sendText(chatID, helpText)
	case "link":
		if args == "" {
			b.states.SetState(chatID, &ChatState{Action: actionAwaitCredentials})
			b.sendText(chatID, linkPromptText)
			return
		}
		b.link(ctx, msg, args)
	case "today":
		b.withUser(ctx, msg, func(u *models.User) { b.showToday(ctx, chatID, u, args) })
	case "goals":
		b.withUser(ctx, msg, func(u *models.User) { b.showGoals(ctx, chatID, u) })
	case "workouts":
		b.withUser(ctx, msg, func(u *models.User) { b.showWorkouts(ctx, chatID, u) })
	case "analyze":
		b.withUser(ctx, msg, func(u *models.User) { b.showAnalysis(ctx, chatID, u) })
	default:
		b.sendText(chatID, "Unknown command. Use /help")
	}
}

func (b *BotApp) handleRegularMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if state, ok := b.states.GetState(chatID); ok {
		switch state.Action {
		case actionAwaitCredentials:
			b.states.DeleteState(chatID)
			b.link(ctx, msg, text)
			return
		}
	}

	switch text {
	case btnToday:
		b.withUser(ctx, msg, func(u *models.User) { b.showToday(ctx, chatID, u, "") })
	case btnGoals:
		b.withUser(ctx, msg, func(u *models.User) { b.showGoals(ctx, chatID, u) })
	case btnWorkouts:
		b.withUser(ctx, msg, func(u *models.User) { b.showWorkouts(ctx, chatID, u) })
	case btnAnalyze:
		b.withUser(ctx, msg, func(u *models.User) { b.showAnalysis(ctx, chatID, u) })
	case btnHelp:
		b.sendText(chatID, helpText)
	default:
		b.sendText(chatID, "Use the menu buttons or /help")
	}
}

// link expects "<email> <password>". The message carrying the password is
// removed from the chat whatever the outcome.
func (b *BotApp) link(ctx context.Context, msg *tgbotapi.Message, credentials string) {
	chatID := msg.Chat.ID
	email, password, ok := strings.Cut(strings.TrimSpace(credentials), " ")
	password = strings.TrimSpace(password)
	if ok && password != "" {
		b.deleteMessage(chatID, msg.MessageID)
	}
	if !ok || email == "" || password == "" {
		b.sendText(chatID, linkUsageText)
		return
	}

	user, err := b.users.LinkTelegram(ctx, email, password, msg.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			b.sendText(chatID, "Email or password is wrong.")
			return
		}
		utils.Log.Error("Telegram link failed", "chatId", chatID, "error", err)
		b.sendText(chatID, "❌ Could not link your account, try again later.")
		return
	}
	b.sendText(chatID, "✅ Linked to "+user.Username)
	b.showMainMenu(chatID)
}

func (b *BotApp) linkedUser(ctx context.Context, telegramID int64) (*models.User, error) {
	return b.users.GetUserByTelegramID(ctx, telegramID)
}

// withUser runs fn for the linked account or tells the chat to /link first.
func (b *BotApp) withUser(ctx context.Context, msg *tgbotapi.Message, fn func(*models.User)) {
	user, err := b.linkedUser(ctx, msg.From.ID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			utils.Log.Error("Telegram user lookup failed", "error", err)
		}
		b.sendText(msg.Chat.ID, startUnlinkedText)
		return
	}
	fn(user)
}

func (b *BotApp) today() string {
	return b.now().Format(dateLayout)
}

func (b *BotApp) showToday(ctx context.Context, chatID int64, user *models.User, arg string) {
	date, err := parseDateArg(arg, b.today())
	if err != nil {
		b.sendText(chatID, "Dates look like 2024-01-31.")
		return
	}
	workout, err := b.workouts.GetTodayWorkout(ctx, user.ID, date)
	if err != nil {
		b.fail(chatID, "today workout", err)
		return
	}
	totals, err := b.meals.GetDailyTotals(ctx, user.ID, date)
	if err != nil {
		b.fail(chatID, "daily totals", err)
		return
	}
	b.sendText(chatID, formatDay(date, workout, totals))
}

func (b *BotApp) showGoals(ctx context.Context, chatID int64, user *models.User) {
	goals, err := b.goals.ListGoals(ctx, user.ID, "", true)
	if err != nil {
		b.fail(chatID, "goals", err)
		return
	}
	b.sendText(chatID, formatGoals(goals))
}

func (b *BotApp) showWorkouts(ctx context.Context, chatID int64, user *models.User) {
	workouts, err := b.workouts.GetUpcomingWorkouts(ctx, user.ID, b.today(), 0)
	if err != nil {
		b.fail(chatID, "upcoming workouts", err)
		return
	}
	b.sendText(chatID, formatWorkouts(workouts))
}

func (b *BotApp) showAnalysis(ctx context.Context, chatID int64, user *models.User) {
	report, err := b.analyst.Analyze(ctx, user.ID)
	if err != nil {
		b.fail(chatID, "analysis", err)
		return
	}
	b.sendText(chatID, formatReport(report))
}

func (b *BotApp) fail(chatID int64, what string, err error) {
	utils.Log.Error("Bot query failed", "query", what, "chatId", chatID, "error", err)
	b.sendText(chatID, "❌ Something went wrong, try again later.")
}

// sendText tries Markdown first and falls back to plain text when Telegram
// rejects the markup.
func (b *BotApp) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.client.Send(msg); err != nil {
		utils.Log.Warn("Markdown send failed", "chatId", chatID, "error", err)
		plain := tgbotapi.NewMessage(chatID, text)
		if _, err := b.client.Send(plain); err != nil {
			utils.Log.Error("Send failed", "chatId", chatID, "error", err)
		}
	}
}

func (b *BotApp) deleteMessage(chatID int64, messageID int) {
	if _, err := b.client.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		utils.Log.Warn("Delete message failed", "chatId", chatID, "error", err)
	}
}

func (b *BotApp) showMainMenu(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnGoals),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWorkouts),
			tgbotapi.NewKeyboardButton(btnAnalyze),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHelp),
		),
	)
	keyboard.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, welcomeText)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.client.Send(msg); err != nil {
		utils.Log.Error("Main menu send failed", "chatId", chatID, "error", err)
	}
}
