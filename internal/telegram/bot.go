package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"platepal/internal/app"
	"platepal/internal/config"
	"platepal/internal/dining"
	"platepal/internal/logger"
	"platepal/internal/metrics"
	"platepal/internal/preferences"
	"platepal/internal/render"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sender is the part of the Telegram API the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot serves one in-memory session per chat over a Telegram webhook.
type Bot struct {
	api sender
	app *app.App
	cfg *config.Config

	mu       sync.Mutex
	sessions map[int64]*chatSession
	now      func() time.Time
}

// sessionIdleTTL is how long a chat may stay quiet before its session is
// dropped. The next message starts a fresh one.
const sessionIdleTTL = 24 * time.Hour

type chatSession struct {
	session  *app.Session
	lastSeen time.Time
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	if err := cfg.RequireTelegram(); err != nil {
		return nil, err
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("description", resp.Description))

	return newBot(bot, application, cfg), nil
}

func newBot(api sender, application *app.App, cfg *config.Config) *Bot {
	return &Bot{
		api:      api,
		app:      application,
		cfg:      cfg,
		sessions: make(map[int64]*chatSession),
		now:      time.Now,
	}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("error parsing update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch {
	case update.CallbackQuery != nil:
		if !b.allowed(update.CallbackQuery.From) {
			return
		}
		go b.handleCallbackQuery(update.CallbackQuery)
	case update.Message != nil:
		if !b.allowed(update.Message.From) {
			return
		}
		go b.processMessage(update.Message)
	}
}

func (b *Bot) allowed(from *tgbotapi.User) bool {
	if from == nil {
		return false
	}
	if !b.cfg.IsAllowed(from.ID) {
		logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", from.ID),
			zap.String("username", from.UserName))
		return false
	}
	return true
}

// session returns the chat's session, starting a new one (and its health
// probe) on first contact. Sessions idle for longer than sessionIdleTTL are
// evicted on the way, unless they are generating.
func (b *Bot) session(ctx context.Context, chatID int64) *app.Session {
	now := b.now()

	b.mu.Lock()
	for id, cs := range b.sessions {
		if id != chatID && now.Sub(cs.lastSeen) > sessionIdleTTL && !cs.session.Snapshot().Loading {
			delete(b.sessions, id)
		}
	}
	cs, ok := b.sessions[chatID]
	if !ok {
		cs = &chatSession{session: b.app.NewSession(nil)}
		b.sessions[chatID] = cs
	}
	cs.lastSeen = now
	s := cs.session
	b.mu.Unlock()

	s.Start(ctx)
	return s
}

// parseCommand splits "/cmd@bot args" into "cmd" and "args". Text that is
// not a command returns an empty command.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ := strings.Cut(text[1:], " ")
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	ctx := context.Background()
	chatID := msg.Chat.ID
	s := b.session(ctx, chatID)

	cmd, args := parseCommand(msg.Text)
	switch cmd {
	case "start", "help":
		b.sendMarkdown(chatID, helpText)
		b.sendPreferences(chatID, s.Snapshot())
	case "show":
		b.sendPreferences(chatID, s.Snapshot())
	case "calories":
		b.setField(chatID, s, "calories", preferences.FieldCalories, args)
	case "protein":
		b.setField(chatID, s, "protein", preferences.FieldProtein, args)
	case "carbs":
		b.setField(chatID, s, "carbs", preferences.FieldCarbs, args)
	case "fat":
		b.setField(chatID, s, "fat", preferences.FieldFat, args)
	case "macros":
		b.setMacros(chatID, s, args)
	case "food":
		st := s.Update(func(p preferences.Preferences) preferences.Preferences { return p.WithFoodPreferences(args) })
		b.sendPreferences(chatID, st)
	case "toggle":
		r, ok := preferences.ParseRestriction(args)
		if !ok {
			b.sendMarkdown(chatID, "Unknown restriction. Use one of: vegetarian, vegan, gluten-free, dairy-free.")
			return
		}
		st := s.Update(func(p preferences.Preferences) preferences.Preferences { return p.ToggleRestriction(r) })
		b.sendPreferences(chatID, st)
	case "generate":
		b.generate(ctx, chatID, s)
	case "status":
		b.sendStatus(chatID, s.Snapshot())
	case "halls":
		b.sendHalls(chatID)
	case "hall":
		b.sendHall(chatID, args)
	case "":
		// Plain text is taken as food preferences.
		st := s.Update(func(p preferences.Preferences) preferences.Preferences { return p.WithFoodPreferences(args) })
		b.sendPreferences(chatID, st)
	default:
		b.sendMarkdown(chatID, "Unknown command. Send /help for the list.")
	}
}

func (b *Bot) setField(chatID int64, s *app.Session, cmd string, field preferences.Field, value string) {
	if value == "" {
		b.sendMarkdown(chatID, fmt.Sprintf("Please send a value for %s, e.g. `/%s 30`.", field, cmd))
		return
	}
	st := s.Update(func(p preferences.Preferences) preferences.Preferences { return p.Set(field, value) })
	b.sendPreferences(chatID, st)
}

func (b *Bot) setMacros(chatID int64, s *app.Session, args string) {
	parts := strings.Fields(args)
	if len(parts) != 3 {
		b.sendMarkdown(chatID, "Usage: `/macros <protein> <carbs> <fat>`, e.g. `/macros 25 45 30`.")
		return
	}
	st := s.Update(func(p preferences.Preferences) preferences.Preferences {
		return p.WithProtein(parts[0]).WithCarbs(parts[1]).WithFat(parts[2])
	})
	b.sendPreferences(chatID, st)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	ctx := context.Background()
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	s := b.session(ctx, chatID)

	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	action, arg, _ := strings.Cut(query.Data, "|")
	switch action {
	case "toggle":
		r, ok := preferences.ParseRestriction(arg)
		if !ok {
			return
		}
		st := s.Update(func(p preferences.Preferences) preferences.Preferences { return p.ToggleRestriction(r) })
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID, formatPreferences(st), preferencesKeyboard(st))
		edit.ParseMode = tgbotapi.ModeMarkdown
		b.api.Send(edit)
	case "generate":
		b.generate(ctx, chatID, s)
	case "hall":
		b.sendHall(chatID, arg)
	}
}

// generate runs the meal plan workflow and reports into a status message
// that is edited once the plan (or the alert) is ready.
func (b *Bot) generate(ctx context.Context, chatID int64, s *app.Session) {
	before := s.Snapshot().Suggestions

	replyMsg := tgbotapi.NewMessage(chatID, "🧑‍🍳 *Thinking...*\n(Building your meal plan)")
	replyMsg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := b.api.Send(replyMsg)
	if err != nil {
		logger.Error("failed to send initial reply", zap.Error(err))
		return
	}
	messageID := sent.MessageID

	st, err := s.Generate(ctx)
	if err != nil {
		text := "⏳ A meal plan is already being generated."
		if st.Alert != nil {
			text = formatAlert(*st.Alert)
		}
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		edit.ParseMode = tgbotapi.ModeMarkdown
		b.api.Send(edit)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, render.Markdown(render.Build(st.Result), nil))
	edit.ParseMode = tgbotapi.ModeMarkdown
	if kb, ok := hallsKeyboard(st); ok {
		edit.ReplyMarkup = &kb
	}
	b.api.Send(edit)

	s.Wait()
	after := s.Snapshot().Suggestions
	if len(after) == 0 || sameList(before, after) {
		return
	}
	var sb strings.Builder
	sb.WriteString("💡 *Quick Suggestions*\n")
	for _, tip := range after {
		sb.WriteString("• " + render.EscapeMarkdown(tip) + "\n")
	}
	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) sendPreferences(chatID int64, st app.State) {
	msg := tgbotapi.NewMessage(chatID, formatPreferences(st))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = preferencesKeyboard(st)
	b.api.Send(msg)
}

func (b *Bot) sendStatus(chatID int64, st app.State) {
	health := metrics.GetSysHealth()

	var sb strings.Builder
	sb.WriteString("📊 *Status*\n\n")
	sb.WriteString(fmt.Sprintf("• Nutrition server: %s\n", st.Status.Label()))
	sb.WriteString(fmt.Sprintf("• RAM: %s (Alloc) / %s (Sys)\n", health.Alloc, health.Sys))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	b.mu.Lock()
	sb.WriteString(fmt.Sprintf("• Active chats: %d\n", len(b.sessions)))
	b.mu.Unlock()
	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) sendHalls(chatID int64) {
	var sb strings.Builder
	sb.WriteString("🍴 *Dining Halls*\n\n")
	for _, h := range dining.Catalog() {
		sb.WriteString(fmt.Sprintf("*%s*\n%s\n\n", render.EscapeMarkdown(h.Name), render.EscapeMarkdown(h.Hours)))
	}
	sb.WriteString("Send `/hall <name>` for directions.")
	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) sendHall(chatID int64, name string) {
	h, ok := dining.Lookup(name)
	if !ok {
		b.sendMarkdown(chatID, "Unknown dining hall. Send /halls for the list.")
		return
	}

	venue := tgbotapi.NewVenue(chatID, h.Name, h.Description, h.Lat, h.Lon)
	b.api.Send(venue)

	links := dining.Directions(h)
	text := fmt.Sprintf("🧭 *%s*\n%s\n\n[Google Maps](%s) · [Apple Maps](%s) · [Waze](%s)",
		render.EscapeMarkdown(h.Name), render.EscapeMarkdown(h.Hours), links.Google, links.Apple, links.Waze)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	b.api.Send(msg)
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func sameList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const helpText = `🥗 *PlatePal*
Tell me your targets and I'll build a meal plan from the dining halls.

/show – current preferences
/calories 2000 – daily calorie target
/macros 25 45 30 – protein, carbs and fat in %
/protein, /carbs, /fat – set one macro
/toggle vegan – flip a dietary restriction
/food I love spicy food – food preferences (or just send text)
/generate – build the meal plan
/halls, /hall Turner Place – dining halls and directions
/status – server and bot status`
