package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/xaenox/gatekeeper-bot/internal/agent"
	"github.com/xaenox/gatekeeper-bot/internal/filter"
	"github.com/xaenox/gatekeeper-bot/internal/models"
	"github.com/xaenox/gatekeeper-bot/internal/storage"
	"go.uber.org/zap"
)

type Bot struct {
	api          *tgbotapi.BotAPI
	storage      storage.Storage
	agent        *agent.Responder
	filter       *filter.Engine
	historyLimit int
	logger       *zap.Logger
}

func New(token string, store storage.Storage, responder *agent.Responder, engine *filter.Engine, historyLimit int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:          api,
		storage:      store,
		agent:        responder,
		filter:       engine,
		historyLimit: historyLimit,
		logger:       logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	// Never react to our own messages
	if message.From == nil || message.From.ID == b.api.Self.ID {
		return
	}

	// Group gating is out of scope for the admission filter; only direct
	// chats are answered.
	if !message.Chat.IsPrivate() {
		return
	}

	switch {
	case message.IsCommand() && message.Command() == "start":
		b.handleStart(message)
		return
	case message.IsCommand() && message.Command() == "help":
		b.handleHelp(message)
		return
	case message.IsCommand() && message.Command() == "stats":
		b.handleStats(message)
		return
	}

	content := message.Text
	if message.Caption != "" {
		content = message.Caption
	}
	if content == "" {
		return
	}

	sender := strconv.FormatInt(message.From.ID, 10)
	if message.From.UserName != "" {
		sender = message.From.UserName
	}

	// Admission check: exactly once per direct message, before any agent
	// dispatch. DROP halts here with no reply.
	if b.shouldDrop(filter.Message{Sender: sender, Body: content}) {
		return
	}

	inbound := &models.Message{
		ID:        uuid.New().String(),
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		Sender:    sender,
		Role:      models.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := b.storage.SaveMessage(ctx, inbound); err != nil {
		b.logger.Error("Failed to save inbound message",
			zap.Error(err),
			zap.String("message_id", inbound.ID),
			zap.Int64("user_id", message.From.ID))
	}

	history, err := b.storage.RecentMessages(ctx, message.Chat.ID, b.historyLimit)
	if err != nil {
		b.logger.Error("Failed to load conversation history",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
		history = nil
	}

	reply := b.agent.Reply(ctx, history, content)

	outbound := &models.Message{
		ID:        uuid.New().String(),
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		Sender:    b.api.Self.UserName,
		Role:      models.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := b.storage.SaveMessage(ctx, outbound); err != nil {
		b.logger.Error("Failed to save reply",
			zap.Error(err),
			zap.String("message_id", outbound.ID),
			zap.Int64("chat_id", message.Chat.ID))
	}

	b.sendReply(message.Chat.ID, message.MessageID, reply)
}

// shouldDrop wraps the admission engine fail-open: this is the only place
// a raw failure is converted into a verdict. A panicking filter must never
// be the reason a legitimate message fails to reach the agent.
func (b *Bot) shouldDrop(msg filter.Message) (drop bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Admission filter failed, allowing message",
				zap.Any("panic", r),
				zap.String("sender", msg.Sender))
			drop = false
		}
	}()
	return b.filter.Evaluate(msg) == filter.VerdictDrop
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Hi! I'm an assistant bot — just send me a message and I'll answer.

Use /help to see available commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the bot
/help - Show this help message
/stats - Show message filtering statistics

Anything else you send is answered by the assistant.`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleStats(message *tgbotapi.Message) {
	s := b.filter.Counters().Snapshot()
	text := fmt.Sprintf("Messages dropped: %d\nKeyword matches allowed: %d\nEstimated cost saved: %d",
		s.Dropped, s.Allowed, s.CostSaved)
	b.sendMessage(message.Chat.ID, text)
}

func (b *Bot) sendReply(chatID int64, replyToID int, text string) {
	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(text))
	msg.ReplyToMessageID = replyToID
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
