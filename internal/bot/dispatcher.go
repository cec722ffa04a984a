package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/pkg/validator"
)

// Dispatcher routes inbound updates: the admin gate drops anything not
// originating from the configured admin chat (silently, so the bot's
// existence is not leaked), commands go to their handlers and plain
// text is fed to an in-flight login dialogue.
type Dispatcher struct {
	sender      Sender
	store       Store
	session     UserSession
	login       LoginFlow
	seeder      Seeder
	validator   *validator.Validator
	adminChatID int64
	logger      *zap.Logger
}

func New(
	sender Sender,
	store Store,
	session UserSession,
	login LoginFlow,
	seeder Seeder,
	adminChatID int64,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		store:       store,
		session:     session,
		login:       login,
		seeder:      seeder,
		validator:   validator.New(),
		adminChatID: adminChatID,
		logger:      logger,
	}
}

// Run consumes the update channel until it closes or ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			d.dispatch(ctx, update)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	// /id answers any chat so users can discover their identifiers
	if msg.IsCommand() && msg.Command() == "id" {
		d.handleID(msg)
		return
	}

	if msg.Chat.ID != d.adminChatID {
		return
	}

	if !msg.IsCommand() {
		if !d.login.HandleInput(ctx, msg.Text) {
			d.logger.Debug("ignored non-command message outside login dialogue")
		}
		return
	}

	switch msg.Command() {
	case "start":
		d.handleStart(msg)
	case "login":
		d.login.Start(ctx)
	case "logout":
		d.handleLogout(ctx, msg)
	case "status":
		d.handleStatus(ctx, msg)
	case "setchannel":
		d.handleSetChannel(ctx, msg)
	case "getchannelid":
		d.handleGetChannelID(ctx, msg)
	case "subcount":
		d.handleSubCount(ctx, msg)
	case "viewchannel":
		d.handleViewChannel(ctx, msg)
	default:
		d.reply(msg.Chat.ID, "Неизвестная команда. Список команд: /start")
	}
}

func (d *Dispatcher) reply(chatID int64, text string) {
	if err := d.sender.Send(chatID, text); err != nil {
		d.logger.Error("failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
