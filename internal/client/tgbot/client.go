package tgbot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/config"
)

const updatePollTimeoutSeconds = 30

// Client wraps the Bot API transport: outbound admin messages and the
// inbound command update stream.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate bot: %v", err)
	}

	logger.Info("bot authenticated", zap.String("username", api.Self.UserName))

	return &Client{
		api:    api,
		logger: logger,
	}, nil
}

func (c *Client) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}

	return nil
}

func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updatePollTimeoutSeconds

	return c.api.GetUpdatesChan(u)
}

func (c *Client) Close() {
	c.api.StopReceivingUpdates()
}
