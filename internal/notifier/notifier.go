package notifier

import (
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/model"
)

// Notifier formats membership transitions and sends them to the single
// admin destination. Delivery is best-effort: failures are logged and
// dropped, never retried. Sends run on a bounded pool so a slow
// Telegram API cannot stall a reconcile cycle.
type Notifier struct {
	sender      Sender
	adminChatID int64
	pool        pond.Pool
	logger      *zap.Logger
}

func New(sender Sender, adminChatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:      sender,
		adminChatID: adminChatID,
		pool:        pond.NewPool(1, pond.WithQueueSize(256)),
		logger:      logger,
	}
}

// NotifyTransition enqueues one transition notification. total < 0 means
// the member count is unknown and the suffix is omitted.
func (n *Notifier) NotifyTransition(channel model.Channel, user model.Subscriber, action model.Action, total int) {
	text := FormatTransition(channel, user, action, total)

	n.pool.Submit(func() {
		if err := n.sender.Send(n.adminChatID, text); err != nil {
			n.logger.Error("failed to send notification",
				zap.Int64("user_id", user.UserID),
				zap.String("action", string(action)),
				zap.Error(err))
		}
	})
}

// Prompt sends a dialogue or status message to the admin chat through
// the same best-effort pipeline. Satisfies the auth prompter contract.
func (n *Notifier) Prompt(text string) {
	n.pool.Submit(func() {
		if err := n.sender.Send(n.adminChatID, text); err != nil {
			n.logger.Error("failed to send prompt", zap.Error(err))
		}
	})
}

// Close drains queued notifications.
func (n *Notifier) Close() {
	n.pool.StopAndWait()
}

// FormatTransition renders the fixed admin notification template.
func FormatTransition(channel model.Channel, user model.Subscriber, action model.Action, total int) string {
	channelHandle := channel.Username
	if channelHandle == "" {
		channelHandle = model.NoUsername
	}

	lastName := user.LastName
	if lastName == "" {
		lastName = model.NoSurname
	}

	verb := "ПОДПИСКА на канал"
	if action == model.ActionUnsubscribed {
		verb = "ОТПИСКА от канала"
	}

	text := fmt.Sprintf("Зафиксирована %s @%s, пользователь: @%s %s %s (id%d)",
		verb, channelHandle, user.Handle(), user.FirstName, lastName, user.UserID)

	if total >= 0 {
		text += fmt.Sprintf(". Всего подписчиков: %d", total)
	}

	return text
}
