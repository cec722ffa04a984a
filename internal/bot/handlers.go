package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/model"
)

const helpText = `Привет! Я бот для отслеживания подписок/отписок канала.

Доступные команды:
/login – Войти в аккаунт
/logout – Выйти из аккаунта
/status – Проверить, авторизован ли аккаунт
/setchannel <ID> – Установить ID канала
/getchannelid <@username> – Получить numeric ID канала по его username
/viewchannel – Показать отслеживаемый канал
/subcount – Узнать, сколько подписчиков
/id – Показать идентификаторы чата и пользователя`

func (d *Dispatcher) handleStart(msg *tgbotapi.Message) {
	d.reply(msg.Chat.ID, helpText)
}

func (d *Dispatcher) handleID(msg *tgbotapi.Message) {
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	d.reply(msg.Chat.ID, fmt.Sprintf("chat_id: %d\nuser_id: %d", msg.Chat.ID, userID))
}

func (d *Dispatcher) handleLogout(ctx context.Context, msg *tgbotapi.Message) {
	if !d.session.IsAuthorized(ctx) {
		d.reply(msg.Chat.ID, "Аккаунт не авторизован (или уже разлогинен).")
		return
	}

	if err := d.session.Logout(ctx); err != nil {
		d.logger.Error("failed to log out", zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Не удалось разлогиниться: %v", err))
		return
	}

	d.reply(msg.Chat.ID, "Аккаунт разлогинен.")
}

func (d *Dispatcher) handleStatus(ctx context.Context, msg *tgbotapi.Message) {
	if !d.session.IsAuthorized(ctx) {
		d.reply(msg.Chat.ID, "Сейчас аккаунт не авторизован.")
		return
	}

	self, err := d.session.Self(ctx)
	if err != nil {
		d.logger.Error("failed to get account info", zap.Error(err))
		d.reply(msg.Chat.ID, "Аккаунт авторизован, но не удалось получить данные аккаунта.")
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf("Сейчас вошли под аккаунтом: %s (id: %d)", self.FirstName, self.UserID))
}

func (d *Dispatcher) handleSetChannel(ctx context.Context, msg *tgbotapi.Message) {
	channelID, err := d.validator.ValidateChannelID(msg.CommandArguments())
	if err != nil {
		d.reply(msg.Chat.ID, "Использование: /setchannel <numeric ID>")
		return
	}

	if !d.session.IsAuthorized(ctx) {
		// without the delegated session the channel cannot be verified
		// and the roster cannot be seeded; store the id and let the
		// first authorized reconcile cycle pick it up
		channel := model.Channel{TGID: channelID, Name: fmt.Sprintf("channel %d", channelID)}
		if err := d.store.SetChannel(ctx, channel); err != nil {
			d.logger.Error("failed to set channel", zap.Error(err))
			d.reply(msg.Chat.ID, fmt.Sprintf("Не удалось сохранить канал: %v", err))
			return
		}
		d.reply(msg.Chat.ID, fmt.Sprintf(
			"Установлен канал для отслеживания: %d. Авторизуйтесь (/login), чтобы загрузить список подписчиков.", channelID))
		return
	}

	info, err := d.session.GetChannelInfo(ctx, channelID, 0)
	if err != nil {
		d.logger.Error("failed to fetch channel", zap.Int64("channel_id", channelID), zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Не удалось получить канал %d: %v", channelID, err))
		return
	}

	if err := d.store.SetChannel(ctx, *info); err != nil {
		d.logger.Error("failed to set channel", zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Не удалось сохранить канал: %v", err))
		return
	}

	seeded, err := d.seeder.SeedRoster(ctx)
	if err != nil {
		d.logger.Error("failed to seed roster", zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf(
			"Установлен канал для отслеживания: %s (id %d), но не удалось загрузить список подписчиков: %v",
			info.Name, info.TGID, err))
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf(
		"Установлен канал для отслеживания: %s (id %d). Загружено подписчиков: %d.",
		info.Name, info.TGID, seeded))
}

func (d *Dispatcher) handleGetChannelID(ctx context.Context, msg *tgbotapi.Message) {
	handle, err := d.validator.ValidateHandle(msg.CommandArguments())
	if err != nil {
		d.reply(msg.Chat.ID, "Использование: /getchannelid <@username>")
		return
	}

	if !d.session.IsAuthorized(ctx) {
		d.reply(msg.Chat.ID, "Сначала нужно авторизоваться (команда /login).")
		return
	}

	channel, err := d.session.ResolveChannel(ctx, handle)
	if err != nil {
		d.logger.Error("failed to resolve handle", zap.String("handle", handle), zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Не удалось получить ID: %v", err))
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf("ID для @%s = %d", handle, channel.TGID))
}

func (d *Dispatcher) handleSubCount(ctx context.Context, msg *tgbotapi.Message) {
	channel, err := d.store.GetChannel(ctx)
	if errors.Is(err, model.ErrNoChannel) {
		d.reply(msg.Chat.ID, "Сначала установите канал /setchannel <ID>.")
		return
	}
	if err != nil {
		d.logger.Error("failed to get tracked channel", zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Ошибка при чтении канала: %v", err))
		return
	}

	if !d.session.IsAuthorized(ctx) {
		d.reply(msg.Chat.ID, "Сначала нужно авторизоваться (команда /login).")
		return
	}

	members, err := d.session.ListMembers(ctx, *channel)
	if err != nil {
		d.logger.Error("failed to list members", zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Ошибка при получении количества подписчиков: %v", err))
		return
	}

	d.reply(msg.Chat.ID, fmt.Sprintf("Сейчас в канале %d подписчиков.", len(members)))
}

func (d *Dispatcher) handleViewChannel(ctx context.Context, msg *tgbotapi.Message) {
	channel, err := d.store.GetChannel(ctx)
	if errors.Is(err, model.ErrNoChannel) {
		d.reply(msg.Chat.ID, "Канал не задан. Установите его командой /setchannel <ID>.")
		return
	}
	if err != nil {
		d.logger.Error("failed to get tracked channel", zap.Error(err))
		d.reply(msg.Chat.ID, fmt.Sprintf("Ошибка при чтении канала: %v", err))
		return
	}

	count, err := d.store.CountSubscribers(ctx)
	if err != nil {
		d.logger.Error("failed to count subscribers", zap.Error(err))
		count = 0
	}

	handle := channel.Username
	if handle == "" {
		handle = model.NoUsername
	}

	d.reply(msg.Chat.ID, fmt.Sprintf(
		"Отслеживается канал: %s (@%s, id %d). Подписчиков в базе: %d.",
		channel.Name, handle, channel.TGID, count))
}
