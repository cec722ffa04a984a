package participant

import (
	"context"
	"errors"

	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/client/tguser"
	"github.com/subwatch/subwatch/internal/model"
)

// Handler converts one channel-participant update into the same
// classify -> persist -> notify effect as a poll cycle, for one user,
// with lower latency. Events for other channels, unknown event kinds
// and transitions the store already reflects are dropped.
type Handler struct {
	recorder Recorder
	store    Store
	logger   *zap.Logger
}

func New(recorder Recorder, store Store, logger *zap.Logger) *Handler {
	return &Handler{
		recorder: recorder,
		store:    store,
		logger:   logger,
	}
}

// Handler errors are swallowed: a failed event is recovered by the next
// poll cycle, and returning an error would tear down the update loop.
func (h *Handler) Handle(ctx context.Context, e tg.Entities, update *tg.UpdateChannelParticipant) error {
	channel, err := h.store.GetChannel(ctx)
	if errors.Is(err, model.ErrNoChannel) {
		return nil
	}
	if err != nil {
		h.logger.Error("failed to get tracked channel", zap.Error(err))
		return nil
	}

	if tguser.MarkChannelID(update.ChannelID) != channel.TGID {
		return nil
	}

	action, ok := classify(update)
	if !ok {
		return nil
	}

	// profile details are best-effort: the entities attached to the
	// update usually carry the user, missing fields degrade to
	// placeholders downstream
	user := model.Subscriber{UserID: update.UserID}
	if profile, found := e.Users[update.UserID]; found {
		user.Username = profile.Username
		user.FirstName = profile.FirstName
		user.LastName = profile.LastName
	}

	recorded, err := h.recorder.Apply(ctx, user, action)
	if err != nil {
		h.logger.Error("failed to apply membership event",
			zap.Int64("user_id", update.UserID),
			zap.String("action", string(action)),
			zap.Error(err))
		return nil
	}

	if recorded {
		h.logger.Info("membership event recorded",
			zap.Int64("user_id", update.UserID),
			zap.String("action", string(action)))
	}

	return nil
}

// classify maps participant updates onto membership transitions: a
// participant appearing (joined or added) is a subscription, one
// disappearing (left or kicked) is an unsubscription. Role changes have
// both sides present and are not membership transitions.
func classify(update *tg.UpdateChannelParticipant) (model.Action, bool) {
	_, hasNew := update.GetNewParticipant()
	_, hasPrev := update.GetPrevParticipant()

	switch {
	case hasNew && !hasPrev:
		return model.ActionSubscribed, true
	case hasPrev && !hasNew:
		return model.ActionUnsubscribed, true
	default:
		return "", false
	}
}
