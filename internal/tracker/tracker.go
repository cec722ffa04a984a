package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/model"
	"github.com/subwatch/subwatch/internal/pkg/retry"
)

// TotalUnknown is passed to the notifier when no snapshot total is available.
const TotalUnknown = -1

// Stats reports what one reconciliation cycle did.
type Stats struct {
	Added   int
	Removed int
}

// Tracker owns the classify -> persist -> notify pipeline. Both detection
// paths go through it: Reconcile diffs a full snapshot against the roster,
// Apply records a single real-time event. The mutex serializes the two
// paths so a poll cycle and an event for the same user cannot interleave
// their store writes.
type Tracker struct {
	mu       sync.Mutex
	store    Store
	source   SnapshotSource
	notifier Notifier
	logger   *zap.Logger
}

func New(store Store, source SnapshotSource, notifier Notifier, logger *zap.Logger) *Tracker {
	return &Tracker{
		store:    store,
		source:   source,
		notifier: notifier,
		logger:   logger,
	}
}

// Reconcile runs one poll cycle: fetch snapshot, diff against the roster,
// record and notify each transition. Without a configured channel or an
// authorized session the cycle is silently skipped. Snapshot fetch failure
// aborts the cycle with no state change; a single user's failure does not
// stop the rest of the batch.
func (t *Tracker) Reconcile(ctx context.Context) (Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	channel, err := t.store.GetChannel(ctx)
	if errors.Is(err, model.ErrNoChannel) {
		t.logger.Debug("reconcile skipped: no tracked channel")
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get tracked channel: %v", err)
	}

	if !t.source.IsAuthorized(ctx) {
		t.logger.Debug("reconcile skipped: session not authorized")
		return Stats{}, nil
	}

	// a zero access hash means the channel was set before login and the
	// stored record is not usable for MTProto calls yet
	if channel.AccessHash == 0 {
		channel, err = t.refreshChannel(ctx, *channel)
		if err != nil {
			return Stats{}, err
		}
	}

	var members model.SubscriberList
	err = retry.WithBackoff(ctx, retry.SnapshotConfig(), t.logger, "list members", func() error {
		var listErr error
		members, listErr = t.source.ListMembers(ctx, *channel)
		return listErr
	})
	if err != nil {
		return Stats{}, fmt.Errorf("failed to fetch snapshot: %v", err)
	}

	roster, err := t.store.GetSubscribers(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get roster: %v", err)
	}

	snapshot := members.ByID()
	stored := roster.ByID()

	var stats Stats

	for userID, member := range snapshot {
		if _, ok := stored[userID]; ok {
			continue
		}
		if err := t.record(ctx, *channel, member, model.ActionSubscribed, len(members)); err != nil {
			t.logger.Error("failed to record subscription",
				zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		stats.Added++
	}

	for userID, subscriber := range stored {
		if _, ok := snapshot[userID]; ok {
			continue
		}
		// the live snapshot no longer has this user, report the last
		// known fields from the roster
		if err := t.record(ctx, *channel, subscriber, model.ActionUnsubscribed, len(members)); err != nil {
			t.logger.Error("failed to record unsubscription",
				zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		stats.Removed++
	}

	if stats.Added > 0 || stats.Removed > 0 {
		t.logger.Info("reconcile cycle finished",
			zap.Int("added", stats.Added),
			zap.Int("removed", stats.Removed),
			zap.Int("total", len(members)))
	}

	return stats, nil
}

// Apply records one real-time membership event through the same pipeline.
// It checks current roster existence first, so a transition already seen
// by either path degrades to a no-op: no store write, no action row, no
// duplicate notification. Returns false for such duplicates.
func (t *Tracker) Apply(ctx context.Context, user model.Subscriber, action model.Action) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	channel, err := t.store.GetChannel(ctx)
	if errors.Is(err, model.ErrNoChannel) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get tracked channel: %v", err)
	}

	stored, err := t.store.GetSubscriber(ctx, user.UserID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return false, fmt.Errorf("failed to check roster: %v", err)
	}

	switch action {
	case model.ActionSubscribed:
		if stored != nil {
			return false, nil
		}
	case model.ActionUnsubscribed:
		if stored == nil {
			return false, nil
		}
		// prefer last known fields when the event carries none
		if user.Username == "" && user.FirstName == "" {
			user = *stored
		}
	default:
		return false, nil
	}

	if err := t.record(ctx, *channel, user, action, TotalUnknown); err != nil {
		return false, err
	}

	return true, nil
}

// SeedRoster bulk-loads the roster from the live snapshot, bypassing the
// transition pipeline: pre-existing members are not transitions, so no
// action rows and no notifications. Returns the seeded member count.
func (t *Tracker) SeedRoster(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	channel, err := t.store.GetChannel(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get tracked channel: %v", err)
	}

	if !t.source.IsAuthorized(ctx) {
		return 0, model.ErrNotAuthorized
	}

	members, err := t.source.ListMembers(ctx, *channel)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch snapshot: %v", err)
	}

	if err := t.store.ReplaceRoster(ctx, members); err != nil {
		return 0, fmt.Errorf("failed to seed roster: %v", err)
	}

	return len(members), nil
}

// refreshChannel recovers the access hash through the live session and
// persists it, keeping the roster and action log untouched.
func (t *Tracker) refreshChannel(ctx context.Context, stale model.Channel) (*model.Channel, error) {
	info, err := t.source.GetChannelInfo(ctx, stale.TGID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to recover channel access hash: %v", err)
	}

	if err := t.store.UpdateChannel(ctx, *info); err != nil {
		return nil, fmt.Errorf("failed to update channel: %v", err)
	}

	t.logger.Info("recovered channel access hash",
		zap.Int64("channel_tg_id", info.TGID),
		zap.String("name", info.Name))

	return info, nil
}

// record performs the persist+notify step for one transition. The store
// mutation comes first: if it fails the notification is suppressed and the
// next cycle re-detects the transition, so a notification always implies a
// logged action row.
func (t *Tracker) record(ctx context.Context, channel model.Channel, user model.Subscriber, action model.Action, total int) error {
	entry := model.ActionEntry{
		UserID:      user.UserID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Action:      action,
		TimeUTC:     time.Now().UTC(),
		ChannelTGID: channel.TGID,
	}

	if err := t.store.RecordTransition(ctx, entry); err != nil {
		return fmt.Errorf("failed to record transition: %v", err)
	}

	t.notifier.NotifyTransition(channel, user, action, total)

	return nil
}
