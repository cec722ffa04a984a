//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package tracker

import (
	"context"

	"github.com/subwatch/subwatch/internal/model"
)

type Store interface {
	GetChannel(ctx context.Context) (*model.Channel, error)
	UpdateChannel(ctx context.Context, channel model.Channel) error
	GetSubscribers(ctx context.Context) (model.SubscriberList, error)
	GetSubscriber(ctx context.Context, userID int64) (*model.Subscriber, error)
	ReplaceRoster(ctx context.Context, members model.SubscriberList) error
	// RecordTransition applies the roster change and the action-log row
	// in one transaction, so a transition is either fully recorded or
	// left for the next cycle to re-detect.
	RecordTransition(ctx context.Context, entry model.ActionEntry) error
}

type SnapshotSource interface {
	IsAuthorized(ctx context.Context) bool
	GetChannelInfo(ctx context.Context, markedID, accessHash int64) (*model.Channel, error)
	ListMembers(ctx context.Context, channel model.Channel) (model.SubscriberList, error)
}

type Notifier interface {
	// NotifyTransition is best-effort; total < 0 means the member count
	// is unknown and the suffix is omitted.
	NotifyTransition(channel model.Channel, user model.Subscriber, action model.Action, total int)
}
