//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package bot

import (
	"context"

	"github.com/subwatch/subwatch/internal/model"
)

type Sender interface {
	Send(chatID int64, text string) error
}

type Store interface {
	GetChannel(ctx context.Context) (*model.Channel, error)
	SetChannel(ctx context.Context, channel model.Channel) error
	CountSubscribers(ctx context.Context) (int, error)
}

// UserSession is the delegated account the commands operate through.
type UserSession interface {
	IsAuthorized(ctx context.Context) bool
	Logout(ctx context.Context) error
	Self(ctx context.Context) (model.Subscriber, error)
	ResolveChannel(ctx context.Context, handle string) (*model.Channel, error)
	GetChannelInfo(ctx context.Context, markedID, accessHash int64) (*model.Channel, error)
	ListMembers(ctx context.Context, channel model.Channel) (model.SubscriberList, error)
}

// LoginFlow is the authentication dialogue the dispatcher feeds.
type LoginFlow interface {
	Start(ctx context.Context)
	HandleInput(ctx context.Context, text string) bool
}

// Seeder re-seeds the roster from the live snapshot after /setchannel.
type Seeder interface {
	SeedRoster(ctx context.Context) (int, error)
}
