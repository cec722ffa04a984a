//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"

	"github.com/subwatch/subwatch/internal/model"
)

type Store interface {
	GetChannel(ctx context.Context) (*model.Channel, error)
	CountSubscribers(ctx context.Context) (int, error)
	RecentActions(ctx context.Context, limit int) (model.ActionEntryList, error)
}

type Session interface {
	IsAuthorized(ctx context.Context) bool
}
