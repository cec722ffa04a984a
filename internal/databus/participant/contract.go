//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package participant

import (
	"context"

	"github.com/subwatch/subwatch/internal/model"
)

// Recorder is the idempotent classify-and-record step shared with the
// poll path. Apply reports false when the transition was already known.
type Recorder interface {
	Apply(ctx context.Context, user model.Subscriber, action model.Action) (bool, error)
}

type Store interface {
	GetChannel(ctx context.Context) (*model.Channel, error)
}
