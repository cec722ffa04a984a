//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package auth

import "context"

// Outcome is the tagged result of a sign-in attempt. The state machine
// branches on this value, not on error type matching.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeSecondFactor
	OutcomeInvalid
	OutcomeTransport
)

// SessionClient is the delegated user session boundary consumed by the
// login dialogue.
type SessionClient interface {
	IsAuthorized(ctx context.Context) bool
	RequestCode(ctx context.Context, phone string) error
	SignIn(ctx context.Context, phone, code string) (Outcome, error)
	SubmitPassword(ctx context.Context, password string) error
}

// Prompter sends a dialogue message to the admin chat, best-effort.
type Prompter interface {
	Prompt(text string)
}
