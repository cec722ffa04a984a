//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package notifier

// Sender is the outbound bot transport used for admin notifications.
type Sender interface {
	Send(chatID int64, text string) error
}
