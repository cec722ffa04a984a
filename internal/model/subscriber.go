package model

// Placeholder values used when Telegram does not expose a field.
const (
	NoUsername = "no_username"
	NoSurname  = "no_surname"
)

type SubscriberList []Subscriber

// Subscriber is one user's last known membership record. The same shape
// is used for live snapshot members; the roster is just the persisted
// snapshot of the previous cycle.
type Subscriber struct {
	UserID    int64  `db:"user_tg_id"`
	Username  string `db:"username"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// Handle returns the username or the placeholder for users without one.
func (s Subscriber) Handle() string {
	if s.Username == "" {
		return NoUsername
	}
	return s.Username
}

// ByID keys a member list by user id for set-difference computation.
func (l SubscriberList) ByID() map[int64]Subscriber {
	m := make(map[int64]Subscriber, len(l))
	for _, s := range l {
		m[s.UserID] = s
	}
	return m
}
