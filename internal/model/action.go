package model

import "time"

type Action string

const (
	ActionSubscribed   Action = "SUBSCRIBED"
	ActionUnsubscribed Action = "UNSUBSCRIBED"
)

type ActionEntryList []ActionEntry

// ActionEntry is one immutable row of the join/leave audit trail.
type ActionEntry struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_tg_id"`
	Username    string    `db:"user_tg_username"`
	FirstName   string    `db:"user_tg_name"`
	LastName    string    `db:"user_tg_surname"`
	Action      Action    `db:"action"`
	TimeUTC     time.Time `db:"time_utc"`
	ChannelTGID int64     `db:"channel_tg_id"`
}
