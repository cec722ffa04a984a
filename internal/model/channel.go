package model

// Channel is the single channel currently under membership tracking.
// TGID is stored in the -100-prefixed form shown by Telegram clients;
// AccessHash is captured at resolve time because MTProto channel calls
// require it alongside the bare id.
type Channel struct {
	TGID       int64  `db:"tg_id"`
	AccessHash int64  `db:"access_hash"`
	Name       string `db:"name"`
	Username   string `db:"username"`
}
