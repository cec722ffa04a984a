package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS channel (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    tg_id       INTEGER UNIQUE NOT NULL,
    access_hash INTEGER NOT NULL DEFAULT 0,
    name        TEXT NOT NULL,
    username    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS subscribers (
    user_tg_id INTEGER PRIMARY KEY,
    username   TEXT NOT NULL DEFAULT '',
    first_name TEXT NOT NULL DEFAULT '',
    last_name  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS actions (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    user_tg_id       INTEGER NOT NULL,
    user_tg_username TEXT NOT NULL DEFAULT '',
    user_tg_name     TEXT NOT NULL DEFAULT '',
    user_tg_surname  TEXT NOT NULL DEFAULT '',
    action           TEXT NOT NULL CHECK (action IN ('SUBSCRIBED', 'UNSUBSCRIBED')),
    time_utc         TIMESTAMP NOT NULL,
    channel_tg_id    INTEGER NOT NULL
);
`

type Repository struct {
	connection *sqlx.DB
}

func New(cfg *config.Config) *Repository {
	conn, err := sqlx.Connect("sqlite3", cfg.Store.Path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		log.Fatal("error init schema: ", err)
	}

	// the store is shared between the poll and event paths; a single
	// connection keeps sqlite writes serialized
	conn.SetMaxOpenConns(1)

	return &Repository{
		connection: conn,
	}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

// SetChannel replaces the tracked channel and clears the roster in one
// transaction. The action log is kept, it is tagged per channel.
func (r *Repository) SetChannel(ctx context.Context, channel model.Channel) error {
	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM channel"); err != nil {
		return fmt.Errorf("failed to clear channel: %v", err)
	}

	query, args, err := sq.Insert("channel").
		Columns("id", "tg_id", "access_hash", "name", "username").
		Values(1, channel.TGID, channel.AccessHash, channel.Name, channel.Username).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert channel: %v", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM subscribers"); err != nil {
		return fmt.Errorf("failed to clear subscribers: %v", err)
	}

	return tx.Commit()
}

func (r *Repository) GetChannel(ctx context.Context) (*model.Channel, error) {
	query, args, err := sq.Select("tg_id", "access_hash", "name", "username").
		From("channel").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var channel model.Channel
	err = r.connection.GetContext(ctx, &channel, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNoChannel
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %v", err)
	}

	return &channel, nil
}

// UpdateChannel rewrites the tracked-channel row in place, used to fill
// in the access hash recovered after login. Roster and log are untouched.
func (r *Repository) UpdateChannel(ctx context.Context, channel model.Channel) error {
	query, args, err := sq.Update("channel").
		Set("tg_id", channel.TGID).
		Set("access_hash", channel.AccessHash).
		Set("name", channel.Name).
		Set("username", channel.Username).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.connection.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update channel: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update channel: %v", err)
	}
	if affected == 0 {
		return model.ErrNoChannel
	}

	return nil
}

func (r *Repository) GetSubscribers(ctx context.Context) (model.SubscriberList, error) {
	query, args, err := sq.Select("user_tg_id", "username", "first_name", "last_name").
		From("subscribers").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var subscribers model.SubscriberList
	err = r.connection.SelectContext(ctx, &subscribers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %v", err)
	}

	return subscribers, nil
}

func (r *Repository) GetSubscriber(ctx context.Context, userID int64) (*model.Subscriber, error) {
	query, args, err := sq.Select("user_tg_id", "username", "first_name", "last_name").
		From("subscribers").
		Where(sq.Eq{"user_tg_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var subscriber model.Subscriber
	err = r.connection.GetContext(ctx, &subscriber, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %v", err)
	}

	return &subscriber, nil
}

// ReplaceRoster wipes the roster and seeds it from a live snapshot. Used
// after /setchannel; seeding is not a transition, so no actions are logged.
func (r *Repository) ReplaceRoster(ctx context.Context, members model.SubscriberList) error {
	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM subscribers"); err != nil {
		return fmt.Errorf("failed to clear subscribers: %v", err)
	}

	if len(members) > 0 {
		query := sq.Insert("subscribers").
			Columns("user_tg_id", "username", "first_name", "last_name")

		for _, member := range members {
			query = query.Values(member.UserID, member.Username, member.FirstName, member.LastName)
		}

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sql query: %v", err)
		}

		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("failed to seed subscribers: %v", err)
		}
	}

	return tx.Commit()
}

func (r *Repository) CountSubscribers(ctx context.Context) (int, error) {
	var count int
	err := r.connection.GetContext(ctx, &count, "SELECT COUNT(*) FROM subscribers")
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %v", err)
	}

	return count, nil
}

// RecordTransition applies one membership transition: the roster change
// and its action-log row commit together or not at all.
func (r *Repository) RecordTransition(ctx context.Context, entry model.ActionEntry) error {
	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	var query string
	var args []interface{}

	switch entry.Action {
	case model.ActionSubscribed:
		query, args, err = sq.Insert("subscribers").
			Columns("user_tg_id", "username", "first_name", "last_name").
			Values(entry.UserID, entry.Username, entry.FirstName, entry.LastName).
			Suffix("ON CONFLICT (user_tg_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name, last_name = excluded.last_name").
			ToSql()
	case model.ActionUnsubscribed:
		query, args, err = sq.Delete("subscribers").
			Where(sq.Eq{"user_tg_id": entry.UserID}).
			ToSql()
	default:
		return fmt.Errorf("unknown action %q", entry.Action)
	}
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to apply roster change: %v", err)
	}

	query, args, err = sq.Insert("actions").
		Columns("user_tg_id", "user_tg_username", "user_tg_name", "user_tg_surname", "action", "time_utc", "channel_tg_id").
		Values(entry.UserID, entry.Username, entry.FirstName, entry.LastName, string(entry.Action), entry.TimeUTC.UTC().Format(time.RFC3339), entry.ChannelTGID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append action: %v", err)
	}

	return tx.Commit()
}

func (r *Repository) RecentActions(ctx context.Context, limit int) (model.ActionEntryList, error) {
	queryBuilder := sq.Select("id", "user_tg_id", "user_tg_username", "user_tg_name", "user_tg_surname", "action", "time_utc", "channel_tg_id").
		From("actions").
		OrderBy("id DESC")

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	} else {
		queryBuilder = queryBuilder.Limit(50)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var actions model.ActionEntryList
	err = r.connection.SelectContext(ctx, &actions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get actions: %v", err)
	}

	return actions, nil
}
