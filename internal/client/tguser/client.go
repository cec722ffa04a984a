package tguser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	tdauth "github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/auth"
	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/model"
)

const participantsPageSize = 200

// channelIDBase converts between the bare MTProto channel id and the
// -100-prefixed form Telegram clients (and the admin) use.
const channelIDBase = int64(1_000_000_000_000)

func MarkChannelID(bare int64) int64 {
	return -(channelIDBase + bare)
}

func BareChannelID(marked int64) int64 {
	if marked < -channelIDBase {
		return -marked - channelIDBase
	}
	return marked
}

// Client wraps the delegated user-level MTProto session. Bots cannot
// list channel members, so membership snapshots, entity resolution and
// channel-participant updates all go through this account.
type Client struct {
	client     *telegram.Client
	api        *tg.Client
	dispatcher tg.UpdateDispatcher
	logger     *zap.Logger

	mu            sync.Mutex
	phoneCodeHash string
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	dispatcher := tg.NewUpdateDispatcher()

	client := telegram.NewClient(cfg.Telegram.APIID, cfg.Telegram.APIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: cfg.Telegram.UserSessionPath},
		UpdateHandler:  dispatcher,
		Logger:         logger.Named("mtproto"),
	})

	return &Client{
		client:     client,
		api:        client.API(),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run keeps the MTProto connection alive until ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
}

// OnChannelParticipant registers the real-time membership event handler.
func (c *Client) OnChannelParticipant(fn func(ctx context.Context, e tg.Entities, update *tg.UpdateChannelParticipant) error) {
	c.dispatcher.OnChannelParticipant(fn)
}

func (c *Client) IsAuthorized(ctx context.Context) bool {
	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		c.logger.Debug("failed to get auth status", zap.Error(err))
		return false
	}

	return status.Authorized
}

func (c *Client) RequestCode(ctx context.Context, phone string) error {
	sent, err := c.client.Auth().SendCode(ctx, phone, tdauth.SendCodeOptions{})
	if err != nil {
		return fmt.Errorf("failed to request code: %v", err)
	}

	code, ok := sent.(*tg.AuthSentCode)
	if !ok {
		return fmt.Errorf("unexpected sent code response %T", sent)
	}

	c.mu.Lock()
	c.phoneCodeHash = code.PhoneCodeHash
	c.mu.Unlock()

	return nil
}

func (c *Client) SignIn(ctx context.Context, phone, code string) (auth.Outcome, error) {
	c.mu.Lock()
	hash := c.phoneCodeHash
	c.mu.Unlock()

	_, err := c.client.Auth().SignIn(ctx, phone, code, hash)
	if err == nil {
		return auth.OutcomeOK, nil
	}

	if errors.Is(err, tdauth.ErrPasswordAuthNeeded) {
		return auth.OutcomeSecondFactor, nil
	}

	if tgerr.Is(err, "PHONE_CODE_INVALID", "PHONE_CODE_EXPIRED", "PHONE_NUMBER_INVALID") {
		return auth.OutcomeInvalid, fmt.Errorf("sign-in rejected: %v", err)
	}

	return auth.OutcomeTransport, fmt.Errorf("sign-in failed: %v", err)
}

func (c *Client) SubmitPassword(ctx context.Context, password string) error {
	if _, err := c.client.Auth().Password(ctx, password); err != nil {
		return fmt.Errorf("password verification failed: %v", err)
	}

	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.api.AuthLogOut(ctx); err != nil {
		return fmt.Errorf("failed to log out: %v", err)
	}

	return nil
}

// Self reports the signed-in account, used by /status.
func (c *Client) Self(ctx context.Context) (model.Subscriber, error) {
	user, err := c.client.Self(ctx)
	if err != nil {
		return model.Subscriber{}, fmt.Errorf("failed to get self: %v", err)
	}

	return model.Subscriber{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// ResolveChannel resolves an @handle to the tracked-channel record.
func (c *Client) ResolveChannel(ctx context.Context, handle string) (*model.Channel, error) {
	peer, err := c.api.ContactsResolveUsername(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %v", handle, err)
	}

	for _, chat := range peer.Chats {
		if channel, ok := chat.(*tg.Channel); ok {
			return &model.Channel{
				TGID:       MarkChannelID(channel.ID),
				AccessHash: channel.AccessHash,
				Name:       channel.Title,
				Username:   channel.Username,
			}, nil
		}
	}

	return nil, model.ErrNotFound
}

// GetChannelInfo fetches the channel entity for a numeric id, verifying
// it exists and capturing its access hash, title and username. With a
// zero access hash MTProto rejects the direct lookup, so the channel is
// recovered from the account's own chat list instead.
func (c *Client) GetChannelInfo(ctx context.Context, markedID, accessHash int64) (*model.Channel, error) {
	bare := BareChannelID(markedID)

	if accessHash == 0 {
		return c.findParticipatingChannel(ctx, markedID, bare)
	}

	chats, err := c.api.ChannelsGetChannels(ctx, []tg.InputChannelClass{
		&tg.InputChannel{ChannelID: bare, AccessHash: accessHash},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %d: %v", markedID, err)
	}

	for _, chat := range chats.GetChats() {
		if channel, ok := chat.(*tg.Channel); ok && channel.ID == bare {
			return &model.Channel{
				TGID:       markedID,
				AccessHash: channel.AccessHash,
				Name:       channel.Title,
				Username:   channel.Username,
			}, nil
		}
	}

	return nil, model.ErrNotFound
}

// findParticipatingChannel scans the channels the account takes part in
// for a matching bare id. This is the only way to obtain a valid access
// hash when the id alone is known.
func (c *Client) findParticipatingChannel(ctx context.Context, markedID, bare int64) (*model.Channel, error) {
	chats, err := c.api.MessagesGetAllChats(ctx, []int64{})
	if err != nil {
		return nil, fmt.Errorf("failed to list own chats: %v", err)
	}

	for _, chat := range chats.GetChats() {
		if channel, ok := chat.(*tg.Channel); ok && channel.ID == bare {
			return &model.Channel{
				TGID:       markedID,
				AccessHash: channel.AccessHash,
				Name:       channel.Title,
				Username:   channel.Username,
			}, nil
		}
	}

	return nil, model.ErrNotFound
}

// ListMembers fetches the full current member set of the channel.
func (c *Client) ListMembers(ctx context.Context, channel model.Channel) (model.SubscriberList, error) {
	input := &tg.InputChannel{
		ChannelID:  BareChannelID(channel.TGID),
		AccessHash: channel.AccessHash,
	}

	var members model.SubscriberList

	for offset := 0; ; {
		res, err := c.api.ChannelsGetParticipants(ctx, &tg.ChannelsGetParticipantsRequest{
			Channel: input,
			Filter:  &tg.ChannelParticipantsRecent{},
			Offset:  offset,
			Limit:   participantsPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list participants: %v", err)
		}

		page, ok := res.(*tg.ChannelsChannelParticipants)
		if !ok {
			break
		}

		for _, u := range page.Users {
			user, ok := u.(*tg.User)
			if !ok {
				continue
			}
			members = append(members, model.Subscriber{
				UserID:    user.ID,
				Username:  user.Username,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			})
		}

		if len(page.Participants) < participantsPageSize {
			break
		}
		offset += len(page.Participants)
	}

	return members, nil
}
