package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ttlcache "github.com/jellydator/ttlcache/v3"
	"github.com/slack-go/slack"
)

var ErrSlackNotFound = fmt.Errorf("not found")

type SlackRepository struct {
	client        *slack.Client
	channelsCache *ttlcache.Cache[string, string]
}

func NewSlackRepository(client *slack.Client) *SlackRepository {
	r := &SlackRepository{
		client:        client,
		channelsCache: ttlcache.New(ttlcache.WithTTL[string, string](time.Hour)),
	}
	go r.channelsCache.Start()
	return r
}

// PostMessage delivers one plain-text message. The channel may be an ID or
// a channel name; names are resolved through the cached channel list.
func (h *SlackRepository) PostMessage(ctx context.Context, channel, text string) error {
	id, err := h.resolveChannelID(channel)
	if err != nil {
		if err != ErrSlackNotFound {
			slog.Warn("channel lookup failed, posting to raw value",
				slog.String("channel", channel), slog.Any("error", err))
		}
		id = channel
	}

	_, _, err = h.client.PostMessageContext(ctx, id, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message to %s: %w", channel, err)
	}
	return nil
}

func (h *SlackRepository) resolveChannelID(channel string) (string, error) {
	name := strings.TrimPrefix(channel, "#")
	if item := h.channelsCache.Get(name); item != nil {
		return item.Value(), nil
	}

	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           1000,
	}
	for {
		channels, cursor, err := h.client.GetConversations(params)
		if err != nil {
			return "", err
		}
		for _, c := range channels {
			h.channelsCache.Set(c.Name, c.ID, ttlcache.DefaultTTL)
		}
		if cursor == "" {
			break
		}
		params.Cursor = cursor
	}

	if item := h.channelsCache.Get(name); item != nil {
		return item.Value(), nil
	}
	return "", ErrSlackNotFound
}
