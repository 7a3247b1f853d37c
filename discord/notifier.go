package discord

import (
	"context"
	"errors"

	"github.com/hanksha/fitclass-booking/notify"
	"go.uber.org/zap"
)

const (
	colorInfo    = 0x3498db
	colorSuccess = 0x2ecc71
	colorError   = 0xe74c3c
)

// ChannelNotifier posts notices as embeds to a single channel.
// Delivery failures are logged and otherwise ignored.
type ChannelNotifier struct {
	client    DiscordClient
	channelID string
	log       *zap.Logger
}

func NewChannelNotifier(client DiscordClient, channelID string, log *zap.Logger) *ChannelNotifier {
	return &ChannelNotifier{client: client, channelID: channelID, log: log}
}

func (n *ChannelNotifier) Notify(ctx context.Context, notice notify.Notice) {
	title := notice.Title
	if len(title) == 0 {
		title = "Fitness Classes"
	}

	embed := Embed{
		Type:        "rich",
		Title:       title,
		Description: notice.Message,
		Color:       levelColor(notice.Level),
	}

	err := n.client.SendMessage(ctx, n.channelID, Message{Embeds: []Embed{embed}})

	var apiErr *APIError

	switch {
	case err == nil:
	case errors.As(err, &apiErr) && apiErr.RateLimited():
		n.log.Debug("discord rate limited, notice dropped", zap.String("channel", n.channelID))
	default:
		n.log.Warn("failed to post notice to discord", zap.String("channel", n.channelID), zap.Error(err))
	}
}

func levelColor(level notify.Level) int {
	switch level {
	case notify.LevelSuccess:
		return colorSuccess
	case notify.LevelError:
		return colorError
	default:
		return colorInfo
	}
}
