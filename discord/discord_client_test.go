package discord_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hanksha/fitclass-booking/discord"
	dc_mocks "github.com/hanksha/fitclass-booking/discord/mocks"
	"github.com/hanksha/fitclass-booking/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestSendMessage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got discord.Message

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/channels/chan-1/messages", r.URL.Path)
			assert.Equal(t, "Bot secret", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := discord.NewClientWithBaseURL("secret", srv.URL)

		err := client.SendMessage(context.Background(), "chan-1", discord.Message{Content: "hello"})

		require.NoError(t, err)
		require.Equal(t, "hello", got.Content)
	})

	t.Run("empty channel", func(t *testing.T) {
		client := discord.NewClientWithBaseURL("secret", "http://unused")

		err := client.SendMessage(context.Background(), " ", discord.Message{})

		require.ErrorIs(t, err, discord.ErrNoChannel)
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Missing Access"}`))
		}))
		defer srv.Close()

		client := discord.NewClientWithBaseURL("secret", srv.URL)

		err := client.SendMessage(context.Background(), "chan-1", discord.Message{})

		var apiErr *discord.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, "channels/chan-1/messages", apiErr.Path)
		require.Equal(t, `{"message":"Missing Access"}`, apiErr.Body)
		require.False(t, apiErr.RateLimited())
	})

	t.Run("rate limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		err := discord.NewClientWithBaseURL("secret", srv.URL).SendMessage(context.Background(), "chan-1", discord.Message{})

		var apiErr *discord.APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.RateLimited())
	})
}

func TestChannelNotifier(t *testing.T) {
	t.Run("posts embed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := dc_mocks.NewMockDiscordClient(ctrl)
		n := discord.NewChannelNotifier(client, "chan-1", zap.NewNop())

		client.EXPECT().SendMessage(gomock.Any(), "chan-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, msg discord.Message) error {
				require.Len(t, msg.Embeds, 1)
				require.Equal(t, "Class booked successfully!", msg.Embeds[0].Description)
				require.Equal(t, "Booking", msg.Embeds[0].Title)
				return nil
			}).Times(1)

		n.Notify(context.Background(), notify.Notice{Level: notify.LevelSuccess, Title: "Booking", Message: "Class booked successfully!"})
	})

	t.Run("swallows errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := dc_mocks.NewMockDiscordClient(ctrl)
		n := discord.NewChannelNotifier(client, "chan-1", zap.NewNop())

		client.EXPECT().SendMessage(gomock.Any(), "chan-1", gomock.Any()).Return(errors.New("boom")).Times(1)

		n.Notify(context.Background(), notify.Notice{Level: notify.LevelError, Message: "x"})
	})
}
