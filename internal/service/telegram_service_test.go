package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osa911/glassesrelay/internal/config"
	"github.com/osa911/glassesrelay/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:TEST-token"

// fakeTelegram records sendMessage calls and answers with a fixed body
type fakeTelegram struct {
	status   int
	response string
	calls    []telegramMessage
	paths    []string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.paths = append(f.paths, r.URL.Path)
	if r.ContentLength > 0 {
		var msg telegramMessage
		_ = json.NewDecoder(r.Body).Decode(&msg)
		f.calls = append(f.calls, msg)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.response))
}

func newTestTelegram(t *testing.T, fake *fakeTelegram) *TelegramService {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return NewTelegramService(config.TelegramConfig{
		BotToken:   testToken,
		ChatID:     "-100200",
		APIBaseURL: srv.URL,
		Timeout:    2 * time.Second,
	}, metrics.NewRelayMetrics(prometheus.NewRegistry()))
}

func TestSendMessage_OK(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusOK, response: `{"ok":true,"result":{"message_id":7}}`}
	svc := newTestTelegram(t, fake)

	err := svc.SendMessage(context.Background(), "hello *world*")
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "/bot"+testToken+"/sendMessage", fake.paths[0])
	assert.Equal(t, telegramMessage{ChatID: "-100200", Text: "hello *world*", ParseMode: "Markdown"}, fake.calls[0])
}

func TestSendMessage_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		wantMsg  string
	}{
		{
			name:     "description surfaced",
			status:   http.StatusBadRequest,
			response: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
			wantMsg:  "Bad Request: chat not found",
		},
		{
			name:     "fallback without description",
			status:   http.StatusOK,
			response: `{"ok":false}`,
			wantMsg:  "Telegram API error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestTelegram(t, &fakeTelegram{status: tt.status, response: tt.response})

			err := svc.SendMessage(context.Background(), "text")

			var downstream *DownstreamError
			require.True(t, errors.As(err, &downstream), "expected DownstreamError, got %v", err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.status, downstream.StatusCode)
		})
	}
}

func TestSendMessage_InvalidResponse(t *testing.T) {
	svc := newTestTelegram(t, &fakeTelegram{status: http.StatusBadGateway, response: `<html>bad gateway</html>`})

	err := svc.SendMessage(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse telegram response")
}

func TestSendMessage_NetworkErrorRedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	svc := NewTelegramService(config.TelegramConfig{
		BotToken:   testToken,
		ChatID:     "1",
		APIBaseURL: baseURL,
		Timeout:    time.Second,
	}, nil)

	err := svc.SendMessage(context.Background(), "text")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testToken)
	assert.Contains(t, err.Error(), "<redacted>")
}

func TestSendMessage_NotConfigured(t *testing.T) {
	fake := &fakeTelegram{status: http.StatusOK, response: `{"ok":true}`}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	svc := NewTelegramService(config.TelegramConfig{APIBaseURL: srv.URL, ChatID: "1"}, nil)

	err := svc.SendMessage(context.Background(), "text")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, fake.paths, "no outbound call without credentials")
}

func TestGetMe(t *testing.T) {
	fake := &fakeTelegram{
		status:   http.StatusOK,
		response: `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Orders","username":"glasses_orders_bot"}}`,
	}
	svc := newTestTelegram(t, fake)

	user, err := svc.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "glasses_orders_bot", user.Username)
	assert.True(t, user.IsBot)
	assert.Equal(t, "/bot"+testToken+"/getMe", fake.paths[0])
}

func TestGetMe_Unauthorized(t *testing.T) {
	svc := newTestTelegram(t, &fakeTelegram{
		status:   http.StatusUnauthorized,
		response: `{"ok":false,"error_code":401,"description":"Unauthorized"}`,
	})

	_, err := svc.GetMe(context.Background())
	assert.EqualError(t, err, "Unauthorized")
}
