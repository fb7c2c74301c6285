package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/glassesrelay/internal/config"
	"github.com/osa911/glassesrelay/internal/observability/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var telegramTracer = otel.Tracer("glassesrelay.internal.service.telegram")

// ParseModeMarkdown is the Bot API parse mode used for order notifications
const ParseModeMarkdown = "Markdown"

// TelegramService handles sending messages to Telegram
type TelegramService struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	metrics  *metrics.RelayMetrics
}

// NewTelegramService creates a new Telegram service
func NewTelegramService(cfg config.TelegramConfig, m *metrics.RelayMetrics) *TelegramService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramService{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		baseURL:  cfg.APIBaseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
	}
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// telegramResponse is the envelope every Bot API method answers with
type telegramResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// BotUser is the subset of the getMe result we report
type BotUser struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// SendMessage posts text to the configured chat.
// A response with ok=false becomes a *DownstreamError carrying Telegram's description.
func (s *TelegramService) SendMessage(ctx context.Context, text string) error {
	if s.botToken == "" || s.chatID == "" {
		return ErrNotConfigured
	}

	ctx, span := telegramTracer.Start(ctx, "telegram.sendMessage")
	defer span.End()
	span.SetAttributes(
		attribute.String("telegram.chat_id", s.chatID),
		attribute.Int("telegram.text_length", len(text)),
	)

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: ParseModeMarkdown,
	}

	start := time.Now()
	_, err := s.call(ctx, "sendMessage", payload)
	s.metrics.ObserveDownstream("sendMessage", outcomeOf(err), time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// GetMe verifies the bot credential and returns the bot account
func (s *TelegramService) GetMe(ctx context.Context) (*BotUser, error) {
	if s.botToken == "" {
		return nil, ErrNotConfigured
	}

	ctx, span := telegramTracer.Start(ctx, "telegram.getMe")
	defer span.End()

	start := time.Now()
	result, err := s.call(ctx, "getMe", nil)
	s.metrics.ObserveDownstream("getMe", outcomeOf(err), time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var user BotUser
	if err := json.Unmarshal(result, &user); err != nil {
		return nil, fmt.Errorf("failed to parse getMe result: %w", err)
	}
	return &user, nil
}

func (s *TelegramService) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal telegram %s request: %w", method, err)
		}
		body = bytes.NewReader(jsonData)
	}

	url := fmt.Sprintf("%s/bot%s/%s", s.baseURL, s.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the bot token
		return nil, fmt.Errorf("failed to reach telegram: %s", redactToken(err.Error(), s.botToken))
	}
	defer resp.Body.Close()

	// Telegram reports failures in the body, whatever the HTTP status
	var data telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse telegram response (status %d): %w", resp.StatusCode, err)
	}

	if !data.OK {
		return nil, &DownstreamError{
			StatusCode:  resp.StatusCode,
			ErrorCode:   data.ErrorCode,
			Description: data.Description,
		}
	}
	return data.Result, nil
}

func redactToken(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "<redacted>")
}

// outcomeOf maps a call result to a metrics label
func outcomeOf(err error) string {
	var downstream *DownstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &downstream):
		return "rejected"
	default:
		return "error"
	}
}
