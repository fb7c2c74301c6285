package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/api/dto/v1/order"
	"github.com/osa911/glassesrelay/internal/config"
	"github.com/osa911/glassesrelay/internal/service"
	"github.com/osa911/glassesrelay/internal/version"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a test order through a running relay",
	Long: `Send a test order through a running relay, exactly as the storefront does.

Example:
  relayctl submit --name Ann --phone 555-1234 --message "Need blue frames"
  relayctl submit --url https://shop.example/api/send-to-telegram --name Ann --phone 1 --message hi`,
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		req := order.OrderRequest{}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Phone, _ = cmd.Flags().GetString("phone")
		req.Message, _ = cmd.Flags().GetString("message")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Submitting order..."
		s.Start()
		status, err := submitOrder(ctx, &http.Client{Timeout: timeout}, url, req)
		s.Stop()

		if err != nil {
			logger.Error("Submission failed (status %d): %v", status, err)
			os.Exit(1)
		}
		logger.Info("✓ Order accepted by relay (status %d)", status)
	},
}

var checkBotCmd = &cobra.Command{
	Use:   "check-bot",
	Short: "Verify the Telegram bot token from the environment",
	Long: `Load TELEGRAM_* settings the same way the relay does and call getMe.
A chat ID is not required for this check.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("Error loading config: %v", err)
			os.Exit(1)
		}

		tg := service.NewTelegramService(cfg.Telegram, nil)

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Contacting Telegram..."
		s.Start()
		bot, err := tg.GetMe(cmd.Context())
		s.Stop()

		if err != nil {
			logger.Error("Bot check failed: %v", err)
			os.Exit(1)
		}
		logger.Info("✓ Bot @%s (id %d) is reachable", bot.Username, bot.ID)
		if cfg.Telegram.ChatID == "" {
			logger.Warn("TELEGRAM_CHAT_ID is not set; the relay cannot deliver orders")
		}
	},
}

// submitOrder posts req to the relay and returns the HTTP status.
// A non-200 answer is reported as an error carrying the relay's message.
func submitOrder(ctx context.Context, client *http.Client, url string, req order.OrderRequest) (int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("failed to encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())

	resp, err := client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	logger.Debug("Relay answered %d: %s", resp.StatusCode, raw)

	if resp.StatusCode == http.StatusOK {
		var ok order.OrderResponse
		if err := json.Unmarshal(raw, &ok); err != nil || !ok.Success {
			return resp.StatusCode, errors.New("unexpected success body")
		}
		return resp.StatusCode, nil
	}

	var apiErr common.ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Error == "" {
		return resp.StatusCode, fmt.Errorf("unexpected response: %s", http.StatusText(resp.StatusCode))
	}
	return resp.StatusCode, errors.New(apiErr.Error)
}
