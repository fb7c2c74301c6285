package service

import (
	"context"
	"fmt"

	"github.com/osa911/glassesrelay/internal/logging"
)

// MessageSender delivers a composed text to the operators' chat
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// Submission is one order request from the storefront
type Submission struct {
	Name    string
	Phone   string
	Message string
}

// Validate reports the first empty field
func (s Submission) Validate() error {
	switch {
	case s.Name == "":
		return &FieldError{Field: "name"}
	case s.Phone == "":
		return &FieldError{Field: "phone"}
	case s.Message == "":
		return &FieldError{Field: "message"}
	}
	return nil
}

// ComposeOrderText renders the notification text. Field values are embedded
// unchanged so operators see exactly what the customer typed.
func ComposeOrderText(s Submission) string {
	return fmt.Sprintf("📱 New Glasses Order:\nName: %s\nPhone: %s\nMessage: %s", s.Name, s.Phone, s.Message)
}

// RelayService forwards validated submissions to the messaging channel
type RelayService struct {
	sender MessageSender
}

// NewRelayService creates a new relay service
func NewRelayService(sender MessageSender) *RelayService {
	return &RelayService{sender: sender}
}

// Submit validates the submission and relays it with exactly one outbound call.
// Nothing is retried.
func (s *RelayService) Submit(ctx context.Context, sub Submission) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	if err := s.sender.SendMessage(ctx, ComposeOrderText(sub)); err != nil {
		logging.GetLogger().Error("Failed to relay order: %v", err)
		return err
	}

	logging.GetLogger().Debug("Order relayed to telegram")
	return nil
}
