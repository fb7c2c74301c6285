package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSender records texts and returns err
type mockSender struct {
	texts []string
	err   error
}

func (m *mockSender) SendMessage(_ context.Context, text string) error {
	m.texts = append(m.texts, text)
	return m.err
}

func TestComposeOrderText(t *testing.T) {
	got := ComposeOrderText(Submission{Name: "Ann", Phone: "555-1234", Message: "Need blue frames"})
	assert.Equal(t, "📱 New Glasses Order:\nName: Ann\nPhone: 555-1234\nMessage: Need blue frames", got)
}

func TestComposeOrderText_FieldsVerbatim(t *testing.T) {
	subs := []Submission{
		{Name: "*bold* _it_", Phone: "+1 (555) 010-9999", Message: "line1\nline2 [link](x)"},
		{Name: "Zoë", Phone: "0", Message: "  spaced  "},
		{Name: "<b>", Phone: "&amp;", Message: "`code`"},
	}

	for _, sub := range subs {
		text := ComposeOrderText(sub)
		assert.True(t, strings.Contains(text, "Name: "+sub.Name+"\n"), text)
		assert.True(t, strings.Contains(text, "Phone: "+sub.Phone+"\n"), text)
		assert.True(t, strings.HasSuffix(text, "Message: "+sub.Message), text)
		assert.Equal(t, text, ComposeOrderText(sub), "composition must be deterministic")
	}
}

func TestRelayService_Submit(t *testing.T) {
	sender := &mockSender{}
	relay := NewRelayService(sender)

	err := relay.Submit(context.Background(), Submission{Name: "Ann", Phone: "555-1234", Message: "Need blue frames"})
	require.NoError(t, err)
	require.Len(t, sender.texts, 1)
	assert.Contains(t, sender.texts[0], "Need blue frames")
}

func TestRelayService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		sub   Submission
		field string
	}{
		{"missing name", Submission{Phone: "1", Message: "m"}, "name"},
		{"missing phone", Submission{Name: "n", Message: "m"}, "phone"},
		{"missing message", Submission{Name: "n", Phone: "1"}, "message"},
		{"all missing", Submission{}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{}
			err := NewRelayService(sender).Submit(context.Background(), tt.sub)

			assert.ErrorIs(t, err, ErrValidation)
			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Empty(t, sender.texts, "no outbound call on invalid input")
		})
	}
}

func TestRelayService_SubmitPropagatesDownstream(t *testing.T) {
	sender := &mockSender{err: &DownstreamError{Description: "X"}}

	err := NewRelayService(sender).Submit(context.Background(), Submission{Name: "n", Phone: "1", Message: "m"})

	var downstream *DownstreamError
	require.True(t, errors.As(err, &downstream))
	assert.Equal(t, "X", err.Error())
	assert.Len(t, sender.texts, 1, "nothing is retried")
}
