package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/naka-gawa/pr-notify/internal/apperrors"
)

// WebhookSender posts messages to Slack-compatible incoming webhooks.
type WebhookSender struct {
	httpClient *http.Client
	logger     *log.Logger
}

// NewWebhookSender creates a sender with a bounded request timeout.
func NewWebhookSender(logger *log.Logger) *WebhookSender {
	return &WebhookSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Send posts text as a {"text": ...} JSON payload. A transport failure or
// non-2xx response wraps apperrors.ErrDelivery; the caller decides whether
// that is fatal.
func (s *WebhookSender) Send(ctx context.Context, webhookURL, text string) error {
	s.logger.Println("Posting notification to webhook...")
	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookCustomHTTPContext(ctx, webhookURL, s.httpClient, msg); err != nil && !accepted(err) {
		return fmt.Errorf("%w: post webhook: %w", apperrors.ErrDelivery, err)
	}
	s.logger.Println("Notification delivered.")
	return nil
}

// accepted reports whether err is only slack-go objecting to a non-200 status
// that is still a 2xx. Slack-compatible endpoints answer 202 or 204; any 2xx
// means the payload was delivered.
func accepted(err error) bool {
	var statusErr slack.StatusCodeError
	return errors.As(err, &statusErr) && statusErr.Code >= 200 && statusErr.Code <= 299
}
