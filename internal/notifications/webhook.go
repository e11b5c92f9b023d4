package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/metrics"
	"github.com/kjannette/sidebar-pricebot/internal/models"
)

const DefaultBotName = "SidebarPriceBot"

const sink = "webhook"

// Sender mirrors display updates to a Discord or Slack incoming webhook.
// It only posts when the rendered text changes and makes one attempt per
// update.
type Sender struct {
	webhookURL string
	botName    string
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Metrics

	mu   sync.Mutex
	last models.Display
	sent bool
}

func NewSender(webhookURL, botName string, timeout time.Duration, log zerolog.Logger, m *metrics.Metrics) *Sender {
	if botName == "" {
		botName = DefaultBotName
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		webhookURL: webhookURL,
		botName:    botName,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		metrics:    m,
	}
}

func (s *Sender) Enabled() bool {
	return s.webhookURL != ""
}

// Publish implements display.Publisher.
func (s *Sender) Publish(ctx context.Context, d models.Display) {
	if !s.Enabled() {
		return
	}

	s.mu.Lock()
	if s.sent && s.last.Same(d) {
		s.mu.Unlock()
		s.metrics.ObservePublish(sink, "unchanged")
		return
	}
	s.last, s.sent = d, true
	s.mu.Unlock()

	msg := fmt.Sprintf("[%s] %s | %s", s.botName, d.Identity, d.Status)
	body, err := json.Marshal(s.formatPayload(msg))
	if err != nil {
		s.log.Error().Err(err).Msg("marshal webhook payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		s.log.Error().Err(err).Msg("build webhook request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.ObservePublish(sink, metrics.ResultFetchError)
		s.log.Error().Err(err).Msg("webhook post failed")
		return
	}
	resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		s.metrics.ObservePublish(sink, metrics.ResultFetchError)
		s.log.Error().Int("status", resp.StatusCode).Msg("webhook rejected update")
		return
	}
	s.metrics.ObservePublish(sink, metrics.ResultOK)
}

func (s *Sender) formatPayload(msg string) map[string]string {
	if strings.Contains(s.webhookURL, "discord") {
		return map[string]string{
			"content":  msg,
			"username": s.botName,
		}
	}
	return map[string]string{
		"text":     fmt.Sprintf("`%s`", msg),
		"username": s.botName,
	}
}
