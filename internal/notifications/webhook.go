package notifications

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/simplifymoney/kuberai-backend/internal/httputil"
)

// Sender posts operator notifications to a Slack or Discord webhook.
// Delivery is best-effort: a single attempt, failures are only logged.
type Sender struct {
	webhookURL string
	botName    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewSender(webhookURL, botName string, log zerolog.Logger) *Sender {
	if botName == "" {
		botName = "KuberAI"
	}
	return &Sender{
		webhookURL: webhookURL,
		botName:    botName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

func (s *Sender) Send(msg string) {
	formatted := fmt.Sprintf("[%s] %s", s.botName, msg)
	s.log.Info().Msg(formatted)

	if s.webhookURL == "" {
		return
	}

	payload := s.formatPayload(formatted)
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Msg("webhook payload marshal failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		s.log.Error().Err(err).Msg("webhook request build failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.Do(s.httpClient, req)
	if err != nil {
		s.log.Warn().Err(err).Msg("webhook notification failed")
		return
	}
	resp.Body.Close()
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

func (s *Sender) Enabled() bool {
	return s.webhookURL != ""
}
