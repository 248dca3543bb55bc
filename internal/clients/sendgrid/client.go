package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

// Client sends customer email through the SendGrid v3 mail API. Without an
// API key it degrades to logging the rendered message, which is what local
// development wants.
type Client interface {
	SendFeedbackEmail(ctx context.Context, data types.FeedbackEmailData) (bool, error)
	SendWelcomeEmail(ctx context.Context, customerEmail string, dogName string) (bool, error)
}

type Config struct {
	APIKey  string
	From    string
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	baseURL := strings.TrimSpace(os.Getenv("SENDGRID_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com"
	}
	from := strings.TrimSpace(os.Getenv("EMAIL_FROM"))
	if from == "" {
		from = "subscriptions@pawcrate.dog"
	}
	return Config{
		APIKey:  strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		From:    from,
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func NewFromEnv(log *logger.Logger) Client {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &client{
		log:        log.With("client", "SendGridClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailPersonalization struct {
	To      []mailAddress `json:"to"`
	Subject string        `json:"subject"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSendRequest struct {
	Personalizations []mailPersonalization `json:"personalizations"`
	From             mailAddress           `json:"from"`
	Content          []mailContent         `json:"content"`
}

func (c *client) send(ctx context.Context, to string, subject string, html string) (bool, error) {
	if c.cfg.APIKey == "" {
		c.log.Info("Email send skipped, no SENDGRID_API_KEY (development mode)",
			"to", to, "subject", subject)
		return true, nil
	}

	body, err := json.Marshal(mailSendRequest{
		Personalizations: []mailPersonalization{{
			To:      []mailAddress{{Email: to}},
			Subject: subject,
		}},
		From:    mailAddress{Email: c.cfg.From},
		Content: []mailContent{{Type: "text/html", Value: html}},
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("sendgrid http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return true, nil
}

func (c *client) SendFeedbackEmail(ctx context.Context, data types.FeedbackEmailData) (bool, error) {
	subject := fmt.Sprintf("How did %s like their box?", data.DogName)
	html, err := renderFeedbackEmail(data)
	if err != nil {
		return false, fmt.Errorf("render feedback email: %w", err)
	}
	return c.send(ctx, data.CustomerEmail, subject, html)
}

func (c *client) SendWelcomeEmail(ctx context.Context, customerEmail string, dogName string) (bool, error) {
	subject := fmt.Sprintf("Welcome to the pack, %s!", dogName)
	html, err := renderWelcomeEmail(dogName)
	if err != nil {
		return false, fmt.Errorf("render welcome email: %w", err)
	}
	return c.send(ctx, customerEmail, subject, html)
}
