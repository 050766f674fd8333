package telegram

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

	"github.com/printlabth/printlab-backend/pkg/config"
	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
	"github.com/printlabth/printlab-backend/pkg/logger"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second

	parseModeHTML = "HTML"
)

var (
	errBotTokenRequired = errors.New("telegram bot token is required")
	errChatIDRequired   = errors.New("telegram chat id is required")
	errLoggerRequired   = errors.New("telegram logger is required")
)

// Client sends messages through the Telegram Bot API with centralized
// logging and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	chatID     string
	logger     *logger.Logger
}

// Option customizes the client, used by tests to point at a fake server.
type Option func(*Client)

// WithBaseURL overrides the Bot API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient initializes the Telegram wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.TelegramConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	botToken := strings.TrimSpace(cfg.BotToken)
	if botToken == "" {
		return nil, errBotTokenRequired
	}

	chatID := strings.TrimSpace(cfg.ChatID)
	if chatID == "" {
		return nil, errChatIDRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		botToken:   botToken,
		chatID:     chatID,
		logger:     logg,
	}
	for _, opt := range opts {
		opt(c)
	}

	logg.Info(ctx, "telegram client initialized")
	return c, nil
}

// ChatID reports the configured destination chat.
func (c *Client) ChatID() string {
	if c == nil {
		return ""
	}
	return c.chatID
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers a plain text message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	return c.send(ctx, sendMessageRequest{ChatID: c.chatID, Text: text})
}

// SendOrderNotification formats and delivers an order summary to the
// configured chat.
func (c *Client) SendOrderNotification(ctx context.Context, n OrderNotification) error {
	return c.send(ctx, sendMessageRequest{
		ChatID:    c.chatID,
		Text:      n.Format(time.Now()),
		ParseMode: parseModeHTML,
	})
}

func (c *Client) send(ctx context.Context, payload sendMessageRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode telegram request")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log(ctx, "request", "send_message", map[string]any{"chat_id": c.chatID})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", "send_message", map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "telegram send message failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		c.log(ctx, "error", "send_message", map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read telegram response")
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil || !api.OK {
		desc := api.Description
		if desc == "" {
			desc = strings.TrimSpace(string(raw))
		}
		sendErr := fmt.Errorf("telegram api status %d: %s", resp.StatusCode, desc)
		c.log(ctx, "error", "send_message", map[string]any{"error": sendErr.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, sendErr, "telegram send message failed")
	}

	c.log(ctx, "response", "send_message", map[string]any{"chat_id": c.chatID})
	return nil
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("telegram %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("telegram %s", phase))
	}
}
