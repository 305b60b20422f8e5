package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Gateway delivers one notification message.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// TelegramGateway posts messages to the Telegram Bot API. The token is
// injected configuration, never read from process-wide state.
type TelegramGateway struct {
	token   string
	apiBase string
	client  *http.Client
}

func NewTelegramGateway(token, apiBase string, timeout time.Duration) *TelegramGateway {
	if apiBase == "" {
		apiBase = "https://api.telegram.org"
	}
	return &TelegramGateway{
		token:   token,
		apiBase: apiBase,
		client:  &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func (g *TelegramGateway) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    msg.ChatID,
		Text:      msg.Text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", g.apiBase, g.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}

// Dispatcher sends a batch of messages best-effort: failures are logged and
// never returned, so notification delivery can never fail a committed
// operation.
type Dispatcher struct {
	gateway Gateway
	logger  *log.Logger
}

func NewDispatcher(gateway Gateway, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{gateway: gateway, logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msgs []Message) {
	if d.gateway == nil {
		return
	}
	for _, msg := range msgs {
		if err := d.gateway.Send(ctx, msg); err != nil {
			d.logger.Printf("notify: %s order_id=%d chat_id=%s failed: %v", msg.Kind, msg.OrderID, msg.ChatID, err)
		}
	}
}
