package hermes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectIntelExtracted carries scammer artifacts harvested during an
// engagement, for downstream correlation agents.
const SubjectIntelExtracted = "swarm.loki.intel.extracted"

// SubjectRegistered announces the agent on the swarm bus at startup.
const SubjectRegistered = "swarm.agent.loki.registered"

// IntelEvent is the payload published on SubjectIntelExtracted whenever a
// turn yields at least one artifact.
type IntelEvent struct {
	SessionID    string   `json:"session_id"`
	Turn         int      `json:"turn"`
	ScamType     string   `json:"scam_type"`
	Confidence   float64  `json:"confidence"`
	UPIIDs       []string `json:"upi_ids"`
	BankAccounts []string `json:"bank_accounts"`
	PhoneNumbers []string `json:"phone_numbers"`
	URLs         []string `json:"urls"`
	Timestamp    string   `json:"timestamp"`
}

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Close() {
	c.conn.Close()
}
