package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "recruitment"

// Publisher is the subset of *nats.Conn the notifier needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Notifier publishes recruitment events as JSON to
// "<prefix>.<event type>", e.g. "recruitment.application.approved".
type Notifier struct {
	pub    Publisher
	prefix string
	logger *slog.Logger
}

var _ port.Notifier = (*Notifier)(nil)

// NewNotifier returns a notifier publishing through pub.
func NewNotifier(pub Publisher, prefix string, logger *slog.Logger) *Notifier {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{pub: pub, prefix: prefix, logger: logger}
}

// Subject returns the subject an event of type t is published on.
func (n *Notifier) Subject(t domain.EventType) string {
	return n.prefix + "." + string(t)
}

// Notify publishes e. NATS Publish does not take a context, so a cancelled
// context is checked before publishing.
func (n *Notifier) Notify(ctx context.Context, e domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	subject := n.Subject(e.Type)
	if err = n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	n.logger.Debug("event published", slog.String("subject", subject))
	return nil
}

// Connect dials the NATS server at url with reconnects enabled.
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("club-recruitment"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// LogNotifier records events in the log instead of publishing them. It is
// used when no NATS server is configured.
type LogNotifier struct {
	logger *slog.Logger
}

var _ port.Notifier = (*LogNotifier)(nil)

// NewLogNotifier returns a notifier writing to logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs e at Info level.
func (n *LogNotifier) Notify(_ context.Context, e domain.Event) error {
	n.logger.Info("recruitment event",
		slog.String("event_type", string(e.Type)),
		slog.String("club_id", e.ClubID),
		slog.String("campaign_id", e.CampaignID),
		slog.String("application_id", e.ApplicationID),
		slog.String("actor_id", e.ActorID))
	return nil
}
