package changes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Channel is the NOTIFY channel the migration triggers write to. Payloads
// have the form "<table>:<user id>".
const Channel = "wellness_changes"

type notifyConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// connect is a seam for tests.
var connect = func(ctx context.Context, dsn string) (notifyConn, error) {
	return pgx.Connect(ctx, dsn)
}

// PostgresListener republishes NOTIFY payloads into a Publisher so that
// writes made by other server instances reach local subscribers.
type PostgresListener struct {
	dsn        string
	publisher  Publisher
	logger     logging.Logger
	retryDelay time.Duration
}

func NewPostgresListener(dsn string, publisher Publisher, logger logging.Logger) *PostgresListener {
	return &PostgresListener{
		dsn:        dsn,
		publisher:  publisher,
		logger:     logger.With("module", "changes.listener"),
		retryDelay: 2 * time.Second,
	}
}

// Run listens until ctx is done, reconnecting after connection failures.
// It returns nil on cancellation.
func (l *PostgresListener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.logger.Warn(ctx, "notification listener interrupted", "error", err, "retry_in", l.retryDelay.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *PostgresListener) listen(ctx context.Context) error {
	conn, err := connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l.logger.Info(ctx, "listening for changes", "channel", Channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		ev, err := ParsePayload(n.Payload)
		if err != nil {
			l.logger.Warn(ctx, "ignoring notification", "payload", n.Payload, "error", err)
			continue
		}
		l.publisher.Publish(ev)
	}
}

var errBadPayload = errors.New("malformed change payload")

// ParsePayload decodes "<table>:<user id>".
func ParsePayload(payload string) (Event, error) {
	table, userID, ok := strings.Cut(payload, ":")
	if !ok || table == "" || userID == "" {
		return Event{}, fmt.Errorf("%w: %q", errBadPayload, payload)
	}
	return Event{UserID: userID, Table: Table(table)}, nil
}
