// Package notify turns Postgres NOTIFY messages into event bus events.
package notify

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/pkg/eventbus"
)

var (
	ErrInvalidConfig = errors.New("notify: invalid config")
	ErrBadPayload    = errors.New("notify: bad payload")
)

// Conn is the part of *pgx.Conn the listener needs.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
}

// Connector hands out a dedicated connection and a func returning it.
type Connector func(ctx context.Context) (Conn, func(), error)

// Decoder maps a notification payload to the event published on the bus.
type Decoder func(payload string) (any, error)

// PoolConnector acquires connections from pool. LISTEN state is bound to
// the session, so the connection is held until the listener releases it.
func PoolConnector(pool *pgxpool.Pool) Connector {
	return func(ctx context.Context) (Conn, func(), error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, nil, err
		}
		return conn.Conn(), conn.Release, nil
	}
}

type Options struct {
	Channel    string
	MaxBackoff time.Duration
	JitterMax  time.Duration
	Logger     *logrus.Entry
	Rand       *rand.Rand
	// Resync, when set, builds an event published after every successful
	// LISTEN. Notifications sent while disconnected are lost, so subscribers
	// use it to drop state derived from them.
	Resync func() any
}

func (o *Options) setDefaults() {
	if o.MaxBackoff == 0 {
		o.MaxBackoff = 30 * time.Second
	}
	if o.JitterMax == 0 {
		o.JitterMax = 200 * time.Millisecond
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		o.Logger = logrus.NewEntry(l)
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}
}

type Listener struct {
	connect   Connector
	decode    Decoder
	publisher eventbus.EventBusWithError
	opts      Options
	m         *metrics

	sleep func(ctx context.Context, d time.Duration) error
}

func NewListener(connect Connector, decode Decoder, publisher eventbus.EventBusWithError, opts Options) (*Listener, error) {
	if connect == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "connector is required")
	}
	if decode == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "decoder is required")
	}
	if publisher == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "publisher is required")
	}
	if strings.TrimSpace(opts.Channel) == "" {
		return nil, errors.Wrap(ErrInvalidConfig, "channel is required")
	}
	opts.setDefaults()
	return &Listener{
		connect:   connect,
		decode:    decode,
		publisher: publisher,
		opts:      opts,
		m:         getMetrics(),
		sleep:     sleepCtx,
	}, nil
}

// Run listens until ctx is cancelled and returns ctx.Err(). Connection
// failures are retried with exponential backoff plus jitter.
func (l *Listener) Run(ctx context.Context) error {
	log := l.opts.Logger.WithField("channel", l.opts.Channel)
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempts > 0 {
			l.m.reconnects.WithLabelValues(l.opts.Channel).Inc()
			wait := backoff(attempts, l.opts.MaxBackoff) + jitter(l.opts.Rand, l.opts.JitterMax)
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
		}

		err := l.session(ctx, func() { attempts = 0 })
		if ctx.Err() != nil {
			return ctx.Err()
		}
		attempts++
		log.WithError(err).WithField("attempt", attempts).Warn("notify: listener session ended")
	}
}

// session runs one LISTEN connection until it fails. onListening is called
// once the LISTEN statement succeeded.
func (l *Listener) session(ctx context.Context, onListening func()) error {
	conn, release, err := l.connect(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.opts.Channel}.Sanitize()); err != nil {
		return errors.Wrap(err, "listen")
	}
	l.m.connected.WithLabelValues(l.opts.Channel).Set(1)
	defer l.m.connected.WithLabelValues(l.opts.Channel).Set(0)
	onListening()
	l.opts.Logger.WithField("channel", l.opts.Channel).Info("notify: listening")
	if l.opts.Resync != nil {
		l.publish(l.opts.Resync(), "resync", l.opts.Logger.WithField("channel", l.opts.Channel))
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return errors.Wrap(err, "wait for notification")
		}
		if n.Channel != l.opts.Channel {
			continue
		}
		l.handle(n)
	}
}

func (l *Listener) handle(n *pgconn.Notification) {
	log := l.opts.Logger.WithFields(logrus.Fields{"channel": n.Channel, "pid": n.PID})
	event, err := l.decode(n.Payload)
	if err != nil {
		l.m.notifications.WithLabelValues(l.opts.Channel, "invalid").Inc()
		log.WithError(err).WithField("payload", n.Payload).Warn("notify: dropping notification")
		return
	}
	l.publish(event, "ok", log)
}

func (l *Listener) publish(event any, result string, log *logrus.Entry) {
	if err := l.publisher.PublishE(event); err != nil {
		l.m.notifications.WithLabelValues(l.opts.Channel, "error").Inc()
		log.WithError(err).Error("notify: publish failed")
		return
	}
	l.m.notifications.WithLabelValues(l.opts.Channel, result).Inc()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
