package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	sourcePg = "pg"

	defaultReconnectDelay = 5 * time.Second
)

type listenConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
}

// PgSource consumes host events delivered with NOTIFY on a postgres channel
type PgSource struct {
	acquire        func(ctx context.Context) (listenConn, func(), error)
	channel        string
	handler        Handler
	logger         *zap.Logger
	reconnectDelay time.Duration
}

func NewPgSource(pool *pgxpool.Pool, channel string, handler Handler, logger *zap.Logger) *PgSource {
	return &PgSource{
		acquire: func(ctx context.Context) (listenConn, func(), error) {
			conn, err := pool.Acquire(ctx)
			if err != nil {
				return nil, nil, err
			}
			return conn.Conn(), conn.Release, nil
		},
		channel:        channel,
		handler:        handler,
		logger:         logger,
		reconnectDelay: defaultReconnectDelay,
	}
}

// Run listens until ctx is done, re-establishing the listener after errors.
// An event being handled when ctx ends is still handled to completion.
func (s *PgSource) Run(ctx context.Context) {
	s.logger.Info("Listening for host events", zap.String("channel", s.channel))

	for {
		err := s.listen(ctx)
		if ctx.Err() != nil {
			s.logger.Info("Host event listener stopped", zap.String("channel", s.channel))
			return
		}
		s.logger.Warn("Host event listener failed, reconnecting",
			zap.String("channel", s.channel),
			zap.Duration("delay", s.reconnectDelay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *PgSource) listen(ctx context.Context) error {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer release()

	handlerCtx := context.WithoutCancel(ctx)
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", s.channel, err)
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		ev, err := Decode([]byte(n.Payload), "")
		if err != nil {
			count(sourcePg, resultInvalid)
			s.logger.Warn("Dropping undecodable host event",
				zap.String("channel", n.Channel),
				zap.Error(err))
			continue
		}
		count(sourcePg, resultAccepted)
		s.handler.Handle(handlerCtx, ev)
	}
}
