package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/config"
)

const (
	sourceNATS = "nats"

	drainPollInterval = 10 * time.Millisecond
)

// ConnectNATS opens a NATS connection that keeps reconnecting in the background
func ConnectNATS(cfg config.NATSConfig, logger *zap.Logger) (*nats.Conn, error) {
	logger.Info("Connecting to NATS", zap.String("url", cfg.URL), zap.String("name", cfg.Name))

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return nc, nil
}

// NATSSource consumes host events published under <prefix>.<event name>
type NATSSource struct {
	nc         *nats.Conn
	prefix     string
	queueGroup string
	handler    Handler
	logger     *zap.Logger

	sub      *nats.Subscription
	inflight sync.WaitGroup
}

func NewNATSSource(nc *nats.Conn, cfg config.NATSConfig, handler Handler, logger *zap.Logger) *NATSSource {
	return &NATSSource{
		nc:         nc,
		prefix:     strings.TrimSuffix(cfg.SubjectPrefix, "."),
		queueGroup: cfg.QueueGroup,
		handler:    handler,
		logger:     logger,
	}
}

// Subject the wildcard subject the source listens on
func (s *NATSSource) Subject() string {
	return s.prefix + ".>"
}

// Start subscribes in the queue group. Messages of one subscription are
// delivered one at a time, so host order is kept per bridge instance.
// Handlers run with ctx values but without its cancellation: messages still
// pending when ctx ends are handled during Stop.
func (s *NATSSource) Start(ctx context.Context) error {
	handlerCtx := context.WithoutCancel(ctx)
	sub, err := s.nc.QueueSubscribe(s.Subject(), s.queueGroup, func(msg *nats.Msg) {
		s.inflight.Add(1)
		defer s.inflight.Done()
		s.dispatch(handlerCtx, msg)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.Subject(), err)
	}
	s.sub = sub

	s.logger.Info("Subscribed to host events",
		zap.String("subject", s.Subject()),
		zap.String("queue_group", s.queueGroup))
	return nil
}

func (s *NATSSource) dispatch(ctx context.Context, msg *nats.Msg) {
	ev, err := Decode(msg.Data, strings.TrimPrefix(msg.Subject, s.prefix+"."))
	if err != nil {
		count(sourceNATS, resultInvalid)
		s.logger.Warn("Dropping undecodable host event",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return
	}
	count(sourceNATS, resultAccepted)
	s.handler.Handle(ctx, ev)
}

// Stop drains the subscription and waits until every message already received
// has been handled, or until ctx ends. Core NATS does not redeliver, so closing
// the connection before the drain completes loses those messages.
func (s *NATSSource) Stop(ctx context.Context) error {
	if s.sub == nil {
		return nil
	}
	if err := s.sub.Drain(); err != nil {
		return fmt.Errorf("drain %s: %w", s.Subject(), err)
	}

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()
	for s.sub.IsValid() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("drain %s: %w", s.Subject(), ctx.Err())
		case <-ticker.C:
		}
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("wait for handlers on %s: %w", s.Subject(), ctx.Err())
	}

	s.logger.Info("Host event subscription drained", zap.String("subject", s.Subject()))
	return nil
}
