// Package grpc_server serves the change feed: a gRPC stream of ledger records
// that can resume from a consumer's cursor.
package grpc_server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/metrics"
	"github.com/georgeji/change-bridge/internal/models"
	"github.com/georgeji/change-bridge/internal/queue"
	ledgersync "github.com/georgeji/change-bridge/internal/sync"
	pb "github.com/georgeji/change-bridge/proto"
)

const (
	defaultSubscriberBuffer = 64
	broadcastBuffer         = 1024
)

// LedgerReader ledger access used for replay and health
type LedgerReader interface {
	ReadFrom(ctx context.Context, minSequence uint64, pageSize int) []models.ChangeRecord
	MaxSequence(ctx context.Context) uint64
}

// FeedServer change feed gRPC service
type FeedServer struct {
	pb.UnimplementedChangeFeedServer
	logger      *zap.Logger
	ledger      LedgerReader
	version     string
	bufferSize  int
	subscribers sync.Map // map[string]*Subscriber
	broadcast   chan *pb.ChangeNotification
	done        chan struct{}
	closeOnce   sync.Once
}

// Subscriber one connected consumer
type Subscriber struct {
	ID          string
	ConsumerID  string
	EntityTypes map[string]struct{}
	Updates     chan *pb.ChangeNotification
	Done        chan struct{}
}

func (s *Subscriber) wants(n *pb.ChangeNotification) bool {
	if n.Type != pb.TypeChange || len(s.EntityTypes) == 0 {
		return true
	}
	_, ok := s.EntityTypes[n.EntityType]
	return ok
}

func NewFeedServer(ledger LedgerReader, version string, bufferSize int, logger *zap.Logger) *FeedServer {
	if bufferSize <= 0 {
		bufferSize = defaultSubscriberBuffer
	}
	s := &FeedServer{
		logger:     logger,
		ledger:     ledger,
		version:    version,
		bufferSize: bufferSize,
		broadcast:  make(chan *pb.ChangeNotification, broadcastBuffer),
		done:       make(chan struct{}),
	}

	go s.broadcastLoop()
	return s
}

// Close stops the broadcast loop
func (s *FeedServer) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// HandleChange publishes a tailer change to every subscriber
func (s *FeedServer) HandleChange(change *ledgersync.Change) {
	switch change.Type {
	case ledgersync.LedgerReset:
		s.BroadcastChange(&pb.ChangeNotification{Type: pb.TypeReset})
	case ledgersync.ChangeRecorded:
		if change.Record != nil {
			s.BroadcastChange(toNotification(change.Record))
		}
	}
}

func toNotification(rec *models.ChangeRecord) *pb.ChangeNotification {
	return &pb.ChangeNotification{
		Type:       pb.TypeChange,
		QueueId:    rec.Sequence,
		EntityType: rec.EntityType,
		EntityId:   rec.EntityID,
		Operation:  string(rec.Operation),
		Context:    rec.Context,
		UserName:   rec.Actor(),
		CreatedAt:  rec.CreatedAt.UTC().Format(models.CreatedAtLayout),
	}
}

// Subscribe replays the ledger after req.FromSequence (when non-zero) and then
// streams live changes. Records at or below the last one sent are skipped, so a
// change seen both in replay and live is delivered once.
func (s *FeedServer) Subscribe(req *pb.SubscribeRequest, stream pb.ChangeFeed_SubscribeServer) error {
	sub := &Subscriber{
		ID:          uuid.NewString(),
		ConsumerID:  req.ConsumerId,
		EntityTypes: make(map[string]struct{}, len(req.EntityTypes)),
		Updates:     make(chan *pb.ChangeNotification, s.bufferSize),
		Done:        make(chan struct{}),
	}
	for _, t := range req.EntityTypes {
		sub.EntityTypes[t] = struct{}{}
	}

	s.logger.Info("New feed subscriber",
		zap.String("consumer_id", req.ConsumerId),
		zap.Uint64("from_sequence", req.FromSequence),
		zap.Strings("entity_types", req.EntityTypes))

	s.subscribers.Store(sub.ID, sub)
	metrics.FeedSubscribers.Inc()
	defer func() {
		s.subscribers.Delete(sub.ID)
		close(sub.Done)
		metrics.FeedSubscribers.Dec()
		s.logger.Info("Feed subscriber disconnected", zap.String("consumer_id", req.ConsumerId))
	}()

	lastSent := req.FromSequence
	if req.FromSequence > 0 {
		var err error
		if lastSent, err = s.replay(stream, sub, req.FromSequence); err != nil {
			return err
		}
	}

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case <-s.done:
			return nil
		case change := <-sub.Updates:
			if change.Type == pb.TypeChange && change.QueueId <= lastSent {
				continue
			}
			if !sub.wants(change) {
				continue
			}
			if err := stream.Send(change); err != nil {
				s.logger.Error("Send change failed",
					zap.String("consumer_id", sub.ConsumerID),
					zap.Error(err))
				return err
			}
			if change.Type == pb.TypeReset {
				lastSent = 0
			} else {
				lastSent = change.QueueId
			}
		}
	}
}

func (s *FeedServer) replay(stream pb.ChangeFeed_SubscribeServer, sub *Subscriber, from uint64) (uint64, error) {
	cursor := from
	for {
		records := s.ledger.ReadFrom(stream.Context(), cursor, queue.MaxPageSize)
		for i := range records {
			n := toNotification(&records[i])
			cursor = n.QueueId
			if !sub.wants(n) {
				continue
			}
			if err := stream.Send(n); err != nil {
				return cursor, err
			}
		}
		if len(records) < queue.MaxPageSize {
			s.logger.Debug("Feed replay complete",
				zap.String("consumer_id", sub.ConsumerID),
				zap.Uint64("cursor", cursor))
			return cursor, nil
		}
	}
}

// HealthCheck reports liveness and the ledger head
func (s *FeedServer) HealthCheck(ctx context.Context, req *pb.HealthCheckRequest) (*pb.HealthCheckResponse, error) {
	return &pb.HealthCheckResponse{
		Healthy:     true,
		Version:     s.version,
		MaxSequence: s.ledger.MaxSequence(ctx),
		Subscribers: int32(s.GetSubscriberCount()),
		Timestamp:   time.Now().Unix(),
	}, nil
}

// BroadcastChange queues a notification for every subscriber; drops it when the queue is full
func (s *FeedServer) BroadcastChange(change *pb.ChangeNotification) {
	select {
	case s.broadcast <- change:
	default:
		metrics.FeedDropped.Inc()
		s.logger.Warn("Broadcast channel full, dropping change", zap.Uint64("queue_id", change.QueueId))
	}
}

func (s *FeedServer) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case change := <-s.broadcast:
			s.subscribers.Range(func(key, value any) bool {
				sub := value.(*Subscriber)
				select {
				case sub.Updates <- change:
				case <-sub.Done:
				default:
					metrics.FeedDropped.Inc()
					s.logger.Warn("Subscriber queue full",
						zap.String("consumer_id", sub.ConsumerID),
						zap.Uint64("queue_id", change.QueueId))
				}
				return true
			})
		}
	}
}

// GetSubscriberCount number of connected subscribers
func (s *FeedServer) GetSubscriberCount() int {
	count := 0
	s.subscribers.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}
