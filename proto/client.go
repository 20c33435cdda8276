package proto

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// FeedClient follows the change feed and resumes after the last sequence it saw.
type FeedClient struct {
	conn       *grpc.ClientConn
	client     ChangeFeedClient
	consumerID string
	retryDelay time.Duration

	lastSequence uint64
}

// Dial connects to a change feed server without transport security
func Dial(ctx context.Context, addr, consumerID string, opts ...grpc.DialOption) (*FeedClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &FeedClient{
		conn:       conn,
		client:     NewChangeFeedClient(conn),
		consumerID: consumerID,
		retryDelay: time.Second,
	}, nil
}

func (c *FeedClient) Close() error {
	return c.conn.Close()
}

// LastSequence highest record sequence delivered to the callback
func (c *FeedClient) LastSequence() uint64 {
	return c.lastSequence
}

// HealthCheck queries the server state
func (c *FeedClient) HealthCheck(ctx context.Context) (*HealthCheckResponse, error) {
	return c.client.HealthCheck(ctx, &HealthCheckRequest{})
}

// Follow streams notifications after fromSequence into fn until ctx ends or fn
// returns an error. Broken streams are re-opened from the last delivered sequence;
// a reset notification rewinds that cursor to 0.
func (c *FeedClient) Follow(ctx context.Context, fromSequence uint64, entityTypes []string, fn func(*ChangeNotification) error) error {
	c.lastSequence = fromSequence

	for {
		err := c.follow(ctx, entityTypes, fn)
		if ctx.Err() != nil {
			return nil
		}
		var cbErr *callbackError
		if errors.As(err, &cbErr) {
			return cbErr.err
		}
		if status.Code(err) == codes.Unimplemented {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.retryDelay):
		}
	}
}

type callbackError struct{ err error }

func (e *callbackError) Error() string { return e.err.Error() }

func (c *FeedClient) follow(ctx context.Context, entityTypes []string, fn func(*ChangeNotification) error) error {
	stream, err := c.client.Subscribe(ctx, &SubscribeRequest{
		ConsumerId:   c.consumerID,
		FromSequence: c.lastSequence,
		EntityTypes:  entityTypes,
	})
	if err != nil {
		return err
	}

	for {
		n, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch n.Type {
		case TypeReset:
			c.lastSequence = 0
		case TypeChange:
			c.lastSequence = n.QueueId
		}
		if err := fn(n); err != nil {
			return &callbackError{err}
		}
	}
}
