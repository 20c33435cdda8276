// Package ingest receives host entity events and hands them to change capture.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgeji/change-bridge/internal/capture"
	"github.com/georgeji/change-bridge/internal/metrics"
)

// Ingestion results
const (
	resultAccepted = "accepted"
	resultInvalid  = "invalid"
)

var errNoEventName = errors.New("event name missing")

// Handler consumes decoded host events
type Handler interface {
	Handle(ctx context.Context, ev capture.Event)
}

// Decode parses one wire message. fallbackName is used when the body carries no event name.
func Decode(data []byte, fallbackName string) (capture.Event, error) {
	var ev capture.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return capture.Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.Name == "" {
		ev.Name = fallbackName
	}
	if ev.Name == "" {
		return capture.Event{}, errNoEventName
	}
	return ev, nil
}

func count(source, result string) {
	metrics.IngestMessages.WithLabelValues(source, result).Inc()
}
