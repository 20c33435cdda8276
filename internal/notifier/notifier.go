// Package notifier delivers best-effort, single-attempt webhooks to the change consumer.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/metrics"
	"github.com/georgeji/change-bridge/pkg/auth"
)

var (
	ErrNoEndpoint = errors.New("no webhook URL configured")
	ErrEncode     = errors.New("json encoding failed")
)

// Request headers
const (
	HeaderEvent      = "X-Shop-Event"
	HeaderDeliveryID = "X-Delivery-ID"
)

const (
	DefaultTimeout        = 5 * time.Second
	DefaultConnectTimeout = 2 * time.Second

	// maxResponseBody response bytes kept for diagnostics
	maxResponseBody = 1024
)

// DebugFlag reports whether payloads and response bodies may be logged
type DebugFlag interface {
	DebugLogging() bool
}

// Outcome result of a single delivery attempt
type Outcome struct {
	Success    bool
	HTTPStatus int
	Body       string
	Err        error
}

// Options notifier construction parameters
type Options struct {
	BaseURL         string
	Timeout         time.Duration
	ConnectTimeout  time.Duration
	Secret          string
	ShopURL         string
	SoftwareVersion string
	PluginVersion   string
}

// Notifier webhook sender. Safe for concurrent use.
type Notifier struct {
	baseURL         string
	timeout         time.Duration
	shopURL         string
	softwareVersion string
	pluginVersion   string

	client *http.Client
	signer *auth.Signer
	debug  DebugFlag
	clock  clock.Clock
	logger *zap.Logger

	// async dispatch, nil unless StartDispatcher was called
	mu      sync.RWMutex
	jobs    chan job
	stopped bool
	wg      sync.WaitGroup
}

// New creates a notifier. debug may be nil, which keeps payloads out of the
// logs; clk defaults to the wall clock.
func New(opts Options, debug DebugFlag, clk clock.Clock, logger *zap.Logger) *Notifier {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if clk == nil {
		clk = clock.WallClock
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: opts.ConnectTimeout,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
	}

	// no client-level timeout: each request carries its own deadline
	n := &Notifier{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		timeout:         opts.Timeout,
		shopURL:         SafeHost(opts.ShopURL, DefaultShopHost),
		softwareVersion: opts.SoftwareVersion,
		pluginVersion:   opts.PluginVersion,
		client:          &http.Client{Transport: transport},
		debug:           debug,
		clock:           clk,
		logger:          logger,
	}
	if opts.Secret != "" {
		n.signer = auth.NewSigner(opts.Secret, clk)
	}
	return n
}

// WebhookURL per-event endpoint, empty when no base URL is configured
func (n *Notifier) WebhookURL() string {
	if n.baseURL == "" {
		return ""
	}
	return n.baseURL + "/webhook"
}

type deliverOptions struct {
	url     string
	timeout time.Duration
}

// DeliverOption overrides a delivery parameter
type DeliverOption func(*deliverOptions)

// WithURL sends to url instead of the configured webhook endpoint
func WithURL(url string) DeliverOption {
	return func(o *deliverOptions) {
		if url != "" {
			o.url = url
		}
	}
}

// WithTimeout replaces the total request timeout
func WithTimeout(d time.Duration) DeliverOption {
	return func(o *deliverOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Deliver performs one POST of payload. It never retries and returns within the
// configured timeout; success means a 2xx status without transport error.
func (n *Notifier) Deliver(ctx context.Context, eventName string, payload map[string]any, opts ...DeliverOption) Outcome {
	o := deliverOptions{url: n.WebhookURL(), timeout: n.timeout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.url == "" {
		metrics.WebhookDeliveries.WithLabelValues(metrics.ResultNoEndpoint).Inc()
		return Outcome{Err: ErrNoEndpoint}
	}

	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	if _, ok := body["shop"]; !ok {
		body["shop"] = map[string]any{
			"shopUrl":         n.shopURL,
			"softwareVersion": n.softwareVersion,
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		metrics.WebhookDeliveries.WithLabelValues(metrics.ResultEncode).Inc()
		n.logger.Error("Failed to encode webhook data as JSON",
			zap.String("event", eventName),
			zap.Error(err))
		return Outcome{Err: fmt.Errorf("%w: %v", ErrEncode, err)}
	}

	debug := n.debugEnabled()
	prepareFields := []zap.Field{zap.String("event", eventName), zap.String("url", o.url)}
	if debug {
		prepareFields = append(prepareFields, zap.ByteString("payload", data))
	}
	n.logger.Info("Preparing webhook", prepareFields...)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(data))
	if err != nil {
		metrics.WebhookDeliveries.WithLabelValues(metrics.ResultFailure).Inc()
		n.logger.Warn("Webhook failed",
			zap.String("event", eventName),
			zap.Error(err))
		return Outcome{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, eventName)
	req.Header.Set(HeaderDeliveryID, uuid.NewString())
	if n.signer != nil {
		ts, sig := n.signer.Sign(eventName, data)
		req.Header.Set(auth.HeaderTimestamp, ts)
		req.Header.Set(auth.HeaderSignature, sig)
	}

	start := time.Now()
	outcome := n.do(req)
	metrics.WebhookDuration.Observe(time.Since(start).Seconds())

	resultFields := []zap.Field{
		zap.String("event", eventName),
		zap.Int("http_status", outcome.HTTPStatus),
		zap.Bool("success", outcome.Success),
	}
	if debug {
		resultFields = append(resultFields, zap.String("response", outcome.Body))
	}

	if outcome.Success {
		metrics.WebhookDeliveries.WithLabelValues(metrics.ResultSuccess).Inc()
		n.logger.Info("Webhook sent successfully", resultFields...)
	} else {
		metrics.WebhookDeliveries.WithLabelValues(metrics.ResultFailure).Inc()
		if outcome.Err != nil {
			resultFields = append(resultFields, zap.Error(outcome.Err))
		}
		n.logger.Warn("Webhook failed", resultFields...)
	}

	return outcome
}

func (n *Notifier) do(req *http.Request) Outcome {
	resp, err := n.client.Do(req)
	if err != nil {
		return Outcome{Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	// drain so the connection can be reused; bounded by the request deadline
	_, _ = io.Copy(io.Discard, resp.Body)

	outcome := Outcome{
		HTTPStatus: resp.StatusCode,
		Body:       string(raw),
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if readErr != nil {
		outcome.Success = false
		outcome.Err = readErr
	}
	if !outcome.Success && outcome.Err == nil {
		outcome.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return outcome
}

// FireAndForget delivers eventName and discards the outcome. With the async
// dispatcher running the call only enqueues and never blocks.
func (n *Notifier) FireAndForget(ctx context.Context, eventName string, payload map[string]any) {
	n.mu.RLock()
	jobs, stopped := n.jobs, n.stopped
	if jobs != nil && !stopped {
		select {
		case jobs <- job{ctx: context.WithoutCancel(ctx), eventName: eventName, payload: payload}:
		default:
			metrics.WebhookDropped.Inc()
			n.logger.Warn("Webhook queue full, dropping notification",
				zap.String("event", eventName))
		}
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	n.send(ctx, eventName, payload)
}

func (n *Notifier) send(ctx context.Context, eventName string, payload map[string]any) {
	outcome := n.Deliver(ctx, eventName, payload)
	if !outcome.Success {
		n.logger.Warn("Failed to send webhook",
			zap.String("event", eventName),
			zap.String("url", n.WebhookURL()),
			zap.NamedError("reason", outcome.Err))
	}
}

// NotifyLifecycleStatus posts a lifecycle status (installed, activated, ...) to
// the base URL. Failures are logged and returned, never raised.
func (n *Notifier) NotifyLifecycleStatus(ctx context.Context, status string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Lifecycle notification panicked",
				zap.String("status", status),
				zap.Any("panic", r))
			outcome = Outcome{Err: fmt.Errorf("lifecycle notification panicked: %v", r)}
		}
	}()

	if n.baseURL == "" {
		n.logger.Info("Cannot send status notification: base URL not configured",
			zap.String("status", status))
		return Outcome{Err: ErrNoEndpoint}
	}

	return n.Deliver(ctx, EventLifecycle, n.LifecyclePayload(status), WithURL(n.baseURL))
}

func (n *Notifier) debugEnabled() bool {
	return n.debug != nil && n.debug.DebugLogging()
}
