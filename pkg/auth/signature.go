package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/juju/clock"
)

// Webhook signature headers
const (
	HeaderTimestamp = "X-Bridge-Timestamp"
	HeaderSignature = "X-Bridge-Signature"
)

// ReplayWindow maximum accepted clock skew between signer and verifier
const ReplayWindow = 5 * time.Minute

var (
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrTimestampExpired  = errors.New("timestamp expired")
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// Signer HMAC-SHA256 signing of outbound webhook requests with a shared secret
type Signer struct {
	secret []byte
	clock  clock.Clock
}

// NewSigner create a signer; clk defaults to the wall clock
func NewSigner(secret string, clk clock.Clock) *Signer {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Signer{secret: []byte(secret), clock: clk}
}

// GenerateSignature signs event name, unix timestamp and body
func (s *Signer) GenerateSignature(eventName string, timestamp int64, body []byte) string {
	stringToSign := fmt.Sprintf("%s\n%d\n%s", eventName, timestamp, string(body))

	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(stringToSign))

	return hex.EncodeToString(h.Sum(nil))
}

// Sign returns the timestamp and signature header values for a request
func (s *Signer) Sign(eventName string, body []byte) (timestamp, signature string) {
	ts := s.clock.Now().Unix()
	return strconv.FormatInt(ts, 10), s.GenerateSignature(eventName, ts, body)
}

// VerifySignature checks a received signature; consumers use it to authenticate webhooks
func (s *Signer) VerifySignature(signature, timestampStr, eventName string, body []byte) error {
	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	now := s.clock.Now().Unix()
	if abs(now-timestamp) > int64(ReplayWindow/time.Second) {
		return ErrTimestampExpired
	}

	expected := s.GenerateSignature(eventName, timestamp, body)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrSignatureMismatch
	}

	return nil
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
