package auth

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	clk := testclock.NewClock(time.Unix(1_700_000_000, 0))
	signer := NewSigner("s3cret", clk)
	body := []byte(`{"event":"product.written"}`)

	ts, sig := signer.Sign("product.written", body)
	assert.Equal(t, "1700000000", ts)
	assert.Len(t, sig, 64)

	require.NoError(t, signer.VerifySignature(sig, ts, "product.written", body))
}

func TestSigner_Verify(t *testing.T) {
	clk := testclock.NewClock(time.Unix(1_700_000_000, 0))
	signer := NewSigner("s3cret", clk)
	body := []byte(`{"a":1}`)
	ts, sig := signer.Sign("tax.deleted", body)

	t.Run("tampered body", func(t *testing.T) {
		err := signer.VerifySignature(sig, ts, "tax.deleted", []byte(`{"a":2}`))
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("different event", func(t *testing.T) {
		err := signer.VerifySignature(sig, ts, "tax.written", body)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewSigner("other", clk)
		err := other.VerifySignature(sig, ts, "tax.deleted", body)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		err := signer.VerifySignature(sig, "yesterday", "tax.deleted", body)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewSigner("s3cret", testclock.NewClock(time.Unix(1_700_000_000, 0).Add(6*time.Minute)))
		err := late.VerifySignature(sig, ts, "tax.deleted", body)
		assert.ErrorIs(t, err, ErrTimestampExpired)
	})
}
