package incident_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/incident"
)

func signBody(secret []byte, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := []byte("8f742231b10e8888abcd99yyyzzz85a5")
	body := []byte("payload=%7B%22type%22%3A%22block_actions%22%7D")
	now := time.Unix(1700000000, 0)
	ts := strconv.FormatInt(now.Unix(), 10)

	t.Run("valid signature", func(t *testing.T) {
		err := incident.VerifySignature(body, ts, signBody(secret, ts, body), secret, now)
		assert.NoError(t, err)
	})

	t.Run("single bit flipped", func(t *testing.T) {
		sig := []byte(signBody(secret, ts, body))
		sig[len(sig)-1] ^= 0x01
		err := incident.VerifySignature(body, ts, string(sig), secret, now)
		assert.ErrorIs(t, err, entity.ErrInvalidSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		err := incident.VerifySignature(body, ts, signBody([]byte("other"), ts, body), secret, now)
		assert.ErrorIs(t, err, entity.ErrInvalidSignature)
	})

	t.Run("replay window boundary is inclusive", func(t *testing.T) {
		old := strconv.FormatInt(now.Unix()-300, 10)
		err := incident.VerifySignature(body, old, signBody(secret, old, body), secret, now)
		assert.NoError(t, err)

		future := strconv.FormatInt(now.Unix()+300, 10)
		err = incident.VerifySignature(body, future, signBody(secret, future, body), secret, now)
		assert.NoError(t, err)
	})

	t.Run("301 seconds is stale", func(t *testing.T) {
		old := strconv.FormatInt(now.Unix()-301, 10)
		err := incident.VerifySignature(body, old, signBody(secret, old, body), secret, now)
		assert.ErrorIs(t, err, entity.ErrStaleRequest)

		future := strconv.FormatInt(now.Unix()+301, 10)
		err = incident.VerifySignature(body, future, signBody(secret, future, body), secret, now)
		assert.ErrorIs(t, err, entity.ErrStaleRequest)
	})

	t.Run("empty secret fails before anything else", func(t *testing.T) {
		// Even a stale timestamp and garbage signature must yield the
		// configuration error, not a signature verdict.
		err := incident.VerifySignature(body, "not-a-number", "v0=zzz", nil, now)
		require.ErrorIs(t, err, entity.ErrMisconfiguredSecret)
	})

	t.Run("unparseable timestamp", func(t *testing.T) {
		err := incident.VerifySignature(body, "yesterday", signBody(secret, "yesterday", body), secret, now)
		assert.ErrorIs(t, err, entity.ErrInvalidSignature)
	})
}
