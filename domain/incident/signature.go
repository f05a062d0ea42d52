package incident

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/airahq/aira/domain/entity"
)

// ReplayWindow is how far a request timestamp may drift from now before
// the request is rejected as a replay. The boundary is inclusive.
const ReplayWindow = 300 * time.Second

// VerifySignature checks a Slack-style request signature: the expected
// value is "v0=" + hex(HMAC-SHA256(secret, "v0:<timestamp>:<body>")).
// The secret is checked before any HMAC work so a misconfiguration never
// leaks whether a signature would have matched.
func VerifySignature(body []byte, timestamp, signature string, secret []byte, now time.Time) error {
	if len(secret) == 0 {
		return entity.ErrMisconfiguredSecret
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp %q", entity.ErrInvalidSignature, timestamp)
	}
	if drift := now.Unix() - ts; drift > int64(ReplayWindow.Seconds()) || -drift > int64(ReplayWindow.Seconds()) {
		return entity.ErrStaleRequest
	}

	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return entity.ErrInvalidSignature
	}
	return nil
}
