package infrastructure

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	offerEntropy   = ulid.Monotonic(rand.Reader, 0)
	offerEntropyMu sync.Mutex
)

// NewOfferID returns a time-ordered unique token for a three-card offer
func NewOfferID() string {
	offerEntropyMu.Lock()
	defer offerEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), offerEntropy).String()
}
