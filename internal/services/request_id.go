package services

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	requestIDMu      sync.Mutex
	requestIDEntropy io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	requestIDEntropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// newRequestID returns a time-sortable id for the X-Request-ID header.
func newRequestID() string {
	requestIDMu.Lock()
	defer requestIDMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), requestIDEntropy).String()
}
