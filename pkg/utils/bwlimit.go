// pkg/utils/bwlimit.go

package utils

import (
	"io"

	"github.com/juju/ratelimit"
)

type limitedReader struct {
	io.Reader
	r *ratelimit.Bucket
}

func (l *limitedReader) Read(buf []byte) (int, error) {
	n, err := l.Reader.Read(buf)
	if l.r != nil {
		l.r.Wait(int64(n))
	}
	return n, err
}

// Limiter throttles readers to a shared byte rate. A nil Limiter is valid
// and does not throttle.
type Limiter struct {
	bucket *ratelimit.Bucket
}

// NewLimiter returns a limiter allowing rate bytes per second, or nil when
// rate is not positive.
func NewLimiter(rate int64) *Limiter {
	if rate <= 0 {
		return nil
	}
	return &Limiter{ratelimit.NewBucketWithRate(float64(rate), rate)}
}

// Reader wraps r so that reads wait for the limiter.
func (l *Limiter) Reader(r io.Reader) io.Reader {
	if l == nil {
		return r
	}
	return &limitedReader{r, l.bucket}
}
