package ledger

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
)

const baseBackoff = 5 * time.Millisecond

// WithRetry runs fn and repeats it up to maxRetries more times while it fails with a
// conflict. fn must be a whole transactional unit.
func WithRetry(ctx context.Context, maxRetries int, fn func() error) error {
	backoff := baseBackoff
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || apperror.KindOf(err) != apperror.KindConflict || attempt >= maxRetries {
			return err
		}

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
		backoff *= 2
	}
}
