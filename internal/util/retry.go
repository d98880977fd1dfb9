// ABOUTME: Retry helpers for remote API calls
// ABOUTME: Jittered exponential backoff shared by the OpenAI client
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// CalculateBackoff returns the delay before the given retry attempt: the base
// delay doubled each attempt, capped at 30s, with up to +/-25% random jitter.
// Attempt 0 (the first try) gets no delay.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	backoff := baseDelay
	for i := 0; i < attempt && backoff < maxBackoff; i++ {
		backoff *= 2
	}
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
