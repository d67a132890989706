package tasks

import (
	"fmt"
	"log"
	"time"
)

// RetryPolicy says how a job invocation is retried: how many attempts in
// total, how long to wait between them, and which errors count as retryable.
// A nil Retryable treats every error as retryable.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(error) bool
}

// DefaultRetryPolicy retries once after a minute.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 2, Backoff: time.Minute}

// Run invokes job, retrying per the policy. The last error is returned once
// attempts are exhausted; it is never swallowed.
func (p RetryPolicy) Run(name string, job func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = job(); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			break
		}
		if attempt < attempts {
			log.Printf("job %s attempt %d/%d failed, retrying in %s: %v", name, attempt, attempts, p.Backoff, err)
			time.Sleep(p.Backoff)
		}
	}
	return fmt.Errorf("job %s: %w", name, err)
}
