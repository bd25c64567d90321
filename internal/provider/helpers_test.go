package provider

import (
	"time"

	"github.com/binalert/bin-alert/internal/common"
)

// fastRetry keeps failure-path tests from sleeping through real backoff.
func fastRetry() common.RetryOptions {
	return common.RetryOptions{
		MaxAttempts:  1,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}
}
