package middleware

import (
	"log"
	"strings"
	"time"
)

// Retry repeats fn up to maxRetries times with exponential backoff when it
// fails with a transient error — a connection refused, a timeout, or a
// socket path that does not exist yet, the kind a provider runner hits while the registry daemon is still coming
// up (spec 4.I). Any other error, or running out of retries, is returned
// to the caller as-is.
func Retry(maxRetries int, baseDelay time.Duration, fn func() error) error {
	err := fn()
	for i := 0; i < maxRetries; i++ {
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		log.Printf("retry attempt %d after error: %s", i+1, err)
		time.Sleep(baseDelay * time.Duration(1<<i))
		err = fn()
	}
	return err
}

func isTransient(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such file or directory")
}
