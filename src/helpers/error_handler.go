package helpers

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type StockTrackerError struct {
	Message string
	Cause   error
}

func (e *StockTrackerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StockTrackerError) Unwrap() error {
	return e.Cause
}

// Error taxonomy: network failures and scrape failures degrade to empty
// results, malformed records are dropped per item, database failures
// are fatal for the whole cycle.
type ConfigurationError struct{ StockTrackerError }
type NetworkError struct{ StockTrackerError }
type ScrapeError struct{ StockTrackerError }
type DatabaseError struct{ StockTrackerError }
type ValidationError struct{ StockTrackerError }

// -----------------------------------------------------------------------------

func NewNetworkError(msg string, cause error) *NetworkError {
	return &NetworkError{StockTrackerError{Message: msg, Cause: cause}}
}

func NewScrapeError(msg string, cause error) *ScrapeError {
	return &ScrapeError{StockTrackerError{Message: msg, Cause: cause}}
}

func NewDatabaseError(msg string, cause error) *DatabaseError {
	return &DatabaseError{StockTrackerError{Message: msg, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts fn up to maxRetries times with exponential backoff.
func RetryWithBackoff(operation string, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		fmt.Printf("Warning: Attempt %d/%d failed for %s: %v. Retrying in %v\n", attempt+1, maxRetries, operation, lastErr, delay)
		time.Sleep(delay)
	}

	return lastErr
}
