// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep
// the long-running poll loop healthy in the face of upstream failures.
//
// The package supports:
//   - Circuit breakers for the Weverse feed and account APIs
//   - Retry logic with exponential backoff and jitter, with silent
//     credential renewal treated as a retryable condition
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callUpstream()
//	})
//
//	retryConfig := retry.FeedAPIConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
