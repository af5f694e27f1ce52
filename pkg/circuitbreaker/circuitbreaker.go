package circuitbreaker

import "github.com/sony/gobreaker"

var (
	// MaxNumOfFailingRequests is the amount of requests after which the
	// failing ratio starts being evaluated.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the ratio of failing requests that trips the breaker.
	FailingRatio = 0.6
)

// NewCircuitBreaker is a factory function returning a *gobreaker.CircuitBreaker
// that trips once the overall number of requests has reached
// MaxNumOfFailingRequests and the failing ratio has met FailingRatio. It is
// meant to guard the calls towards the block explorer so that an unreachable
// upstream is not hammered with requests bound to fail.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})
}
