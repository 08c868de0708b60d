package breaker

import (
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Settings tunes a circuit breaker instance.
type Settings struct {
	Name                string
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// New creates a circuit breaker guarding calls to an external dependency.
// The breaker opens after the configured number of consecutive failures.
func New(settings Settings, logger *zap.Logger) *gobreaker.CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 3
	}
	if settings.Interval <= 0 {
		settings.Interval = 10 * time.Second
	}
	if settings.Timeout <= 0 {
		settings.Timeout = timeoutFor(settings.Name)
	}
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 3
	}
	threshold := settings.ConsecutiveFailures

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

func timeoutFor(name string) time.Duration {
	switch name {
	case "Firestore-Visitors":
		return 15 * time.Second
	case "PostgreSQL-Visitors":
		return 10 * time.Second
	default:
		return 30 * time.Second
	}
}
