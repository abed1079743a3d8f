package breaker

import (
	"errors"
	"time"

	cb "github.com/sony/gobreaker"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker open")

type Settings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
	MaxFailures  uint32
	// IsSuccessful classifies errors that should not count against the upstream.
	IsSuccessful func(err error) bool
	// OnStateChange is called on every transition.
	OnStateChange func(name, from, to string)
}

// DefaultSettings trips after 3 consecutive failures, or a failure ratio above
// 5% once 20 requests were seen, and probes again after a minute.
func DefaultSettings() Settings {
	return Settings{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      60 * time.Second,
		MinRequests:  20,
		FailureRatio: 0.05,
		MaxFailures:  3,
	}
}

type Breaker struct{ cb *cb.CircuitBreaker }

func New(name string, s Settings) *Breaker {
	st := cb.Settings{Name: name, MaxRequests: s.MaxRequests, Interval: s.Interval, Timeout: s.Timeout}
	st.ReadyToTrip = func(counts cb.Counts) bool {
		if s.MaxFailures > 0 && counts.ConsecutiveFailures >= s.MaxFailures {
			return true
		}
		if counts.Requests < s.MinRequests || counts.Requests == 0 {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) > s.FailureRatio
	}
	if s.IsSuccessful != nil {
		st.IsSuccessful = s.IsSuccessful
	}
	if s.OnStateChange != nil {
		st.OnStateChange = func(name string, from, to cb.State) {
			s.OnStateChange(name, from.String(), to.String())
		}
	}
	return &Breaker{cb: cb.NewCircuitBreaker(st)}
}

// Execute runs fn through the breaker. Rejections are reported as ErrOpen.
func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	v, err := b.cb.Execute(fn)
	if errors.Is(err, cb.ErrOpenState) || errors.Is(err, cb.ErrTooManyRequests) {
		return nil, ErrOpen
	}
	return v, err
}

// State returns the current state name (closed, half-open, open).
func (b *Breaker) State() string { return b.cb.State().String() }
