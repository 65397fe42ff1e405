// Package classify produces raw waste labels for the interpreter, either from
// a remote inference service or from a built-in mock draw.
package classify

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

// Remote is an optional inference capability that maps image bytes to a label.
type Remote interface {
	Classify(ctx context.Context, image []byte) (string, error)
}

// mockLabels is the fixed draw set used when no inference capability is
// available. Labels are phrased the way the interpreter expects.
var mockLabels = []string{
	"Plastic Bottle",
	"Paper",
	"Glass Bottle",
	"Food Waste",
	"Electronic Waste",
	"Metal Can",
}

const defaultMockDelay = 1500 * time.Millisecond

// Source produces a raw label for an image. If a Remote is configured its
// answer is preferred; any remote failure is absorbed and the mock draw is
// used instead, so Classify only fails on context cancellation.
type Source struct {
	remote Remote
	rng    *rand.Rand
	delay  time.Duration
	logger *slog.Logger
}

type Option func(*Source)

// WithRemote attaches an inference capability. A nil remote leaves the source
// in fallback-only mode.
func WithRemote(r Remote) Option {
	return func(s *Source) { s.remote = r }
}

// WithRand replaces the random source used by the mock draw.
func WithRand(rng *rand.Rand) Option {
	return func(s *Source) { s.rng = rng }
}

// WithMockDelay overrides the simulated processing delay of the mock draw.
func WithMockDelay(d time.Duration) Option {
	return func(s *Source) { s.delay = d }
}

func NewSource(logger *slog.Logger, opts ...Option) *Source {
	s := &Source{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		delay:  defaultMockDelay,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify returns a raw label for the image.
func (s *Source) Classify(ctx context.Context, image []byte) (string, error) {
	if s.remote != nil {
		label, err := s.remote.Classify(ctx, image)
		if err == nil {
			return label, nil
		}
		// Inference unavailable: fall back to the mock draw rather than
		// failing the scan.
		s.logger.Warn("inference unavailable, using mock classification", "error", err)
	}
	return s.mockClassify(ctx)
}

func (s *Source) mockClassify(ctx context.Context) (string, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return mockLabels[s.rng.Intn(len(mockLabels))], nil
}
