package image

import (
	"context"
	"image"
	"math/rand"
)

// Classifier analyzes a camera frame for the presence of a cat.
type Classifier interface {
	// ContainsCat reports whether the frame contains a cat with at least
	// the given confidence, expressed as a percentage in [0, 100].
	ContainsCat(ctx context.Context, frame image.Image, confidenceThreshold float32) (bool, error)
}

// StaticClassifier always gives the same answer. Useful for deterministic
// wiring and tests.
type StaticClassifier struct {
	// Detected is the fixed answer.
	Detected bool
}

// ContainsCat returns the configured answer.
func (c *StaticClassifier) ContainsCat(context.Context, image.Image, float32) (bool, error) {
	return c.Detected, nil
}

// RandomClassifier is a development stand-in for a real detector: it flips a
// coin per frame. Do not deploy it anywhere a cat matters.
type RandomClassifier struct{}

// ContainsCat flips the coin.
func (*RandomClassifier) ContainsCat(context.Context, image.Image, float32) (bool, error) {
	return rand.Intn(2) == 0, nil //nolint:gosec // Not a security decision, despite the package.
}
