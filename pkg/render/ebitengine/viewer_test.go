package ebitengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ludex/constel/pkg/config"
	"github.com/ludex/constel/pkg/session"
)

// Construction failures must surface to the caller instead of mounting
// a degraded viewer. These paths return before any window or sprite
// resource is touched, so they run headless.

func TestNewRejectsNilSession(t *testing.T) {
	_, err := New(nil, config.Default().Viewer, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestNewRejectsInvalidViewport(t *testing.T) {
	s := session.New(session.Options{Count: 1, Seed: 1})
	_, err := New(s, config.ViewerConfig{Width: 0, Height: 600}, zap.NewNop().Sugar())
	assert.Error(t, err)

	_, err = New(s, config.ViewerConfig{Width: 800, Height: -1}, zap.NewNop().Sugar())
	assert.Error(t, err)
}
