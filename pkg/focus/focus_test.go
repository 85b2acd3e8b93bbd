package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludex/constel/pkg/scene"
)

func TestInactiveStepIsIdentity(t *testing.T) {
	tr := New()
	cur := scene.Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, cur, tr.Step(cur, 1.0/60))
	assert.False(t, tr.Active)
}

func TestMonotonicAndTerminating(t *testing.T) {
	tr := New()
	point := scene.Vec3{X: 100, Y: 50, Z: -20}
	tr.Start(point)
	require.True(t, tr.Active)
	require.Zero(t, tr.Progress)

	cur := scene.Vec3{}
	prev := tr.Progress
	frames := 0
	for tr.Active {
		cur = tr.Step(cur, 1.0/60)
		assert.GreaterOrEqual(t, tr.Progress, prev, "progress must never decrease")
		prev = tr.Progress
		frames++
		require.Less(t, frames, 1000, "transition must terminate")
	}

	assert.Equal(t, 1.0, tr.Progress, "progress ends at exactly 1")
	assert.Equal(t, point, cur, "target snaps exactly onto the focus point")
	assert.False(t, tr.Active)
}

func TestTargetApproachesMonotonically(t *testing.T) {
	tr := New()
	point := scene.Vec3{X: 200, Y: 0, Z: 0}
	tr.Start(point)

	cur := scene.Vec3{}
	prevDist := cur.Distance(point)
	for tr.Active {
		cur = tr.Step(cur, 1.0/60)
		d := cur.Distance(point)
		assert.LessOrEqual(t, d, prevDist, "target must not move away from the focus point")
		prevDist = d
	}
}

func TestRestartOverwrites(t *testing.T) {
	tr := New()
	tr.Start(scene.Vec3{X: 10, Y: 0, Z: 0})
	tr.Step(scene.Vec3{}, 1.0/60)
	require.Positive(t, tr.Progress)

	next := scene.Vec3{X: 0, Y: 99, Z: 0}
	tr.Start(next)
	assert.Equal(t, next, tr.TargetPoint)
	assert.Zero(t, tr.Progress, "re-activation resets progress")
	assert.True(t, tr.Active)
}

func TestTerminatesForAnyPositiveRate(t *testing.T) {
	for _, rate := range []float64{0.01, 0.5, DefaultRate, 10} {
		tr := New()
		tr.Rate = rate
		tr.Start(scene.Vec3{X: 1, Y: 1, Z: 1})

		cur := scene.Vec3{}
		frames := 0
		for tr.Active {
			cur = tr.Step(cur, 1.0/60)
			frames++
			require.Less(t, frames, 100000, "rate %v must terminate", rate)
		}
		assert.Equal(t, scene.Vec3{X: 1, Y: 1, Z: 1}, cur)
	}
}
