// Package session owns the per-mount mutable state of a constellation:
// the node collection, its render buffers, the camera, hover, focus,
// and the shading clock. Everything runs on the single rendering
// goroutine — event handlers and the frame update interleave without
// locks, and handlers only write scalar/vector state that the next
// frame reads. The buffers are rebuilt wholesale only by
// ReplaceDataset.
package session

import (
	"math"

	"go.uber.org/zap"

	"github.com/ludex/constel/pkg/buffers"
	"github.com/ludex/constel/pkg/camera"
	"github.com/ludex/constel/pkg/config"
	"github.com/ludex/constel/pkg/focus"
	"github.com/ludex/constel/pkg/picking"
	"github.com/ludex/constel/pkg/scene"
	"github.com/ludex/constel/pkg/shading"
)

// Options configures a new session. All fields are optional: a nil
// Nodes collection is generated (Count nodes, or the configured
// default), a nil Config uses config.Default(), and a nil Logger is
// replaced with a no-op.
type Options struct {
	Nodes  scene.Collection
	Count  int
	Seed   int64 // 0 means time-seeded
	Config *config.Config
	Logger *zap.SugaredLogger

	// OnNodeClick fires when a pointer click lands on a node.
	OnNodeClick func(scene.Node)
	// OnNodeHover fires when the hovered node changes; nil means the
	// pointer moved off all nodes.
	OnNodeHover func(*scene.Node)
}

// Session is the owned state for one mounted constellation.
type Session struct {
	nodes scene.Collection
	bufs  *buffers.Buffers
	cam   *camera.Camera
	hover *picking.Hover
	trans *focus.Transition

	thresholdPx float64
	clock       float64

	onClick func(scene.Node)
	onHover func(*scene.Node)
	log     *zap.SugaredLogger
}

// palette adapts the shading rule table for the buffer builder.
func palette(t scene.NodeType) [3]float32 {
	return shading.RuleFor(t).Color
}

// New builds a session from the given options. When no dataset is
// supplied the default scene generator produces one; externally
// supplied collections are used as-is (conformance to the model
// invariants is the caller's responsibility — run scene.Validate at
// load time if the data is untrusted).
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	nodes := opts.Nodes
	if nodes == nil {
		count := opts.Count
		if count == 0 {
			count = cfg.Generator.Count
		}
		if opts.Seed != 0 {
			nodes = scene.GenerateSeeded(count, opts.Seed)
		} else {
			nodes = scene.Generate(count)
		}
	}

	cam := camera.New()
	cam.MinDistance = cfg.Camera.MinDistance
	cam.MaxDistance = cfg.Camera.MaxDistance
	cam.DampingFactor = cfg.Camera.Damping
	cam.AutoRotateSpeed = cfg.Camera.AutoRotateSpeed
	cam.IdleRearmDelay = cfg.Camera.IdleRearmDelay
	if cfg.Camera.FOVDegrees > 0 {
		cam.FOV = cfg.Camera.FOVDegrees * math.Pi / 180
	}

	trans := focus.New()
	trans.Rate = cfg.Focus.Rate

	s := &Session{
		nodes:       nodes,
		bufs:        buffers.Build(nodes, palette),
		cam:         cam,
		hover:       picking.NewHover(),
		trans:       trans,
		thresholdPx: cfg.Picking.ThresholdPx,
		onClick:     opts.OnNodeClick,
		onHover:     opts.OnNodeHover,
		log:         log,
	}
	log.Infow("session created", "nodes", len(nodes), "links", s.bufs.LinkCount())
	return s
}

// Frame advances the session by dt seconds: camera damping and
// auto-rotation, the focus transition writing the orbit target, and
// the shading clock. It runs every frame regardless of input.
func (s *Session) Frame(dt float64) {
	s.cam.Step(dt)
	s.cam.Target = s.trans.Step(s.cam.Target, dt)
	s.clock += dt
}

// PointerMove updates hover state from the pointer position and fires
// the hover callback when the target changes.
func (s *Session) PointerMove(px, py float64) {
	idx, hit := picking.Pick(s.bufs, s.cam, px, py, s.thresholdPx)

	var changed bool
	if hit {
		changed = s.hover.Set(s.bufs, idx)
	} else {
		changed = s.hover.Clear(s.bufs)
	}
	if !changed || s.onHover == nil {
		return
	}
	if hit {
		n := s.nodes[idx]
		s.onHover(&n)
	} else {
		s.onHover(nil)
	}
}

// Click resolves the pointer position against the point cloud. A hit
// suspends auto-rotation, starts the focus transition toward the node,
// and fires the click callback.
func (s *Session) Click(px, py float64) {
	idx, hit := picking.Pick(s.bufs, s.cam, px, py, s.thresholdPx)
	if !hit {
		return
	}

	node := s.nodes[idx]
	s.cam.SuspendAutoRotate()
	s.trans.Start(node.Position)
	s.log.Debugw("node activated", "id", node.ID, "type", node.Type.String())
	if s.onClick != nil {
		s.onClick(node)
	}
}

// BeginDrag, Drag and EndDrag forward orbit-drag input to the camera.
func (s *Session) BeginDrag()          { s.cam.BeginDrag() }
func (s *Session) Drag(dx, dy float64) { s.cam.Rotate(dx, dy) }
func (s *Session) EndDrag()            { s.cam.EndDrag() }

// Scroll applies zoom input; the camera clamps the resulting distance.
func (s *Session) Scroll(delta float64) { s.cam.Zoom(delta) }

// Resize records the new output surface dimensions. Only the
// projection changes; no resources are rebuilt.
func (s *Session) Resize(w, h int) { s.cam.SetViewport(w, h) }

// ReplaceDataset swaps in a new node collection and rebuilds the
// render buffers in full. Hover state is dropped (indices from the old
// collection are meaningless) and any focus transition is abandoned.
func (s *Session) ReplaceDataset(nodes scene.Collection) {
	s.hover = picking.NewHover()
	s.trans.Active = false
	s.nodes = nodes
	s.bufs = buffers.Build(nodes, palette)
	s.log.Infow("dataset replaced", "nodes", len(nodes), "links", s.bufs.LinkCount())
}

// Nodes returns the current collection (read-only by convention).
func (s *Session) Nodes() scene.Collection { return s.nodes }

// Buffers returns the current render buffers.
func (s *Session) Buffers() *buffers.Buffers { return s.bufs }

// Camera returns the session camera.
func (s *Session) Camera() *camera.Camera { return s.cam }

// Clock returns the monotonically increasing shading time in seconds.
func (s *Session) Clock() float64 { return s.clock }

// Hovered returns the hovered node index, if any.
func (s *Session) Hovered() (int, bool) { return s.hover.Index() }

// FocusActive reports whether a focus transition is in flight.
func (s *Session) FocusActive() bool { return s.trans.Active }

// FocusTarget returns the point an active transition is approaching.
func (s *Session) FocusTarget() scene.Vec3 { return s.trans.TargetPoint }
