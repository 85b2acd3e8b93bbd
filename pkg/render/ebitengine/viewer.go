// Package ebitengine implements the render.Backend interface on
// github.com/hajimehoshi/ebiten/v2. Points are splatted as radial glow
// sprites with additive blending and no depth writes, realizing the
// shading contract in software; links are stroked as translucent line
// segments beneath the points.
package ebitengine

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/ludex/constel/pkg/config"
	"github.com/ludex/constel/pkg/render"
	"github.com/ludex/constel/pkg/scene"
	"github.com/ludex/constel/pkg/session"
	"github.com/ludex/constel/pkg/shading"
)

// Compile-time interface check.
var _ render.Backend = (*Viewer)(nil)

// spriteSize is the pixel extent of the precomputed point sprites.
const spriteSize = 64

// dragDeadZone is how far (in pixels) the pointer may travel between
// press and release and still count as a click rather than a drag.
const dragDeadZone = 4.0

var background = color.RGBA{R: 6, G: 8, B: 18, A: 255}

// Viewer is a desktop window hosting one session. It implements
// ebiten.Game; Update polls input and advances the session, Draw
// composites the constellation, Layout feeds viewport resizes.
type Viewer struct {
	sess *session.Session
	log  *zap.SugaredLogger

	title         string
	width, height int

	glow *ebiten.Image
	ring *ebiten.Image

	lastFrame time.Time

	dragging     bool
	pressX       int
	pressY       int
	lastX, lastY int
	dragMoved    bool

	closed   bool
	released bool
}

// New acquires the sprite resources for a viewer bound to sess.
// Construction-time failure is fatal to the mount: the caller gets an
// error and no degraded viewer.
func New(sess *session.Session, cfg config.ViewerConfig, log *zap.SugaredLogger) (*Viewer, error) {
	if sess == nil {
		return nil, errors.New("ebitengine: nil session")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Newf("ebitengine: invalid viewport %dx%d", cfg.Width, cfg.Height)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	v := &Viewer{
		sess:   sess,
		log:    log,
		title:  cfg.Title,
		width:  cfg.Width,
		height: cfg.Height,
		glow:   newGlowSprite(),
		ring:   newRingSprite(),
	}
	sess.Resize(cfg.Width, cfg.Height)
	return v, nil
}

// Run opens the window and blocks until the viewer is closed. The
// frame loop is cancelled before resources are released, on every
// exit path.
func (v *Viewer) Run() error {
	defer v.release()

	ebiten.SetWindowTitle(v.title)
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	v.lastFrame = time.Now()
	v.log.Infow("viewer mounted", "width", v.width, "height", v.height)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "ebitengine: run")
	}
	return nil
}

// Close requests shutdown; the next Update terminates the frame loop.
func (v *Viewer) Close() { v.closed = true }

// release frees the sprite images. Idempotent; only reached after the
// frame loop has stopped.
func (v *Viewer) release() {
	if v.released {
		return
	}
	v.released = true
	v.ring.Deallocate()
	v.glow.Deallocate()
	v.log.Infow("viewer released")
}

// Update implements ebiten.Game: input polling and session advance.
func (v *Viewer) Update() error {
	if v.closed {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(v.lastFrame).Seconds()
	v.lastFrame = now
	if dt > 0.25 {
		dt = 0.25 // window was stalled; don't let animations jump
	}

	x, y := ebiten.CursorPosition()

	if _, wy := ebiten.Wheel(); wy != 0 {
		v.sess.Scroll(wy)
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !v.dragging:
		v.dragging = true
		v.dragMoved = false
		v.pressX, v.pressY = x, y
		v.sess.BeginDrag()
	case pressed && v.dragging:
		if x != v.lastX || y != v.lastY {
			v.sess.Drag(float64(x-v.lastX), float64(y-v.lastY))
			if math.Hypot(float64(x-v.pressX), float64(y-v.pressY)) > dragDeadZone {
				v.dragMoved = true
			}
		}
	case !pressed && v.dragging:
		v.dragging = false
		v.sess.EndDrag()
		if !v.dragMoved {
			v.sess.Click(float64(x), float64(y))
		}
	default:
		if x != v.lastX || y != v.lastY {
			v.sess.PointerMove(float64(x), float64(y))
		}
	}
	v.lastX, v.lastY = x, y

	v.sess.Frame(dt)

	// The sprite path re-reads the size buffer every frame, so the
	// dirty range only needs consuming to keep the contract; a GPU
	// buffer backend would re-upload exactly this region.
	v.sess.Buffers().TakeDirty()

	return nil
}

// Draw implements ebiten.Game: link segments first, then additive
// point splats. Depth writes do not exist in this compositor, matching
// the no-self-occlusion contract.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	b := v.sess.Buffers()
	cam := v.sess.Camera()
	clock := v.sess.Clock()

	for l := 0; l < b.LinkCount(); l++ {
		a := scene.Vec3{
			X: float64(b.LinkPositions[6*l]),
			Y: float64(b.LinkPositions[6*l+1]),
			Z: float64(b.LinkPositions[6*l+2]),
		}
		z := scene.Vec3{
			X: float64(b.LinkPositions[6*l+3]),
			Y: float64(b.LinkPositions[6*l+4]),
			Z: float64(b.LinkPositions[6*l+5]),
		}
		x0, y0, _, ok0 := cam.Project(a)
		x1, y1, _, ok1 := cam.Project(z)
		if !ok0 || !ok1 {
			continue
		}
		clr := color.RGBA{
			R: uint8(b.LinkColors[3*l] * 90),
			G: uint8(b.LinkColors[3*l+1] * 90),
			B: uint8(b.LinkColors[3*l+2] * 90),
			A: 90,
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
	}

	w, h := cam.Viewport()
	for i := 0; i < b.NodeCount(); i++ {
		x, y, depth, ok := cam.Project(b.Position(i))
		if !ok {
			continue
		}
		radius := float64(b.Size(i)) * cam.PixelScale(depth)
		if radius < 0.5 || x+radius < 0 || y+radius < 0 || x-radius > w || y-radius > h {
			continue
		}

		rule := shading.RuleFor(scene.NodeType(b.TypeCodes[i]))
		mod := rule.Modulation(clock, float64(b.Size(i)))

		v.splat(screen, v.glow, x, y, radius, rule.Color, mod)
		if rule.Ring != nil {
			v.splat(screen, v.ring, x, y, radius, rule.Color, rule.Ring.Modulation(clock))
		}
	}
}

// splat draws one additive sprite centered at (x, y) with the given
// pixel radius, tinted and scaled in brightness.
func (v *Viewer) splat(dst *ebiten.Image, sprite *ebiten.Image, x, y, radius float64, tint [3]float32, brightness float64) {
	op := &ebiten.DrawImageOptions{}
	s := 2 * radius / spriteSize
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x-radius, y-radius)
	op.ColorScale.Scale(
		tint[0]*float32(brightness),
		tint[1]*float32(brightness),
		tint[2]*float32(brightness),
		1,
	)
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(sprite, op)
}

// Layout implements ebiten.Game. A resize recomputes only the
// projection aspect and the surface dimensions; nothing is rebuilt.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width, v.height = outsideWidth, outsideHeight
		v.sess.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// newGlowSprite bakes the radial glow falloff into a white sprite.
// Fragments beyond half the extent stay transparent, which is how this
// backend realizes the circular-point discard.
func newGlowSprite() *ebiten.Image {
	return bakeSprite(func(dist float64) float64 {
		return shading.Glow(dist)
	})
}

// newRingSprite bakes the developer ring band.
func newRingSprite() *ebiten.Image {
	ring := shading.RuleFor(scene.NodeDeveloper).Ring
	return bakeSprite(func(dist float64) float64 {
		return ring.Band(dist)
	})
}

// bakeSprite rasterizes a radial intensity profile, sampled over
// [0, 0.5] point-extent units, into a premultiplied white sprite.
func bakeSprite(profile func(dist float64) float64) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	center := float64(spriteSize-1) / 2

	for py := 0; py < spriteSize; py++ {
		for px := 0; px < spriteSize; px++ {
			dx := (float64(px) - center) / spriteSize
			dy := (float64(py) - center) / spriteSize
			dist := math.Hypot(dx, dy)

			val := 0.0
			if dist <= 0.5 {
				val = profile(dist)
			}
			c := uint8(math.Round(255 * val))
			o := img.PixOffset(px, py)
			img.Pix[o] = c
			img.Pix[o+1] = c
			img.Pix[o+2] = c
			img.Pix[o+3] = c
		}
	}

	sprite := ebiten.NewImage(spriteSize, spriteSize)
	sprite.WritePixels(img.Pix)
	return sprite
}
