package testbed

import (
	"sync"

	"github.com/spaghettifunk/anima-overlay/engine"
	"github.com/spaghettifunk/anima-overlay/engine/assets"
	"github.com/spaghettifunk/anima-overlay/engine/containers"
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/platform"
	"github.com/spaghettifunk/anima-overlay/engine/ui"
)

const (
	historySize = 120
	// Frame times above this are drawn in the warning colour.
	frameBudgetMS = 1000.0 / 30.0
	targetFPS     = 60.0
)

var fpsBarID = ui.IDFromString("testbed.fps")

/**
 * @brief A small HUD: frame-time graph, an FPS bar and a crosshair following the mouse.
 */
type Demo struct {
	mu        sync.Mutex
	overlay   *engine.Overlay
	history   *containers.RingQueue[float32]
	cursor    math.Vec2
	hasCursor bool
}

func NewDemo() *Demo {
	return &Demo{
		history: containers.NewRingQueue[float32](historySize),
	}
}

// Application wires the demo into an overlay application.
func (d *Demo) Application(configPath string, compiler assets.Compiler) *engine.Application {
	return &engine.Application{
		Name:           "Anima Overlay Testbed",
		ConfigPath:     configPath,
		ShaderCompiler: compiler,
		FnInitialize:   d.initialize,
		FnUI:           d.Draw,
		FnOnResize:     d.onResize,
		FnShutdown:     d.shutdown,
	}
}

func (d *Demo) initialize(o *engine.Overlay) error {
	d.mu.Lock()
	d.overlay = o
	d.mu.Unlock()

	o.Events().Register(core.EventCodeWindowMessage, d, d.onWindowMessage)
	core.LogInfo("testbed initialized")
	return nil
}

func (d *Demo) onResize(width, height uint32) error {
	core.LogInfo("testbed resized to %dx%d", width, height)
	return nil
}

func (d *Demo) shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.overlay != nil {
		d.overlay.Events().Unregister(core.EventCodeWindowMessage, d)
		d.overlay = nil
	}
	core.LogInfo("testbed shut down")
	return nil
}

func (d *Demo) onWindowMessage(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if data.Data.U32[0] != platform.WMMouseMove {
		return false
	}
	x, y := platform.SplitLParam(data.Data.UPtr[2])

	d.mu.Lock()
	d.cursor = math.NewVec2(float32(x), float32(y))
	d.hasCursor = true
	d.mu.Unlock()
	return false
}

func (d *Demo) record(frameMS float32) []float32 {
	if d.history.IsFull() {
		_, _ = d.history.Dequeue()
	}
	_ = d.history.Enqueue(frameMS)

	values := make([]float32, 0, d.history.Len())
	d.history.Each(func(v float32) {
		values = append(values, v)
	})
	return values
}

// Draw builds one frame of the HUD.
func (d *Demo) Draw(c *ui.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var fps, frameMS float64
	if d.overlay != nil {
		fps, frameMS = d.overlay.Metrics().Frame()
	}
	values := d.record(float32(frameMS))

	panel := math.NewRectFromSize(math.NewVec2(16, 16), math.NewVec2(260, 104))
	p := c.Panel(panel)
	col := c.Column(p.ClipRect())
	c.Graph(p, col.Next(60), values, frameBudgetMS)
	c.ProgressBar(p, fpsBarID, col.Next(12), float32(fps/targetFPS))

	center := c.ScreenRect().Center()
	if d.hasCursor {
		center = d.cursor
	}
	c.Crosshair(c.Painter(), center, 24, c.Style().Accent)
}
