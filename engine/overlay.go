package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/anima-overlay/engine/assets"
	"github.com/spaghettifunk/anima-overlay/engine/config"
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

type Stage uint8

const (
	// Overlay is in an uninitialized state
	OverlayStageUninitialized Stage = iota
	// Overlay is binding to the host's surface
	OverlayStageAttaching
	// Overlay draws on every host present
	OverlayStageAttached
	// Overlay is releasing its GPU objects
	OverlayStageDetaching
	// Overlay is detached and cannot be attached again
	OverlayStageDetached
)

func (s Stage) String() string {
	switch s {
	case OverlayStageUninitialized:
		return "uninitialized"
	case OverlayStageAttaching:
		return "attaching"
	case OverlayStageAttached:
		return "attached"
	case OverlayStageDetaching:
		return "detaching"
	case OverlayStageDetached:
		return "detached"
	default:
		return "unknown"
	}
}

/**
 * @brief The integration boundary between the host's presentation calls and the renderer.
 *
 * Every unrecoverable failure ends here and is handed to the fatal handler, which
 * either logs and terminates or terminates silently. The host never receives an
 * error from Present or WndProc; ResizeBuffers only returns the host's own result.
 */
type Overlay struct {
	// lifecycle is held shared by host calls and exclusively by Attach/Detach.
	lifecycle    sync.RWMutex
	currentStage Stage

	app          *Application
	configPath   string
	configMu     sync.RWMutex
	config       *config.Config
	fatal        *core.FatalHandler
	assetManager *assets.AssetManager
	renderer     *renderer.FrameRenderer
	events       *core.EventBus
	metrics      *core.Metrics
}

func New(app *Application) (*Overlay, error) {
	cfg := config.Default()
	var configPath string
	if app.ConfigPath != "" {
		resolved, err := config.ResolvePath(app.ConfigPath)
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		loaded, err := config.Load(resolved)
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		cfg = loaded
		configPath = resolved
	}
	core.SetLogLevel(cfg.LogLevel())

	am, err := assets.NewAssetManager(app.ShaderCompiler)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Overlay{
		currentStage: OverlayStageUninitialized,
		app:          app,
		configPath:   configPath,
		config:       cfg,
		fatal:        core.NewFatalHandler(cfg.FatalMode()),
		assetManager: am,
		events:       core.NewEventBus(),
		metrics:      core.NewMetrics(),
	}, nil
}

/**
 * @brief Binds the overlay to the host's surface: loads shaders, creates the render
 * target and pipeline, and runs the application's initializer.
 * @param surface The host's presentation surface.
 * @return An error if the overlay was already attached; resource failures are fatal.
 */
func (o *Overlay) Attach(surface renderer.Surface) error {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	if o.currentStage != OverlayStageUninitialized {
		return fmt.Errorf("cannot attach overlay in stage %s", o.currentStage)
	}
	o.currentStage = OverlayStageAttaching

	if err := o.attach(surface); err != nil {
		o.fatal.Check("attach", err)
		if o.renderer != nil {
			o.renderer.Destroy()
		}
		_ = o.assetManager.Shutdown()
		o.currentStage = OverlayStageDetached
		return err
	}
	o.currentStage = OverlayStageAttached
	core.LogInfo("%s attached", o.app.Name)
	return nil
}

func (o *Overlay) attach(surface renderer.Surface) error {
	cfg := o.Config()

	if err := o.assetManager.Initialize(cfg.Shaders.Dir); err != nil {
		return err
	}
	if cfg.Overlay.Watch && o.configPath != "" {
		if err := o.assetManager.Track(o.configPath); err != nil {
			return err
		}
		o.assetManager.OnChange(o.onAssetChanged)
	}

	shaders, err := o.assetManager.LoadShaderSource()
	if err != nil {
		return err
	}

	fr, err := renderer.NewFrameRenderer(surface, shaders, o.app.FnUI,
		renderer.WithEventBus(o.events),
		renderer.WithMetrics(o.metrics),
	)
	if err != nil {
		return err
	}
	o.renderer = fr

	o.events.Register(core.EventCodeResized, o, o.onResized)

	if o.app.FnInitialize != nil {
		if err := o.app.FnInitialize(o); err != nil {
			return err
		}
	}
	return nil
}

/**
 * @brief Draws the overlay, then hands the frame to the host's original present.
 * @return The original routine's result.
 */
func (o *Overlay) Present(surface renderer.Surface, syncInterval, flags uint32, original renderer.PresentFunc) error {
	o.lifecycle.RLock()
	if o.currentStage == OverlayStageAttached {
		o.fatal.Check("present", o.renderer.Present(surface))
	}
	o.lifecycle.RUnlock()

	return original(surface, syncInterval, flags)
}

/**
 * @brief Resizes the host's buffers through original with the render target released
 * around the call.
 * @return The original routine's result.
 */
func (o *Overlay) ResizeBuffers(surface renderer.Surface, bufferCount, width, height uint32, format metadata.Format, flags uint32, original renderer.ResizeBuffersFunc) error {
	o.lifecycle.RLock()
	defer o.lifecycle.RUnlock()

	if o.currentStage != OverlayStageAttached {
		return original(surface, bufferCount, width, height, format, flags)
	}

	err := o.renderer.ResizeBuffers(surface, bufferCount, width, height, format, flags, original)
	if errors.Is(err, core.ErrGraphicsResource) {
		o.fatal.Check("resize", err)
	}
	return err
}

// WndProc announces a window message to subscribers. The message always counts as
// handled by the overlay.
func (o *Overlay) WndProc(hwnd uintptr, msg uint32, wparam, lparam uintptr) bool {
	ctx := core.EventContext{}
	ctx.Data.U32[0] = msg
	ctx.Data.UPtr[0] = hwnd
	ctx.Data.UPtr[1] = wparam
	ctx.Data.UPtr[2] = lparam
	o.events.Fire(core.EventCodeWindowMessage, o, ctx)
	return true
}

// Detach releases every GPU object the overlay created. The host keeps running.
func (o *Overlay) Detach() error {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	if o.currentStage == OverlayStageDetached {
		return nil
	}
	attached := o.currentStage == OverlayStageAttached
	o.currentStage = OverlayStageDetaching

	if attached {
		o.events.Unregister(core.EventCodeResized, o)
		o.renderer.Destroy()
		o.events.Fire(core.EventCodeDetached, o, core.EventContext{})
	}
	if err := o.assetManager.Shutdown(); err != nil {
		return err
	}
	if attached && o.app.FnShutdown != nil {
		if err := o.app.FnShutdown(); err != nil {
			return err
		}
	}
	o.currentStage = OverlayStageDetached
	core.LogInfo("%s detached", o.app.Name)
	return nil
}

func (o *Overlay) Stage() Stage {
	o.lifecycle.RLock()
	defer o.lifecycle.RUnlock()
	return o.currentStage
}

func (o *Overlay) Config() *config.Config {
	o.configMu.RLock()
	defer o.configMu.RUnlock()
	return o.config
}

// Events is the bus resize, window message and detach events are fired on.
func (o *Overlay) Events() *core.EventBus {
	return o.events
}

func (o *Overlay) Metrics() *core.Metrics {
	return o.metrics
}

func (o *Overlay) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	width := data.Data.U32[0]
	height := data.Data.U32[1]
	core.LogDebug("Window resize: %d, %d", width, height)

	if o.app.FnOnResize != nil {
		if err := o.app.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	// Other listeners may care too.
	return false
}

// onAssetChanged reloads the configuration. The fatal mode is fixed at New and is
// not changed by a reload.
func (o *Overlay) onAssetChanged(info assets.AssetInfo) {
	if info.Type != metadata.ResourceTypeConfig || info.Path != o.configPath {
		return
	}
	cfg, err := config.Load(info.Path)
	if err != nil {
		core.LogWarn("ignoring config change: %s", err)
		return
	}
	core.SetLogLevel(cfg.LogLevel())

	o.configMu.Lock()
	o.config = cfg
	o.configMu.Unlock()
	core.LogInfo("configuration reloaded from %s", info.Path)
}
