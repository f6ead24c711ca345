package engine

import (
	"github.com/spaghettifunk/anima-overlay/engine/assets"
	"github.com/spaghettifunk/anima-overlay/engine/ui"
)

// Application is what a user of the overlay plugs in.
type Application struct {
	// Name used in log lines.
	Name string
	// ConfigPath points at an optional TOML file. Empty means defaults.
	ConfigPath string
	// ShaderCompiler compiles HLSL when no precompiled shaders are found.
	ShaderCompiler assets.Compiler
	FnInitialize   Initialize
	// FnUI builds the UI every frame.
	FnUI       ui.UIFunc
	FnOnResize OnResize
	FnShutdown Shutdown
}

// Initialize runs once, after the overlay attached to the host.
type Initialize func(o *Overlay) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
