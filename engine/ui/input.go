package ui

import (
	"github.com/spaghettifunk/anima-overlay/engine/math"
)

type Modifiers struct {
	Alt     bool
	Ctrl    bool
	Shift   bool
	Command bool
}

type EventKind uint8

const (
	EventPointerMoved EventKind = iota
	EventPointerButton
	EventKey
	EventText
)

// Event is a translated input event. The overlay never synthesizes any; an input
// collaborator may inject them.
type Event struct {
	Kind    EventKind
	Pos     math.Vec2
	Pressed bool
	Key     uint32
	Text    string
}

/**
 * @brief Everything the toolkit is told about the outside world for one frame.
 */
type RawInput struct {
	/** @brief The drawable area in points, origin top-left. */
	ScreenRect math.Rect
	/** @brief Physical pixels per logical point. */
	PixelsPerPoint float32
	/** @brief Seconds since the Unix epoch. */
	Time float64
	/** @brief Expected duration of the frame in seconds. */
	PredictedDT  float32
	Modifiers    Modifiers
	Events       []Event
	HoveredFiles []string
	DroppedFiles []string
}

// DefaultPredictedDT assumes a 60Hz host.
const DefaultPredictedDT float32 = 1.0 / 60.0

// NewRawInput builds the minimal input for a frame covering screen: no events, no
// modifiers, one pixel per point.
func NewRawInput(screen math.Vec2, time float64) RawInput {
	return RawInput{
		ScreenRect:     math.NewRect(math.NewVec2Zero(), screen),
		PixelsPerPoint: 1.0,
		Time:           time,
		PredictedDT:    DefaultPredictedDT,
	}
}
