package ui

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// ID keys widget memory across frames.
type ID uint64

func IDFromString(s string) ID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return ID(h.Sum64())
}

// With derives a child id, so widgets inside a panel do not collide with others.
func (id ID) With(child string) ID {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(child))
	return ID(h.Sum64())
}

// UIFunc builds one frame of UI.
type UIFunc func(ctx *Context)

/**
 * @brief Persistent toolkit state. A Context is not safe for concurrent use; the
 * renderer owns it behind a mutex and drives exactly one Run per frame.
 * Widget memory only survives for ids used during the last frame.
 */
type Context struct {
	input  RawInput
	style  *Style
	frame  uint64
	memory map[ID]memoryEntry
	shapes []Shape
}

type memoryEntry struct {
	value any
	frame uint64
}

func NewContext() *Context {
	return &Context{
		style:  DefaultStyle(),
		memory: make(map[ID]memoryEntry),
	}
}

/**
 * @brief Runs one frame.
 * @param input The frame's input.
 * @param fn The UI function; it paints through the context.
 * @return The shapes painted this frame, in painter order.
 */
func (c *Context) Run(input RawInput, fn UIFunc) []Shape {
	c.input = input
	c.shapes = nil
	if fn != nil {
		fn(c)
	}
	shapes := c.shapes
	c.shapes = nil
	c.pruneMemory()
	c.frame++
	return shapes
}

// pruneMemory drops the values of ids the current frame did not use.
func (c *Context) pruneMemory() {
	for id, entry := range c.memory {
		if entry.frame != c.frame {
			delete(c.memory, id)
		}
	}
}

// Tessellate converts the shapes of a frame into meshes.
func (c *Context) Tessellate(shapes []Shape) []metadata.Mesh {
	return Tessellate(shapes)
}

func (c *Context) Input() RawInput {
	return c.input
}

func (c *Context) ScreenRect() math.Rect {
	return c.input.ScreenRect
}

// Frame counts completed Run calls.
func (c *Context) Frame() uint64 {
	return c.frame
}

func (c *Context) Style() *Style {
	return c.style
}

func (c *Context) SetStyle(style *Style) {
	c.style = style
}

// Data returns the value kept for id and marks it as used this frame.
func (c *Context) Data(id ID) (any, bool) {
	entry, ok := c.memory[id]
	if !ok {
		return nil, false
	}
	entry.frame = c.frame
	c.memory[id] = entry
	return entry.value, true
}

func (c *Context) SetData(id ID, value any) {
	c.memory[id] = memoryEntry{value: value, frame: c.frame}
}

func (c *Context) ForgetData(id ID) {
	delete(c.memory, id)
}

// DataOrInsert returns the value kept for id, storing init() first if there is none
// or it has a different type.
func DataOrInsert[T any](c *Context, id ID, init func() T) T {
	if v, ok := c.memory[id].value.(T); ok {
		c.memory[id] = memoryEntry{value: v, frame: c.frame}
		return v
	}
	v := init()
	c.SetData(id, v)
	return v
}

type animation struct {
	from    float32
	to      float32
	value   float32
	elapsed float32
}

// AnimateValue eases the value stored for id towards target over Style.AnimationTime.
// The first call for an id returns target immediately. Time advances by the
// predicted frame time so equal inputs give equal results.
func (c *Context) AnimateValue(id ID, target float32) float32 {
	a := DataOrInsert(c, id, func() *animation {
		return &animation{from: target, to: target, value: target, elapsed: c.style.AnimationTime}
	})
	if a.to != target {
		a.from = a.value
		a.to = target
		a.elapsed = 0
	}
	if a.value != a.to {
		a.elapsed += c.input.PredictedDT
		t := float32(1)
		if c.style.AnimationTime > 0 {
			t = math.Clamp(a.elapsed/c.style.AnimationTime, 0, 1)
		}
		a.value = math.Lerp(a.from, a.to, t)
	}
	return a.value
}

func (c *Context) add(shape Shape) {
	c.shapes = append(c.shapes, shape)
}
