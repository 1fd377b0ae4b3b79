// Package renderer draws the simulation onto a persistent GPU render texture.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/versalarchitect/currents/systems"
)

// Canvas is a persistent offscreen render target implementing systems.Surface.
// Draw intents accumulate across ticks; the only erasure is the fractional
// Fade blend, which is what produces the trailing look.
type Canvas struct {
	target rl.RenderTexture2D
	width  int32
	height int32
	loaded bool
}

// NewCanvas creates the render texture and clears it to the background color.
// Must be called after the raylib window exists.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.load(width, height)
	return c
}

func (c *Canvas) load(width, height int) {
	c.width = int32(width)
	c.height = int32(height)
	c.target = rl.LoadRenderTexture(c.width, c.height)
	c.loaded = true

	rl.BeginTextureMode(c.target)
	rl.ClearBackground(color(systems.Background))
	rl.EndTextureMode()
}

// Begin opens the render texture for drawing. Every Surface call between
// Begin and End lands on the persistent buffer.
func (c *Canvas) Begin() {
	rl.BeginTextureMode(c.target)
}

// End closes the render texture.
func (c *Canvas) End() {
	rl.EndTextureMode()
}

func (c *Canvas) Line(x1, y1, x2, y2, weight float32, col systems.Color) {
	rl.DrawLineEx(
		rl.Vector2{X: x1, Y: y1},
		rl.Vector2{X: x2, Y: y2},
		weight,
		color(col),
	)
}

func (c *Canvas) Point(x, y float32, col systems.Color) {
	rl.DrawPixelV(rl.Vector2{X: x, Y: y}, color(col))
}

func (c *Canvas) Circle(x, y, radius float32, col systems.Color) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, color(col))
}

func (c *Canvas) Fade(col systems.Color) {
	rl.DrawRectangle(0, 0, c.width, c.height, color(col))
}

// Recreate drops the old texture and allocates a fresh one at the new size.
// Must not be called between Begin and End.
func (c *Canvas) Recreate(width, height int) {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
	}
	c.load(width, height)
}

// Blit draws the accumulated buffer to the screen. Render textures are
// stored upside down, so the source rect uses a negative height.
func (c *Canvas) Blit() {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(c.width), Height: -float32(c.height)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(c.width), Height: float32(c.height)}
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the render texture.
func (c *Canvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}

func color(c systems.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
