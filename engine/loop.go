package engine

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/versalarchitect/currents/systems"
	"github.com/versalarchitect/currents/ui"
)

// Update handles input and advances the simulation for one display frame.
func (e *Engine) Update() {
	e.handleInput()

	if rl.IsWindowResized() {
		w := rl.GetScreenWidth()
		h := rl.GetScreenHeight()
		e.clock.Resize(w, h)
		e.panel.Layout(w)
	}

	if e.paused {
		return
	}

	f := e.frameInput()
	for i := 0; i < e.opts.StepsPerUpdate; i++ {
		e.step(f)
		// Pointer presses are one-shot
		f.PointerDown = false
	}
}

// frameInput samples the pointer and viewport into a Frame.
func (e *Engine) frameInput() systems.Frame {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	mouse := rl.GetMousePosition()

	overPanel := e.panel.Contains(mouse.X, mouse.Y)
	inside := mouse.X >= 0 && mouse.Y >= 0 && mouse.X < w && mouse.Y < h

	return systems.Frame{
		Width:       w,
		Height:      h,
		PointerX:    mouse.X / w,
		PointerY:    mouse.Y / h,
		PointerDown: rl.IsMouseButtonPressed(rl.MouseLeftButton) && inside && !overPanel,
		PointerOver: inside && !overPanel,
		Reduced:     e.reduced,
		Elapsed:     time.Since(e.start).Seconds(),
	}
}

func (e *Engine) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		e.paused = !e.paused
	}
	if rl.IsKeyPressed(rl.KeyM) {
		e.toggleMode()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		e.setReduced(!e.reduced)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		e.panel.Toggle()
	}
}

func (e *Engine) toggleMode() {
	if e.clock.Mode() == systems.ModeCurrents {
		e.clock.SetMode(systems.ModeGesture)
	} else {
		e.clock.SetMode(systems.ModeCurrents)
	}
}

// setReduced switches workload mode and drops the display frame rate with it.
func (e *Engine) setReduced(on bool) {
	e.reduced = on
	if on {
		rl.SetTargetFPS(int32(e.cfg.Screen.ReducedFPS))
	} else {
		rl.SetTargetFPS(int32(e.cfg.Screen.TargetFPS))
	}
}

// Draw blits the persistent canvas and renders the control panel.
func (e *Engine) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: systems.Background.R, G: systems.Background.G, B: systems.Background.B, A: 255})

	e.canvas.Blit()

	action := e.panel.Draw(ui.State{
		Mode:     e.clock.Mode(),
		Paused:   e.paused,
		Reduced:  e.reduced,
		Tick:     e.clock.Ticks(),
		Vortices: e.clock.Vortices().Count(),
		Strokes:  e.clock.Strokes().Count(),
		Ink:      e.clock.Ink().Count(),
	})
	if action.TogglePause {
		e.paused = !e.paused
	}
	if action.ToggleMode {
		e.toggleMode()
	}
	if action.ToggleReduced {
		e.setReduced(!e.reduced)
	}
	if action.Burst {
		w := float32(rl.GetScreenWidth())
		h := float32(rl.GetScreenHeight())
		for i := 0; i < 3; i++ {
			e.clock.Vortices().SpawnRandom(w, h)
		}
	}

	rl.EndDrawing()
	e.perf.RecordFrame()
}
