// Package ui draws the overlay control panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/versalarchitect/currents/systems"
)

const (
	panelWidth  = 200
	panelMargin = 10
	rowHeight   = 28
)

// State is the snapshot the panel renders from.
type State struct {
	Mode     systems.Mode
	Paused   bool
	Reduced  bool
	Tick     int32
	Vortices int
	Strokes  int
	Ink      int
}

// Action carries the controls the user triggered this frame.
type Action struct {
	TogglePause   bool
	ToggleMode    bool
	ToggleReduced bool
	Burst         bool // currents mode only
}

// Panel is the raygui control panel in the top-right corner. Hidden panels
// still report Contains as false so pointer clicks pass through.
type Panel struct {
	visible bool
	bounds  rl.Rectangle
}

// NewPanel creates a visible panel sized for the given screen width.
func NewPanel(screenWidth int) *Panel {
	p := &Panel{visible: true}
	p.Layout(screenWidth)
	return p
}

// Layout repositions the panel after a resize.
func (p *Panel) Layout(screenWidth int) {
	p.bounds = rl.Rectangle{
		X:      float32(screenWidth) - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: 8*rowHeight + 2*panelMargin,
	}
}

// Toggle flips panel visibility.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// Visible reports whether the panel is drawn.
func (p *Panel) Visible() bool {
	return p.visible
}

// Contains reports whether the point is inside the visible panel, used to
// keep panel clicks from spawning vortices or strokes underneath.
func (p *Panel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.bounds)
}

// Draw renders the panel and returns the actions triggered this frame.
func (p *Panel) Draw(s State) Action {
	var a Action
	if !p.visible {
		return a
	}

	rl.DrawRectangleRec(p.bounds, rl.Color{R: 20, G: 20, B: 26, A: 220})
	rl.DrawRectangleLinesEx(p.bounds, 1, rl.DarkGray)

	x := p.bounds.X + panelMargin
	y := p.bounds.Y + panelMargin
	w := p.bounds.Width - 2*panelMargin

	rl.DrawText(fmt.Sprintf("tick %d", s.Tick), int32(x), int32(y), 14, rl.LightGray)
	y += rowHeight

	switch s.Mode {
	case systems.ModeCurrents:
		rl.DrawText(fmt.Sprintf("vortices %d", s.Vortices), int32(x), int32(y), 14, rl.LightGray)
	case systems.ModeGesture:
		rl.DrawText(fmt.Sprintf("strokes %d  ink %d", s.Strokes, s.Ink), int32(x), int32(y), 14, rl.LightGray)
	}
	y += rowHeight

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight - 6}, pauseLabel(s.Paused)) {
		a.TogglePause = true
	}
	y += rowHeight

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight - 6}, modeLabel(s.Mode)) {
		a.ToggleMode = true
	}
	y += rowHeight

	if s.Mode == systems.ModeCurrents {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight - 6}, "Vortex burst") {
			a.Burst = true
		}
	}
	y += rowHeight

	reduced := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}, "Reduced workload", s.Reduced)
	if reduced != s.Reduced {
		a.ToggleReduced = true
	}
	y += rowHeight

	rl.DrawText("space pause  m mode  tab panel", int32(x), int32(y), 10, rl.Gray)

	return a
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

func modeLabel(m systems.Mode) string {
	if m == systems.ModeCurrents {
		return "Switch to gesture"
	}
	return "Switch to currents"
}
