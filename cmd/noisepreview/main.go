// Flow field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/versalarchitect/currents/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// FlowParams holds the noise field parameters.
type FlowParams struct {
	FlowScale float32
	TimeScale float32
	Turns     float32
	Seed      int64
}

func defaultParams() FlowParams {
	return FlowParams{
		FlowScale: 0.003,
		TimeScale: 0.0002,
		Turns:     2.0,
		Seed:      1,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	field := systems.NewSimplexField(params.Seed)

	gridSize := 256
	angles := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var tick float32 = 0
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			tick += 60 * rl.GetFrameTime()
			needsRegen = true
		}

		if needsRegen {
			generateAngles(angles, gridSize, field, params, tick)
			updateTexture(texture, angles, gridSize)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		drawArrows(angles, gridSize)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Tick: %.0f", tick), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Hue = flow angle, arrows sampled every 32px", 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Flow scale slider
		rl.DrawText("Flow scale (spatial frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFlowScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0005", "0.02",
			params.FlowScale, 0.0005, 0.02,
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.FlowScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFlowScale != params.FlowScale {
			params.FlowScale = newFlowScale
			needsRegen = true
		}
		panelY += 35

		// Time scale slider
		rl.DrawText("Time scale (animation drift)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTimeScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.002",
			params.TimeScale, 0, 0.002,
		)
		rl.DrawText(fmt.Sprintf("%.5f", params.TimeScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newTimeScale != params.TimeScale {
			params.TimeScale = newTimeScale
		}
		panelY += 35

		// Turns slider
		rl.DrawText("Turns (rotations over noise range)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTurns := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "6.0",
			params.Turns, 0.5, 6.0,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Turns), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newTurns != params.Turns {
			params.Turns = newTurns
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			tick = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			field = systems.NewSimplexField(params.Seed)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			field = systems.NewSimplexField(params.Seed)
			tick = 0
			needsRegen = true
		}
		panelY += 55

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"noise:",
			fmt.Sprintf("  flow_scale: %.4f", params.FlowScale),
			fmt.Sprintf("  time_scale: %.5f", params.TimeScale),
			fmt.Sprintf("  turns: %.1f", params.Turns),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf("noise:\n  flow_scale: %.4f\n  time_scale: %.5f\n  turns: %.1f",
				params.FlowScale, params.TimeScale, params.Turns)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// generateAngles samples the field into flow angles in [0, turns*2pi). The
// preview grid maps onto the default canvas extent so slider values match
// what the simulation sees.
func generateAngles(angles []float64, size int, field systems.Field, params FlowParams, tick float32) {
	worldScale := 1280.0 / float64(size)
	t := float64(tick) * float64(params.TimeScale)

	for y := 0; y < size; y++ {
		wy := float64(y) * worldScale * float64(params.FlowScale)
		for x := 0; x < size; x++ {
			wx := float64(x) * worldScale * float64(params.FlowScale)
			sample := field.Sample(wx, wy, t)
			angles[y*size+x] = sample * float64(params.Turns) * 2 * math.Pi
		}
	}
}

// drawArrows overlays direction markers on a coarse grid.
func drawArrows(angles []float64, size int) {
	const step = 16 // grid cells between arrows
	scale := float32(previewSize) / float32(size)

	for y := step / 2; y < size; y += step {
		for x := step / 2; x < size; x += step {
			a := angles[y*size+x]
			cx := 10 + float32(x)*scale
			cy := 10 + float32(y)*scale
			dx := float32(math.Cos(a)) * 10
			dy := float32(math.Sin(a)) * 10
			rl.DrawLineEx(
				rl.Vector2{X: cx - dx, Y: cy - dy},
				rl.Vector2{X: cx + dx, Y: cy + dy},
				1.5,
				rl.Color{R: 255, G: 255, B: 255, A: 180},
			)
		}
	}
}

// updateTexture maps angles to hue so direction reads as color.
func updateTexture(texture rl.Texture2D, angles []float64, size int) {
	pixels := make([]color.RGBA, size*size)
	for i, a := range angles {
		hue := math.Mod(a, 2*math.Pi) / (2 * math.Pi)
		r, g, b := hueToRGB(hue)
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

// hueToRGB converts a hue in [0,1) to RGB at fixed saturation and value.
func hueToRGB(h float64) (uint8, uint8, uint8) {
	const s, v = 0.7, 0.85
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}
