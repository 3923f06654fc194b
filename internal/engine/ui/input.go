package ui

import (
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/castleview/internal/engine/input"
)

// keys maps binding names (SDL scancode names) to ImGui keys.
var keys = func() map[string]imgui.Key {
	m := map[string]imgui.Key{
		"Escape": imgui.KeyEscape,
		"Space":  imgui.KeySpace,
		"Tab":    imgui.KeyTab,
		"Return": imgui.KeyEnter,
		"Left":   imgui.KeyLeftArrow,
		"Right":  imgui.KeyRightArrow,
		"Up":     imgui.KeyUpArrow,
		"Down":   imgui.KeyDownArrow,
	}
	for i := 0; i < 26; i++ {
		m[string(rune('A'+i))] = imgui.KeyA + imgui.Key(i)
	}
	for i := 0; i < 10; i++ {
		m[string(rune('0'+i))] = imgui.Key0 + imgui.Key(i)
	}
	for i := 0; i < 12; i++ {
		m["F"+strconv.Itoa(i+1)] = imgui.KeyF1 + imgui.Key(i)
	}
	return m
}()

// Input polls ImGui's IO into input frames.
type Input struct {
	bindings input.Bindings
	width    int
	height   int
}

// NewInput creates a poller for the given bindings.
func NewInput(bindings input.Bindings) *Input {
	return &Input{bindings: bindings}
}

// Poll fills f from the current ImGui frame. Keyboard and mouse are left to
// the GUI while it wants them.
func (p *Input) Poll(f *input.Frame) {
	f.Reset()
	io := imgui.CurrentIO()
	f.DeltaSeconds = io.DeltaTime()

	if w, h := DrawableSize(); w != p.width || h != p.height {
		p.width, p.height = w, h
		f.Resize, f.Width, f.Height = true, w, h
	}

	if !io.WantCaptureKeyboard() {
		for name, a := range p.bindings.Actions {
			if key, ok := keys[name]; ok && IsKeyPressed(key) {
				f.Trigger(a)
			}
		}
	}
	for name, m := range p.bindings.Moves {
		key, ok := keys[name]
		f.SetHeld(m, ok && !io.WantCaptureKeyboard() && IsKeyDown(key))
	}

	if !io.WantCaptureMouse() {
		delta := io.MouseDelta()
		f.MouseDX, f.MouseDY = delta.X, delta.Y
		f.Scroll = io.MouseWheel()

		pos, scale := imgui.MousePos(), io.DisplayFramebufferScale()
		f.CursorX, f.CursorY = pos.X*scale.X, pos.Y*scale.Y
		if a, ok := p.bindings.Actions[input.MouseLeft]; ok && imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
			f.Trigger(a)
		}
	}
}
