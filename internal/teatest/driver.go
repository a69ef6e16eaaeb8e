// Package teatest drives a bubbletea model synchronously in tests.
//
// The driver calls Update directly and drains the returned Cmds in the
// calling goroutine, so a test reads as a sequence of user gestures
// followed by assertions. Timer-driven behaviour (the stepper's arm and
// repeat delays) runs on a fake Clock the test advances explicitly; real
// timers never fire.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// MaxDrainDepth bounds Cmd chains so a model that keeps answering itself
// fails the test instead of hanging it.
const MaxDrainDepth = 100

// cmdTimeout is how long a Cmd may run before it is skipped. Message
// factories and a plan save against in-memory SQLite finish well inside
// it. Cursor blink Cmds block for ~530ms and are dropped.
const cmdTimeout = 100 * time.Millisecond

// Clock is fake time the driver can move forward between gestures.
type Clock interface {
	Advance(d time.Duration)
}

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been drained. The real
	// runtime swallows QuitMsg, so the driver records it itself.
	Quitting bool

	clock Clock
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize sends an initial WindowSizeMsg before any other processing.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithClock lets Advance and Hold move c forward.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// New creates a Driver for model. Call DrainInit to run model.Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit executes the model's Init command and drains the result.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
// Messages sent after the model quit are dropped.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// ── Keyboard ─────────────────────────────────────────────────────────────────

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+s":    tea.KeyCtrlS,
}

// Press sends a named key such as "enter", "esc" or "ctrl+s".
func (d *Driver) Press(name string) {
	d.T.Helper()
	kt, ok := namedKeys[name]
	if !ok {
		d.T.Fatalf("teatest: unknown key %q", name)
	}
	d.Send(tea.KeyMsg{Type: kt})
}

// PressKey sends a single character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one character at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// Backspace presses Backspace n times.
func (d *Driver) Backspace(n int) {
	d.T.Helper()
	for range n {
		d.Press("backspace")
	}
}

// ── Mouse and time ───────────────────────────────────────────────────────────

// MousePress sends a left-button press at screen cell (x, y).
func (d *Driver) MousePress(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

// MouseRelease sends a button release at (x, y). Terminals do not report
// which button was released.
func (d *Driver) MouseRelease(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

// Advance moves the fake clock forward. Timer callbacks run inside it.
func (d *Driver) Advance(dur time.Duration) {
	d.T.Helper()
	if d.clock == nil {
		d.T.Fatal("teatest: Advance needs WithClock")
	}
	d.clock.Advance(dur)
}

// Hold presses at (x, y), keeps the button down for dur and releases it.
func (d *Driver) Hold(x, y int, dur time.Duration) {
	d.T.Helper()
	d.MousePress(x, y)
	d.Advance(dur)
	d.MouseRelease(x, y)
}

// ── Screen ───────────────────────────────────────────────────────────────────

// View returns the model's raw rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

// Screen returns the rendered output with styling removed.
func (d *Driver) Screen() string {
	return ansi.Strip(d.Model.View())
}

// Line returns the first screen line containing s, or "".
func (d *Driver) Line(s string) string {
	for _, line := range strings.Split(d.Screen(), "\n") {
		if strings.Contains(line, s) {
			return line
		}
	}
	return ""
}

// ── Command draining ─────────────────────────────────────────────────────────

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := execCmdWithTimeout(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drainCmd(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drainCmd(next, depth+1)
	}
}

// execCmdWithTimeout runs cmd, returning nil when it does not finish
// within cmdTimeout.
func execCmdWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the bubbles/cursor blink messages, whose types are
// partly unexported.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
