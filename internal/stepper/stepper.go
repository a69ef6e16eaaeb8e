// Package stepper implements a bounded integer adjuster with single-step and
// press-and-hold auto-repeat semantics.
//
// A Controller moves through three phases. PressIn applies one step right
// away and arms a one-shot timer (ArmDelay). If the press is still held when
// it fires, the controller starts repeating, applying one step every
// RepeatInterval. PressOut cancels whatever timer is pending and returns to
// Idle. Every step clamps to [Min, Max].
//
// A Controller is not safe for concurrent use. It must be driven from one
// goroutine, and its Scheduler must deliver timer callbacks on that same
// goroutine (an event loop, or a manual clock in tests).
package stepper

import "time"

const (
	DefaultMin            = 1
	DefaultMax            = 20
	DefaultArmDelay       = 500 * time.Millisecond
	DefaultRepeatInterval = 150 * time.Millisecond
)

type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

func (d Direction) delta() int {
	switch d {
	case Up:
		return 1
	case Down:
		return -1
	default:
		return 0
	}
}

type Phase int

const (
	Idle Phase = iota
	Pressed
	Repeating
)

func (p Phase) String() string {
	switch p {
	case Pressed:
		return "pressed"
	case Repeating:
		return "repeating"
	default:
		return "idle"
	}
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from running if it has not started.
	// It reports whether the call stopped the timer.
	Stop() bool
}

// Scheduler arms one-shot timers.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// State is a read-only view of a Controller.
type State struct {
	Value       int
	Min         int
	Max         int
	Direction   Direction
	IsRepeating bool
}

// Options configures a Controller. Zero Min and Max select the defaults.
type Options struct {
	Min            int
	Max            int
	Value          int
	ArmDelay       time.Duration
	RepeatInterval time.Duration
	// OnChange runs after every step that changes the value.
	OnChange func(value int)
}

type Controller struct {
	sched    Scheduler
	min      int
	max      int
	arm      time.Duration
	repeat   time.Duration
	onChange func(int)

	value int
	dir   Direction
	phase Phase

	timer Timer
	// gen is bumped whenever the pending timer is replaced or cancelled.
	// A callback carrying an older gen is dropped, which covers a fire that
	// was already queued on the event loop when Stop ran.
	gen    uint64
	closed bool
}

func New(sched Scheduler, opts Options) *Controller {
	c := &Controller{
		sched:    sched,
		min:      opts.Min,
		max:      opts.Max,
		arm:      opts.ArmDelay,
		repeat:   opts.RepeatInterval,
		onChange: opts.OnChange,
	}
	if c.min == 0 && c.max == 0 {
		c.min, c.max = DefaultMin, DefaultMax
	}
	if c.max < c.min {
		c.max = c.min
	}
	if c.arm <= 0 {
		c.arm = DefaultArmDelay
	}
	if c.repeat <= 0 {
		c.repeat = DefaultRepeatInterval
	}
	c.value = c.clamp(opts.Value)
	return c
}

// PressIn starts a press in dir. A press while another is active releases
// the previous one first.
func (c *Controller) PressIn(dir Direction) {
	if c.closed || dir == None {
		return
	}
	if c.phase != Idle {
		c.release()
	}
	c.dir = dir
	c.phase = Pressed
	c.step()
	// OnChange may have released or closed the controller.
	if c.phase != Pressed {
		return
	}
	c.schedule(c.arm, c.startRepeating)
}

// PressOut ends the current press. No tick is applied after it returns.
func (c *Controller) PressOut() {
	if c.closed {
		return
	}
	c.release()
}

// Step applies a single clamped step without arming any timer.
func (c *Controller) Step(dir Direction) {
	if c.closed || dir == None {
		return
	}
	saved := c.dir
	c.dir = dir
	c.step()
	c.dir = saved
}

// SetValue syncs the controller with a value edited elsewhere. OnChange is
// not called.
func (c *Controller) SetValue(v int) {
	c.value = c.clamp(v)
}

// Close cancels any pending timer. Every later input is ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.release()
}

func (c *Controller) Value() int   { return c.value }
func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) State() State {
	return State{
		Value:       c.value,
		Min:         c.min,
		Max:         c.max,
		Direction:   c.dir,
		IsRepeating: c.phase == Repeating,
	}
}

func (c *Controller) startRepeating() {
	if c.phase != Pressed {
		return
	}
	c.phase = Repeating
	c.schedule(c.repeat, c.tick)
}

func (c *Controller) tick() {
	if c.phase != Repeating {
		return
	}
	c.step()
	if c.phase != Repeating {
		return
	}
	c.schedule(c.repeat, c.tick)
}

func (c *Controller) step() {
	next := c.clamp(c.value + c.dir.delta())
	if next == c.value {
		return
	}
	c.value = next
	if c.onChange != nil {
		c.onChange(next)
	}
}

func (c *Controller) schedule(d time.Duration, fire func()) {
	c.gen++
	gen := c.gen
	c.timer = c.sched.AfterFunc(d, func() {
		if c.closed || gen != c.gen {
			return
		}
		c.timer = nil
		fire()
	})
}

func (c *Controller) release() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.dir = None
	c.phase = Idle
}

func (c *Controller) clamp(v int) int {
	return max(c.min, min(c.max, v))
}
