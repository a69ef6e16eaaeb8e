package cli

import (
	"time"

	"github.com/alexanderramin/dentplan/internal/stepper"
	tea "github.com/charmbracelet/bubbletea"
)

// teaScheduler arms real timers whose callbacks are posted back to the
// bubbletea program, so stepper controllers only ever run on the event loop.
type teaScheduler struct {
	send func(tea.Msg)
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) stepper.Timer {
	return time.AfterFunc(d, func() {
		if s.send != nil {
			s.send(stepperFireMsg{fire: f})
		}
	})
}
