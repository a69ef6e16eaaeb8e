package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaScheduler_PostsFireToProgram(t *testing.T) {
	msgs := make(chan tea.Msg, 1)
	s := &teaScheduler{send: func(m tea.Msg) { msgs <- m }}

	fired := false
	s.AfterFunc(time.Millisecond, func() { fired = true })

	select {
	case m := <-msgs:
		fire, ok := m.(stepperFireMsg)
		require.True(t, ok)
		// The callback only runs when the loop handles the message.
		assert.False(t, fired)
		fire.fire()
		assert.True(t, fired)
	case <-time.After(time.Second):
		t.Fatal("timer never posted")
	}
}

func TestTeaScheduler_StopPreventsPost(t *testing.T) {
	msgs := make(chan tea.Msg, 1)
	s := &teaScheduler{send: func(m tea.Msg) { msgs <- m }}

	timer := s.AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Empty(t, msgs)
}

func TestStepperHit(t *testing.T) {
	assert.Equal(t, "none", stepperHit(minusCol-1).String())
	assert.Equal(t, "down", stepperHit(minusCol).String())
	assert.Equal(t, "down", stepperHit(minusCol+buttonWidth-1).String())
	assert.Equal(t, "none", stepperHit(minusCol+buttonWidth).String())
	assert.Equal(t, "up", stepperHit(plusCol).String())
	assert.Equal(t, "up", stepperHit(plusCol+buttonWidth-1).String())
	assert.Equal(t, "none", stepperHit(plusCol+buttonWidth).String())
}
