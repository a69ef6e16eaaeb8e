package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// wizardCompleteMsg is sent when a sub-view (picker, form, amount entry)
// finishes. The appModel handles it atomically: pop the sub-view, then run
// nextCmd so its result reaches the view underneath.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// quitMsg ends the program after the views have been torn down.
type quitMsg struct{}

// stepperFireMsg carries a stepper timer callback onto the event loop.
type stepperFireMsg struct {
	fire func()
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// completeWith pops the current sub-view and delivers msg to the view below.
func completeWith(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return wizardCompleteMsg{nextCmd: func() tea.Msg { return msg }}
	}
}

func quit() tea.Msg { return quitMsg{} }
