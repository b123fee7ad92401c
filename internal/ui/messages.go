package ui

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// dismissPopupMsg hides the popup with the given id if it is still shown
type dismissPopupMsg struct {
	id int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
