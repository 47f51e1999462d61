package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// SpinnerTickMsg advances the waiting indicator. Ticks from an indicator
// that has since stopped carry a stale ID and are dropped.
type SpinnerTickMsg struct {
	ID int
}

// waitingVerbs cycle while a reply is pending
var waitingVerbs = []string{
	"Thinking",
	"Searching your documents",
	"Reading",
	"Retrieving",
	"Cross-referencing",
	"Summarizing",
	"Looking it up",
}

func randomWaitingVerb() string {
	return waitingVerbs[rand.Intn(len(waitingVerbs))]
}

// spinnerFrames are the characters used for the shimmering spinner animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// SpinnerTick returns a command that sends a tick message after a delay
func SpinnerTick(id int) tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id}
	})
}

// renderWaiting renders "✺ Thinking... (3s)".
func renderWaiting(verb string, frameIdx int, elapsed time.Duration) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)
	verbStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)
	metaStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	return spinnerStyle.Render(frame) + " " + verbStyle.Render(verb+"...") + " " +
		metaStyle.Render("("+formatElapsed(elapsed)+")")
}

// formatElapsed formats a duration for display (e.g., "12s", "1m30s")
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
