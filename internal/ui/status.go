// Package ui draws the side panel and the game-over screen.
package ui

import (
	"fmt"
	"strconv"
	"time"

	"lionhunt/internal/core"
	"lionhunt/internal/world"
)

// GameGroup describes the running game for the HUD. A negative remaining
// duration means the game is untimed.
func GameGroup(variant string, tick int, remaining time.Duration) core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Game",
		Params: []core.Parameter{
			{Key: "variant", Label: "Variant", Value: variant},
			{Key: "tick", Label: "Tick", Value: strconv.Itoa(tick)},
			{Key: "time_left", Label: "Time left", Value: FormatRemaining(remaining)},
		},
	}
}

// FormatRemaining renders a countdown as seconds with one decimal, or "--"
// for untimed games.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "--"
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// GameOverLines returns the headline and score line for a finished game.
func GameOverLines(reason world.Reason, score int) (string, string) {
	msg := reason.Message()
	if msg == "" {
		msg = world.Quit.Message()
	}
	return msg, fmt.Sprintf("Score: %d", score)
}
