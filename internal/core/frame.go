package core

// Phase is the current state of the game loop.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseCountdown         Phase = "countdown"
	PhaseLevelActive       Phase = "level_active"
	PhaseFeedbackCorrect   Phase = "feedback_correct"
	PhaseFeedbackIncorrect Phase = "feedback_incorrect"
	PhaseGameOver          Phase = "game_over"
)

// Frame is everything the presentation layer needs to draw one frame.
// It is a copy; mutating it has no effect on the game.
type Frame struct {
	Tick      uint64
	Phase     Phase
	Level     int
	Score     int
	Round     int     // Increments every time a level starts
	Target    string  // Word to type; empty outside a level
	Input     string  // Current input field contents
	Remaining int     // Whole seconds left on the level timer
	Total     int     // Budget of the current level
	TimeLeft  float64 // Remaining share of the budget in [0, 1], sub-second precise
	Countdown int     // Number to show during PhaseCountdown
	Feedback  Color   // Input field color
	Editable  bool    // Whether typing is accepted
}

// Presenter receives a new Frame whenever something visible changed.
type Presenter interface {
	Present(f Frame)
}
