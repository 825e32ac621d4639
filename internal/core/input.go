package core

// Action represents a discrete command, abstracted from physical key presses.
// Continuous movement goes through InputState instead.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter, Space - confirm selection in a scene
	ActionBack           // B - leave the game for the landing scene
	ActionRestart        // R key - start a fresh game
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P, Escape - pause/unpause game
	ActionMute           // M - toggle audio
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// Key is a directional key tracked by InputState.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Button identifies an on-screen touch control.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// InputState is the merged view of keyboard, pointer and touch-button input.
// Handlers only stage values here; the game loop reads it once per frame.
// When PointerActive is set the pointer position overrides the directional flags.
type InputState struct {
	Left, Right   bool
	Up, Down      bool
	PointerActive bool
	PointerX      float64 // Logical surface coordinates
	PointerY      float64
}
