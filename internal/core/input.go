package core

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Move the keyboard cursor up
	ActionDown           // Move the keyboard cursor down
	ActionLeft           // Move the keyboard cursor left
	ActionRight          // Move the keyboard cursor right
	ActionSelect         // Click at the keyboard cursor
	ActionRestart        // Start a new board
	ActionPause          // Toggle pause
	ActionQuit           // Leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input collected for one frame: keyboard actions, the
// pointer position in screen cells and the time elapsed since the last frame.
type InputFrame struct {
	Actions map[Action]bool

	PointerX   int
	PointerY   int
	HasPointer bool
	Clicked    bool

	DT float64 // Seconds since the previous frame
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Point records the pointer position for this frame.
func (f *InputFrame) Point(x, y int) {
	f.PointerX = x
	f.PointerY = y
	f.HasPointer = true
}

// Clear resets actions and the click for the next frame.
// The pointer position persists; the terminal only reports it when it moves.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Clicked = false
	f.DT = 0
}
