package core

// Action is a player intent, decoupled from the key that produced it.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionConfirm          // Space, Enter: click the bead under the cursor
	ActionBack             // B, Escape
	ActionRestart          // R: reload the current level
	ActionNextLevel        // N
	ActionPrevLevel        // P
	ActionQuit             // Q, Ctrl+C

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Confirm",
	"Back", "Restart", "NextLevel", "PrevLevel", "Quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Point is a screen position in character cells.
type Point struct {
	X, Y int
}

// InputFrame collects everything the player did between two ticks.
// The zero value is an empty frame.
type InputFrame struct {
	actions uint32

	// Clicks holds left-button presses in screen coordinates, oldest first.
	Clicks []Point
}

func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.actions |= 1 << a
	}
}

// Click records a mouse press at screen position (x, y).
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.actions&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.actions == 0 && len(f.Clicks) == 0
}

// Clear empties the frame, keeping the click buffer for reuse.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Clicks = f.Clicks[:0]
}

// Clone returns a copy that shares no storage with f.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{actions: f.actions, Clicks: append([]Point(nil), f.Clicks...)}
}
