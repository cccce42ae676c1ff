package sim

// Command is one discrete input to the simulator: a click, a key, or
// nothing at all. CommandNone still drives the state machine, which is
// how transient states fall through to the next stable one.
type Command int

const (
	CommandNone Command = iota
	CommandConfirm
	CommandCancel
	CommandAdd
	CommandRemove
	CommandReset
	CommandToggleTranslate
	CommandToggleBounded
	CommandToggleTrajectory
	CommandTogglePause
	CommandToggleEject
	CommandSelectNext
	CommandSelectPrevious
	CommandNextFrame
	CommandZoomIn
	CommandZoomOut
	CommandMoreOversampling
	CommandLessOversampling
)

// State is the interaction mode of the simulator. Move and Translate
// are stable; the others are transient and resolve on the next tick.
type State int

const (
	StateMove State = iota
	StateTranslate
	StateAdd
	StateRemove
	StateReset
	StateWaitDrop
	StateWaitSpeed
	StateCancelDrop
)

func (s State) String() string {
	switch s {
	case StateTranslate:
		return "translate"
	case StateAdd:
		return "add"
	case StateRemove:
		return "remove"
	case StateReset:
		return "reset"
	case StateWaitDrop:
		return "drop"
	case StateWaitSpeed:
		return "speed"
	case StateCancelDrop:
		return "cancel"
	default:
		return "move"
	}
}

// Placing reports whether a provisional body is being positioned; the
// selection must bypass it while it lasts.
func (s State) Placing() bool {
	return s == StateWaitDrop || s == StateWaitSpeed
}

// Next is the transition function. CommandReset preempts from any
// state; transient states resolve regardless of the command.
func (s State) Next(cmd Command) State {
	if cmd == CommandReset {
		return StateReset
	}
	switch s {
	case StateReset, StateRemove, StateCancelDrop:
		return StateMove
	case StateAdd:
		return StateWaitDrop
	case StateMove:
		switch cmd {
		case CommandAdd:
			return StateAdd
		case CommandRemove:
			return StateRemove
		case CommandToggleTranslate:
			return StateTranslate
		}
	case StateTranslate:
		if cmd == CommandToggleTranslate {
			return StateMove
		}
	case StateWaitDrop:
		switch cmd {
		case CommandConfirm:
			return StateWaitSpeed
		case CommandCancel:
			return StateCancelDrop
		}
	case StateWaitSpeed:
		switch cmd {
		case CommandConfirm:
			return StateMove
		case CommandCancel:
			return StateWaitDrop
		}
	}
	return s
}
