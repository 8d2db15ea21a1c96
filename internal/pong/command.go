package pong

// Op is one operation the host can ask of the game between ticks.
type Op int

const (
	OpStart Op = iota
	OpStop
	OpToggleMultiplayer
	OpTogglePowerUps
	OpSetDifficulty
	OpCenterPaddle
	OpNudgePaddle
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	case OpToggleMultiplayer:
		return "toggle_multiplayer"
	case OpTogglePowerUps:
		return "toggle_power_ups"
	case OpSetDifficulty:
		return "set_difficulty"
	case OpCenterPaddle:
		return "center_paddle"
	case OpNudgePaddle:
		return "nudge_paddle"
	default:
		return "unknown"
	}
}

// Command is an Op plus its argument, if any.
type Command struct {
	Op         Op
	Difficulty Difficulty // OpSetDifficulty
	Side       Side       // OpCenterPaddle, OpNudgePaddle
	Value      float64    // centre y for OpCenterPaddle, delta for OpNudgePaddle
}

func Start() Command             { return Command{Op: OpStart} }
func Stop() Command              { return Command{Op: OpStop} }
func ToggleMultiplayer() Command { return Command{Op: OpToggleMultiplayer} }
func TogglePowerUps() Command    { return Command{Op: OpTogglePowerUps} }

func SetDifficulty(d Difficulty) Command {
	return Command{Op: OpSetDifficulty, Difficulty: d}
}

func CenterPaddle(side Side, y float64) Command {
	return Command{Op: OpCenterPaddle, Side: side, Value: y}
}

func NudgePaddle(side Side, dy float64) Command {
	return Command{Op: OpNudgePaddle, Side: side, Value: dy}
}
