package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/pong/internal/pong"
)

// Action is what a terminal event asks the front-end to do.
type Action int

const (
	ActNone Action = iota
	ActCommand
	ActCopy
	ActQuit
)

// Input translates tcell events into commands. It mirrors the multiplayer
// switch itself so it never reads game state from the input goroutine.
type Input struct {
	screen      tcell.Screen
	height      float64
	keyStep     float64
	multiplayer bool
}

func NewInput(s tcell.Screen, tableHeight, keyStep float64, multiplayer bool) *Input {
	return &Input{screen: s, height: tableHeight, keyStep: keyStep, multiplayer: multiplayer}
}

// Translate maps one event. The command is only meaningful for ActCommand.
func (in *Input) Translate(ev tcell.Event) (Action, pong.Command) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev)
	case *tcell.EventMouse:
		_, y := ev.Position()
		_, rows := in.screen.Size()
		rows -= hudRows
		if rows < 1 || y >= rows {
			return ActNone, pong.Command{}
		}
		g := grid{rows: rows, h: in.height}
		return ActCommand, pong.CenterPaddle(pong.SidePlayer, g.tableY(y))
	}
	return ActNone, pong.Command{}
}

func (in *Input) key(ev *tcell.EventKey) (Action, pong.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActQuit, pong.Command{}
	case tcell.KeyEnter:
		return ActCommand, pong.Start()
	case tcell.KeyUp:
		if in.multiplayer {
			return ActCommand, pong.NudgePaddle(pong.SideOpponent, -in.keyStep)
		}
	case tcell.KeyDown:
		if in.multiplayer {
			return ActCommand, pong.NudgePaddle(pong.SideOpponent, in.keyStep)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ActQuit, pong.Command{}
		case 'p':
			return ActCommand, pong.Stop()
		case 'm':
			in.multiplayer = !in.multiplayer
			return ActCommand, pong.ToggleMultiplayer()
		case 'u':
			return ActCommand, pong.TogglePowerUps()
		case '1':
			return ActCommand, pong.SetDifficulty(pong.DifficultyEasy)
		case '2':
			return ActCommand, pong.SetDifficulty(pong.DifficultyMedium)
		case '3':
			return ActCommand, pong.SetDifficulty(pong.DifficultyHard)
		case 'w':
			return ActCommand, pong.NudgePaddle(pong.SidePlayer, -in.keyStep)
		case 's':
			return ActCommand, pong.NudgePaddle(pong.SidePlayer, in.keyStep)
		case 'c':
			return ActCopy, pong.Command{}
		}
	}
	return ActNone, pong.Command{}
}
