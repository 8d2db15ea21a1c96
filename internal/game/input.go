package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/pong/internal/pong"
)

type binding struct {
	key ebiten.Key
	cmd pong.Command
}

// keyBindings are edge-triggered: a command fires once per press.
var keyBindings = []binding{
	{ebiten.KeyEnter, pong.Start()},
	{ebiten.KeyP, pong.Stop()},
	{ebiten.KeyM, pong.ToggleMultiplayer()},
	{ebiten.KeyU, pong.TogglePowerUps()},
	{ebiten.Key1, pong.SetDifficulty(pong.DifficultyEasy)},
	{ebiten.Key2, pong.SetDifficulty(pong.DifficultyMedium)},
	{ebiten.Key3, pong.SetDifficulty(pong.DifficultyHard)},
}

// handleInput turns key state into commands. pressed is
// ebiten.IsKeyPressed outside tests. C copies the scoreboard directly.
func (g *Game) handleInput(pressed func(ebiten.Key) bool) []pong.Command {
	currentKeys := map[ebiten.Key]bool{}
	var cmds []pong.Command

	for _, b := range keyBindings {
		currentKeys[b.key] = pressed(b.key)
		if currentKeys[b.key] && !g.prevKeys[b.key] {
			cmds = append(cmds, b.cmd)
		}
	}

	currentKeys[ebiten.KeyC] = pressed(ebiten.KeyC)
	if currentKeys[ebiten.KeyC] && !g.prevKeys[ebiten.KeyC] {
		g.copyScoreboard()
	}

	// Held arrows steer the opponent, but only when a human plays it.
	if g.core.Settings().Multiplayer {
		if pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyW) {
			cmds = append(cmds, pong.NudgePaddle(pong.SideOpponent, -g.keyStep))
		}
		if pressed(ebiten.KeyArrowDown) || pressed(ebiten.KeyS) {
			cmds = append(cmds, pong.NudgePaddle(pong.SideOpponent, g.keyStep))
		}
	}

	g.prevKeys = currentKeys
	return cmds
}
