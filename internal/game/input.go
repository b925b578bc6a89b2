package game

import (
	"context"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/battlearena/internal/battle"
	"github.com/samdwyer/battlearena/internal/gamedata"
	"github.com/samdwyer/battlearena/internal/ui"
)

// Input turns key presses and clicks into engine calls. It holds only the
// roster cursor, the tuning focus and the last notice; the battle itself
// lives in the engine.
type Input struct {
	engine *battle.Engine
	roster *gamedata.CharacterRegistry
	cursor int
	focus  int
	status string
}

// NewInput creates an input handler for engine and roster.
func NewInput(engine *battle.Engine, roster *gamedata.CharacterRegistry) *Input {
	return &Input{engine: engine, roster: roster}
}

// View builds the frame to draw for snap.
func (in *Input) View(snap battle.Snapshot) ui.View {
	return ui.View{
		Snapshot: snap,
		Roster:   in.roster.All(),
		Cursor:   in.cursor,
		Focus:    in.focus,
		Status:   in.status,
	}
}

// HandleKey processes one key press. It returns false when the player quits.
func (in *Input) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyUp:
		in.moveCursor(-1)
	case tcell.KeyDown:
		in.moveCursor(1)
	case tcell.KeyEnter:
		in.pick(in.cursor)
	case tcell.KeyTab:
		in.focus = 1 - in.focus

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			in.pick(in.cursor)
		case '1':
			in.focus = 0
		case '2':
			in.focus = 1
		case 's', 'S':
			in.start(ctx)
		case 'r', 'R':
			in.engine.Reset(ctx)
			in.status = "Reset"
		case 'h':
			in.tuneHealth(-battle.HealthStep)
		case 'H':
			in.tuneHealth(battle.HealthStep)
		case 'a':
			in.tuneSpeed(-battle.SpeedStep, in.engine.SetAttackSpeed, "attack")
		case 'A':
			in.tuneSpeed(battle.SpeedStep, in.engine.SetAttackSpeed, "attack")
		case 'm':
			in.tuneSpeed(-battle.SpeedStep, in.engine.SetMoveSpeed, "move")
		case 'M':
			in.tuneSpeed(battle.SpeedStep, in.engine.SetMoveSpeed, "move")
		}
	}
	return true
}

// HandleMouse picks the roster entry under a left click.
func (in *Input) HandleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	row := y - ui.RosterY
	if x >= ui.ArenaX || row < 0 || row >= in.roster.Count() {
		return
	}
	in.cursor = row
	in.pick(row)
}

func (in *Input) moveCursor(delta int) {
	n := in.roster.Count()
	if n == 0 {
		return
	}
	in.cursor = (in.cursor + delta + n) % n
}

func (in *Input) pick(index int) {
	def := in.roster.GetByIndex(index)
	if def == nil {
		return
	}
	slot := in.engine.Pick(def)
	if slot < 0 {
		in.status = "Reset the battle before picking new fighters"
		return
	}
	in.focus = slot
	in.status = fmt.Sprintf("%s takes slot %d", def.Name, slot+1)
}

func (in *Input) start(ctx context.Context) {
	switch {
	case in.engine.Start(ctx):
		in.status = "Fight!"
	case !in.engine.Snapshot().Ready():
		in.status = "Pick two fighters first"
	default:
		in.status = "A battle is already under way"
	}
}

func (in *Input) tuneHealth(delta int) {
	stats, err := in.engine.Stats(in.focus)
	if err == nil {
		err = in.engine.SetHealth(in.focus, stats.MaxHP+delta)
	}
	in.report(err, "health")
}

func (in *Input) tuneSpeed(delta float64, set func(int, float64) error, what string) {
	stats, err := in.engine.Stats(in.focus)
	if err == nil {
		current := stats.AttackSpeed
		if what == "move" {
			current = stats.MoveSpeed
		}
		err = set(in.focus, math.Round((current+delta)*10)/10)
	}
	in.report(err, what)
}

func (in *Input) report(err error, what string) {
	if err != nil {
		in.status = err.Error()
		return
	}
	in.status = fmt.Sprintf("Slot %d %s updated", in.focus+1, what)
}
