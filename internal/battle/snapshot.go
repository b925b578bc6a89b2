package battle

import (
	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/world"
)

// Snapshot is an immutable view of a battle after a state change.
// Fighters are copies; Def pointers are shared and read-only.
type Snapshot struct {
	BattleID  string
	Phase     Phase
	Countdown int // Seconds left while in PhaseCountdown
	Tick      int
	Arena     world.Arena
	Fighters  [2]entity.Fighter
	Selected  [2]bool
	Log       []string
	Winner    int // Slot of the winner in PhaseFinished, else NoWinner
}

// WinnerFighter returns the winning fighter once the battle is finished.
func (s Snapshot) WinnerFighter() (entity.Fighter, bool) {
	if s.Phase != PhaseFinished || s.Winner < 0 || s.Winner >= len(s.Fighters) {
		return entity.Fighter{}, false
	}
	return s.Fighters[s.Winner], true
}

// Ready reports whether both slots hold a fighter.
func (s Snapshot) Ready() bool {
	return s.Selected[0] && s.Selected[1]
}
