package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/battlearena/internal/battle"
	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/gamedata"
	"github.com/samdwyer/battlearena/internal/world"
)

// Layout of the battle screen, in terminal cells.
const (
	RosterX    = 1
	RosterY    = 2
	ArenaX     = 24 // Left border of the arena box
	ArenaY     = 2  // Top border of the arena box
	ArenaCols  = 60 // Inner width of the arena box
	ArenaRows  = 15 // Inner height of the arena box
	healthBarW = 20
)

// HelpText lists the key bindings shown at the bottom of the screen.
const HelpText = "↑/↓ choose  enter pick  tab slot  h/H health  a/A attack  m/M move  s start  r reset  q quit"

// View is everything the renderer draws for one frame.
type View struct {
	Snapshot battle.Snapshot
	Roster   []gamedata.CharacterDef
	Cursor   int    // Highlighted roster row
	Focus    int    // Slot the tuning keys apply to
	Status   string // Last notice, such as a rejected tuning change
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the roster, the arena and both fighters' stats.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	snap := v.Snapshot
	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	x := r.screen.DrawText(RosterX, 0, "BATTLE ARENA", title)
	r.screen.DrawText(x+2, 0, "["+snap.Phase.String()+"]", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.renderRoster(v)
	r.renderArena(snap)
	y := r.renderStats(v, ArenaY+ArenaRows+3)
	r.renderLog(snap.Log, y+1)

	_, h := r.screen.Size()
	if v.Status != "" {
		r.RenderMessage(v.Status, h-2)
	}
	r.screen.DrawText(RosterX, h-1, HelpText, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))

	r.screen.Show()
}

// renderRoster lists the characters with the cursor and slot markers.
func (r *Renderer) renderRoster(v View) {
	snap := v.Snapshot
	for i := range v.Roster {
		def := &v.Roster[i]
		y := RosterY + i

		marker := "  "
		if i == v.Cursor {
			marker = "> "
		}
		x := r.screen.DrawText(RosterX, y, marker, tcell.StyleDefault.Foreground(tcell.ColorYellow))

		style := tcell.StyleDefault.Foreground(def.TCellColor())
		if i == v.Cursor {
			style = style.Bold(true)
		}
		x = r.screen.DrawText(x, y, string(def.SymbolRune())+" "+def.Name, style)

		for slot, f := range snap.Fighters {
			if snap.Selected[slot] && f.Def != nil && f.Def.ID == def.ID {
				x = r.screen.DrawText(x+1, y, fmt.Sprintf("[%d]", slot+1), tcell.StyleDefault.Foreground(tcell.ColorWhite))
			}
		}
	}
}

// renderArena draws the arena box, both fighters and any overlay text.
func (r *Renderer) renderArena(snap battle.Snapshot) {
	border := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	right, bottom := ArenaX+ArenaCols+1, ArenaY+ArenaRows+1
	for x := ArenaX + 1; x < right; x++ {
		r.screen.SetContent(x, ArenaY, '─', border)
		r.screen.SetContent(x, bottom, '─', border)
	}
	for y := ArenaY + 1; y < bottom; y++ {
		r.screen.SetContent(ArenaX, y, '│', border)
		r.screen.SetContent(right, y, '│', border)
	}
	r.screen.SetContent(ArenaX, ArenaY, '┌', border)
	r.screen.SetContent(right, ArenaY, '┐', border)
	r.screen.SetContent(ArenaX, bottom, '└', border)
	r.screen.SetContent(right, bottom, '┘', border)

	for slot := range snap.Fighters {
		if snap.Selected[slot] {
			r.renderFighter(snap.Arena, &snap.Fighters[slot])
		}
	}

	switch snap.Phase {
	case battle.PhaseCountdown:
		r.centerText(fmt.Sprintf("%d", snap.Countdown), tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	case battle.PhaseFinished:
		if w, ok := snap.WinnerFighter(); ok {
			r.centerText(w.Name+" wins!", tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true))
		}
	}
}

// renderFighter draws a fighter's symbol and, mid-swing, its weapon on the
// side it faces.
func (r *Renderer) renderFighter(arena world.Arena, f *entity.Fighter) {
	cx, cy := ArenaCell(arena, f.DisplayPos(arena), ArenaCols, ArenaRows)
	x, y := ArenaX+1+cx, ArenaY+1+cy

	style := tcell.StyleDefault.Foreground(f.Def.TCellColor()).Bold(true)
	symbol := f.Def.SymbolRune()
	if !f.Alive {
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		symbol = 'x'
	}
	r.screen.SetContent(x, y, symbol, style)

	if f.Attacking && f.Alive {
		wx := x + f.Facing
		if wx > ArenaX && wx <= ArenaX+ArenaCols {
			weapon := '/'
			if f.Facing == entity.FacingLeft {
				weapon = '\\'
			}
			r.screen.SetContent(wx, y, weapon, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		}
	}
}

func (r *Renderer) centerText(text string, style tcell.Style) {
	n := len([]rune(text))
	x := ArenaX + 1 + (ArenaCols-n)/2
	r.screen.DrawText(x, ArenaY+1+ArenaRows/4, text, style)
}

// renderStats draws one line per slot with health bar and multipliers.
// It returns the row below the last line.
func (r *Renderer) renderStats(v View, y int) int {
	snap := v.Snapshot
	for slot, f := range snap.Fighters {
		prefix := fmt.Sprintf(" [%d] ", slot+1)
		if slot == v.Focus {
			prefix = fmt.Sprintf("*[%d] ", slot+1)
		}
		x := r.screen.DrawText(RosterX, y, prefix, tcell.StyleDefault.Foreground(tcell.ColorYellow))

		if !snap.Selected[slot] {
			r.screen.DrawText(x, y, "(pick a fighter)", tcell.StyleDefault.Foreground(tcell.ColorGray))
			y++
			continue
		}

		x = r.screen.DrawText(x, y, fmt.Sprintf("%-13s", f.Name), tcell.StyleDefault.Foreground(f.Def.TCellColor()))
		x = r.screen.DrawText(x, y, HealthBar(f.HealthFraction(), healthBarW), tcell.StyleDefault.Foreground(healthColor(f.HealthFraction())))
		r.screen.DrawText(x+1, y, fmt.Sprintf("%3d/%-3d  ATK %.1f  MOV %.1f", f.HP, f.MaxHP, f.AttackSpeed, f.MoveSpeed), tcell.StyleDefault)
		y++
	}
	return y
}

// renderLog draws the battle log, oldest entry first.
func (r *Renderer) renderLog(entries []string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, entry := range entries {
		r.screen.DrawText(RosterX, y+i, entry, style)
	}
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(RosterX, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// ArenaCell maps an arena position to a cell inside a cols x rows box.
func ArenaCell(arena world.Arena, p world.Point, cols, rows int) (x, y int) {
	return scaleToCells(p.X, arena.Width, cols), scaleToCells(p.Y, arena.Height, rows)
}

func scaleToCells(v, span float64, cells int) int {
	if cells <= 1 || span <= 0 {
		return 0
	}
	c := int(math.Round(v / span * float64(cells-1)))
	return max(0, min(cells-1, c))
}

// HealthBar renders a health fraction as a bar of width cells.
func HealthBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func healthColor(fraction float64) tcell.Color {
	switch {
	case fraction > 0.5:
		return tcell.ColorGreen
	case fraction > 0.25:
		return tcell.ColorYellow
	default:
		return tcell.ColorRed
	}
}
