package world

const (
	// Default arena dimensions
	DefaultWidth  = 500.0
	DefaultHeight = 300.0

	DefaultFighterRadius = 20.0 // Half the width of a fighter sprite
	DefaultMargin        = 40.0 // Vertical keep-out band at top and bottom
	DefaultStartInset    = 80.0 // Distance of the start positions from the side walls
)

// Arena is the rectangle [0, Width] x [0, Height] that fighters occupy.
type Arena struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	FighterRadius float64 `yaml:"fighterRadius"`
	Margin        float64 `yaml:"margin"`
	StartInset    float64 `yaml:"startInset"`
}

// DefaultArena returns the standard arena.
func DefaultArena() Arena {
	return Arena{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		FighterRadius: DefaultFighterRadius,
		Margin:        DefaultMargin,
		StartInset:    DefaultStartInset,
	}
}

// LaneY is the vertical line both fighters fight on.
func (a Arena) LaneY() float64 {
	return a.Height / 2
}

// MinX and MaxX bound a fighter's centre so its body stays inside the walls.
func (a Arena) MinX() float64 { return a.FighterRadius }
func (a Arena) MaxX() float64 { return a.Width - a.FighterRadius }

// MinY and MaxY bound the drawn vertical position.
func (a Arena) MinY() float64 { return a.Margin }
func (a Arena) MaxY() float64 { return a.Height - a.Margin }

// ClampX keeps x inside [FighterRadius, Width - FighterRadius].
func (a Arena) ClampX(x float64) float64 {
	return clamp(x, a.MinX(), a.MaxX())
}

// ClampY keeps y inside [Margin, Height - Margin].
func (a Arena) ClampY(y float64) float64 {
	return clamp(y, a.MinY(), a.MaxY())
}

// Clamp returns p with both coordinates clamped.
func (a Arena) Clamp(p Point) Point {
	return Point{X: a.ClampX(p.X), Y: a.ClampY(p.Y)}
}

// Contains reports whether p is within the arena rectangle.
func (a Arena) Contains(p Point) bool {
	return p.X >= 0 && p.X <= a.Width && p.Y >= 0 && p.Y <= a.Height
}

// StartPositions returns the left and right corner positions fighters begin at.
func (a Arena) StartPositions() (left, right Point) {
	y := a.ClampY(a.LaneY())
	left = Point{X: a.ClampX(a.StartInset), Y: y}
	right = Point{X: a.ClampX(a.Width - a.StartInset), Y: y}
	return left, right
}

func clamp(value, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
