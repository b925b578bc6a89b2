package combat

import (
	"math"

	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/world"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b world.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// InAttackRange reports whether target is within reach of attacker.
func InAttackRange(attacker, target world.Point, reach float64) bool {
	return Distance(attacker, target) <= reach
}

// IsHit reports whether attacker's current swing reaches target.
func IsHit(attacker, target *entity.Fighter) bool {
	return attacker.Attacking && InAttackRange(attacker.Pos, target.Pos, attacker.AttackRange())
}
