package world

import (
	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

// Actor holds the in-memory state of one spawned actor.
// Accessed only from the game loop goroutine.
type Actor struct {
	ID         ecs.EntityID
	TemplateID int32
	Name       string

	Pos        *component.Position
	Health     *combat.Health
	Controller *action.Controller
	Combatant  *combat.Combatant    // nil unless the template fights on its own
	Skills     *component.Skills    // nil unless the template gathers
	Inventory  *component.Inventory // nil unless the template gathers
	Mover      *component.Mover     // nil for actors that cannot walk

	resolver combat.SwingResolver
	roller   action.GatherRoller

	approachTarget ecs.EntityID // attack once the mover queue drains
	chop           *tick.Handle
	chopNode       ecs.EntityID
	bridges        []*combat.Subscription
}

// Location implements action.Locator.
func (a *Actor) Location() (x, z float64) { return a.Pos.Location() }

// Chopping reports whether a single-shot chop is in flight.
func (a *Actor) Chopping() bool { return a.chop.Pending() }
