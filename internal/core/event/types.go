package event

import (
	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

// Outbound notifications. Every event carries the tick it happened on.

type TickAdvanced struct {
	Tick tick.Tick
}

type HealthChanged struct {
	Tick    tick.Tick
	Actor   ecs.EntityID
	Current int
	Max     int
}

type Damaged struct {
	Tick     tick.Tick
	Actor    ecs.EntityID
	Amount   int
	Attacker ecs.EntityID // zero when the damage has no combatant source
}

type Died struct {
	Tick  tick.Tick
	Actor ecs.EntityID
}

type ActionCompleted struct {
	Tick  tick.Tick
	Actor ecs.EntityID
	Kind  string
}

type ResourceDepleted struct {
	Tick tick.Tick
	Node ecs.EntityID
}

type ResourceRespawned struct {
	Tick tick.Tick
	Node ecs.EntityID
}
