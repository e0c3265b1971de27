package system

import (
	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// PhaseCleanup.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Phase() tick.Phase { return tick.PhaseCleanup }

func (s *CleanupSystem) OnTick(_ tick.Tick) {
	s.world.FlushDestroyQueue()
}
