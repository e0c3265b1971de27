package main

import (
	"math"

	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/resource"
	"github.com/l1jgo/ticksim/internal/world"
	"go.uber.org/zap"
)

// watchEvents logs the notable outbound events at info level.
func watchEvents(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.Died) {
		log.Info("actor died", zap.Uint64("tick", uint64(e.Tick)), zap.Stringer("actor", e.Actor))
	})
	event.Subscribe(bus, func(e event.ActionCompleted) {
		log.Info("action completed",
			zap.Uint64("tick", uint64(e.Tick)),
			zap.Stringer("actor", e.Actor),
			zap.String("kind", e.Kind))
	})
	event.Subscribe(bus, func(e event.ResourceDepleted) {
		log.Info("resource depleted", zap.Uint64("tick", uint64(e.Tick)), zap.Stringer("node", e.Node))
	})
	event.Subscribe(bus, func(e event.ResourceRespawned) {
		log.Info("resource respawned", zap.Uint64("tick", uint64(e.Tick)), zap.Stringer("node", e.Node))
	})
}

// startScenario sends the first gatherer after the nearest hostile, then
// to the nearest available resource once the fight is over.
func startScenario(state *world.State, bus *event.Bus, log *zap.Logger) {
	var hero *world.Actor
	state.EachActor(func(a *world.Actor) {
		if hero == nil && a.Skills != nil {
			hero = a
		}
	})
	if hero == nil {
		log.Info("no gatherer spawned, world idles")
		return
	}

	if foe := nearestActor(state, hero); foe != nil {
		if err := state.Approach(hero.ID, foe.ID); err != nil {
			log.Warn("scenario attack rejected", zap.Error(err))
		}
	} else {
		gatherNearest(state, hero, log)
	}

	event.Subscribe(bus, func(e event.ActionCompleted) {
		if e.Actor != hero.ID {
			return
		}
		if _, alive := state.Actor(hero.ID); !alive || hero.Health.Dead() {
			return
		}
		gatherNearest(state, hero, log)
	})
}

func gatherNearest(state *world.State, hero *world.Actor, log *zap.Logger) {
	if !hero.Inventory.HasSpace() {
		return
	}
	node := nearestNode(state, hero)
	if node == nil {
		return
	}
	if err := state.StartGathering(hero.ID, node.ID()); err != nil {
		log.Warn("scenario gathering rejected", zap.Error(err))
	}
}

func nearestActor(state *world.State, from *world.Actor) *world.Actor {
	var best *world.Actor
	bestDist := math.MaxFloat64
	state.EachActor(func(a *world.Actor) {
		if a.ID == from.ID || a.Combatant == nil || a.Health.Dead() {
			return
		}
		if d := distance(from, a); d < bestDist {
			best, bestDist = a, d
		}
	})
	return best
}

func nearestNode(state *world.State, from *world.Actor) *resource.Node {
	var best *resource.Node
	bestDist := math.MaxFloat64
	state.EachNode(func(n *resource.Node) {
		if !n.Available() {
			return
		}
		if d := distance(from, n); d < bestDist {
			best, bestDist = n, d
		}
	})
	return best
}

func distance(a, b action.Locator) float64 {
	ax, az := a.Location()
	bx, bz := b.Location()
	return math.Hypot(ax-bx, az-bz)
}

