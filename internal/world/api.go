package world

import (
	"errors"

	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

// Inbound API errors. Every failure is also logged; none of them panic.
var (
	ErrUnknownActor    = errors.New("world: unknown actor")
	ErrUnknownNode     = errors.New("world: unknown resource node")
	ErrUnknownTemplate = errors.New("world: unknown actor template")
	ErrNoCombatant     = errors.New("world: actor has no combatant")
	ErrNotGatherer     = errors.New("world: actor cannot gather")
	ErrCannotMove      = errors.New("world: actor cannot move")
	ErrTargetDead      = errors.New("world: target is dead")
	ErrSelfTarget      = errors.New("world: actor cannot target itself")
	ErrNodeUnavailable = errors.New("world: resource node unavailable")
	ErrBusy            = errors.New("world: actor is already chopping")
)

func (s *State) lookupActor(op string, id ecs.EntityID) (*Actor, error) {
	a, ok := s.Actor(id)
	if !ok {
		s.log.Warn(op+": unknown actor", zap.Stringer("actor", id))
		return nil, ErrUnknownActor
	}
	return a, nil
}

func (s *State) reject(op string, id ecs.EntityID, err error) error {
	s.log.Warn(op+": rejected", zap.Stringer("actor", id), zap.Error(err))
	return err
}

// StartAction hands an arbitrary action to the actor's controller.
func (s *State) StartAction(actorID ecs.EntityID, a action.Action) error {
	actor, err := s.lookupActor("start action", actorID)
	if err != nil {
		return err
	}
	if err := actor.Controller.Start(a); err != nil {
		return s.reject("start action", actorID, err)
	}
	return nil
}

// StartAttack begins a CombatAction from actorID against targetID.
func (s *State) StartAttack(actorID, targetID ecs.EntityID) error {
	actor, err := s.lookupActor("start attack", actorID)
	if err != nil {
		return err
	}
	if actorID == targetID {
		return s.reject("start attack", actorID, ErrSelfTarget)
	}
	target, err := s.lookupActor("start attack", targetID)
	if err != nil {
		return err
	}
	if target.Health.Dead() {
		return s.reject("start attack", actorID, ErrTargetDead)
	}
	return actor.Controller.Start(action.NewCombatAction(action.CombatParams{
		Attacker:    actor,
		Defender:    target,
		Target:      target.Health,
		Source:      actor.Combatant,
		Skills:      actor.Skills,
		Resolver:    actor.resolver,
		XP:          s.formulas.CombatXP,
		Range:       s.opts.AttackRange,
		AttackSpeed: s.opts.AttackSpeed,
		Log:         s.log.With(zap.Stringer("actor", actorID)),
	}))
}

// StartGathering begins a GatheringAction on nodeID.
func (s *State) StartGathering(actorID, nodeID ecs.EntityID) error {
	actor, err := s.lookupActor("start gathering", actorID)
	if err != nil {
		return err
	}
	if actor.Inventory == nil || actor.roller == nil {
		return s.reject("start gathering", actorID, ErrNotGatherer)
	}
	node, ok := s.Node(nodeID)
	if !ok {
		return s.reject("start gathering", actorID, ErrUnknownNode)
	}
	return actor.Controller.Start(action.NewGatheringAction(action.GatheringParams{
		Resource:  node,
		Inventory: actor.Inventory,
		Skills:    actor.Skills,
		Roller:    actor.roller,
		Interval:  s.opts.GatherInterval,
		Item:      s.opts.GatherItem,
		XP:        s.opts.GatherXP,
		Log:       s.log.With(zap.Stringer("actor", actorID)),
	}))
}

// CancelAction clears the actor's current action and any pending approach.
func (s *State) CancelAction(actorID ecs.EntityID) error {
	actor, err := s.lookupActor("cancel action", actorID)
	if err != nil {
		return err
	}
	actor.approachTarget = 0
	actor.Controller.Cancel()
	return nil
}

// SetTarget points the actor's Combatant at targetID.
func (s *State) SetTarget(actorID, targetID ecs.EntityID, takeFirstTurnImmediately bool) error {
	actor, err := s.lookupActor("set target", actorID)
	if err != nil {
		return err
	}
	if actor.Combatant == nil {
		return s.reject("set target", actorID, ErrNoCombatant)
	}
	if actorID == targetID {
		return s.reject("set target", actorID, ErrSelfTarget)
	}
	target, err := s.lookupActor("set target", targetID)
	if err != nil {
		return err
	}
	if target.Health.Dead() {
		return s.reject("set target", actorID, ErrTargetDead)
	}
	actor.Combatant.SetTarget(target.Health, takeFirstTurnImmediately)
	return nil
}

// ClearTarget drops the actor's Combatant target.
func (s *State) ClearTarget(actorID ecs.EntityID) error {
	actor, err := s.lookupActor("clear target", actorID)
	if err != nil {
		return err
	}
	if actor.Combatant == nil {
		return s.reject("clear target", actorID, ErrNoCombatant)
	}
	actor.Combatant.SetTarget(nil, false)
	return nil
}

// Chop applies damage directly to a node (no actor involved).
func (s *State) Chop(nodeID ecs.EntityID, damage int) error {
	node, ok := s.Node(nodeID)
	if !ok {
		s.log.Warn("chop: unknown node", zap.Stringer("node", nodeID))
		return ErrUnknownNode
	}
	if !node.Available() {
		return ErrNodeUnavailable
	}
	node.ApplyChop(damage)
	return nil
}

// Move places the actor at (x, z) and drops any queued steps.
func (s *State) Move(actorID ecs.EntityID, x, z float64) error {
	actor, err := s.lookupActor("move", actorID)
	if err != nil {
		return err
	}
	actor.Pos.X, actor.Pos.Z = x, z
	if actor.Mover != nil {
		actor.Mover.Clear()
	}
	actor.approachTarget = 0
	return nil
}

// Approach walks the actor toward targetID one step per tick and starts a
// CombatAction once the queue drains. Already in range attacks at once.
func (s *State) Approach(actorID, targetID ecs.EntityID) error {
	actor, err := s.lookupActor("approach", actorID)
	if err != nil {
		return err
	}
	if actor.Mover == nil {
		return s.reject("approach", actorID, ErrCannotMove)
	}
	target, err := s.lookupActor("approach", targetID)
	if err != nil {
		return err
	}
	if actorID == targetID {
		return s.reject("approach", actorID, ErrSelfTarget)
	}
	if target.Health.Dead() {
		return s.reject("approach", actorID, ErrTargetDead)
	}
	actor.Mover.Clear()
	ax, az := actor.Location()
	tx, tz := target.Location()
	actor.Mover.EnqueueToward(ax, az, tx, tz, s.opts.AttackRange*approachSlack)
	if actor.Mover.Pending() == 0 {
		actor.approachTarget = 0
		return s.StartAttack(actorID, targetID)
	}
	actor.approachTarget = targetID
	return nil
}

// approachSlack keeps the stopping point strictly inside attack range.
const approachSlack = 0.9

// ChopOnce schedules a single chop on nodeID that lands after the
// configured delay. It is dropped if the node stops being available first.
func (s *State) ChopOnce(actorID, nodeID ecs.EntityID) error {
	actor, err := s.lookupActor("chop once", actorID)
	if err != nil {
		return err
	}
	if actor.chop.Pending() {
		return ErrBusy
	}
	node, ok := s.Node(nodeID)
	if !ok {
		return s.reject("chop once", actorID, ErrUnknownNode)
	}
	if !node.Available() {
		return s.reject("chop once", actorID, ErrNodeUnavailable)
	}
	h, err := s.clock.Scheduler().Schedule(func(_ tick.Tick) {
		actor.chop = nil
		actor.chopNode = 0
		if n, ok := s.Node(nodeID); ok && n.Available() {
			n.ApplyChop(1)
		}
	}, s.opts.ChopDelay, 0)
	if err != nil {
		return err
	}
	actor.chop = h
	actor.chopNode = nodeID
	s.log.Debug("chop scheduled", zap.Stringer("actor", actorID), zap.Stringer("node", nodeID))
	return nil
}

// Despawn removes an actor or node at the end of the current tick.
func (s *State) Despawn(id ecs.EntityID) error {
	if !s.ecs.Alive(id) {
		s.log.Warn("despawn: unknown entity", zap.Stringer("id", id))
		return ErrUnknownActor
	}
	s.ecs.MarkForDestruction(id)
	return nil
}
